package models

import "time"

// BillingAddress 账单/收货地址
type BillingAddress struct {
	ID               uint      `gorm:"primarykey" json:"id"`                            // 主键
	UserID           uint      `gorm:"index;not null" json:"user_id"`                   // 用户ID
	StreetAddress    string    `gorm:"size:255;not null" json:"street_address"`         // 街道地址
	ApartmentAddress string    `gorm:"size:255" json:"apartment_address"`               // 门牌/公寓
	Country          string    `gorm:"size:2;not null" json:"country"`                  // ISO 3166 两位国家码
	Zip              string    `gorm:"size:32;not null" json:"zip"`                     // 邮编
	AddressType      string    `gorm:"size:1;not null;default:'B'" json:"address_type"` // B 账单 / S 收货
	IsDefault        bool      `gorm:"not null;default:false" json:"is_default"`        // 是否默认地址
	CreatedAt        time.Time `json:"created_at"`                                      // 创建时间
	UpdatedAt        time.Time `json:"updated_at"`                                      // 更新时间
}

// TableName 指定表名
func (BillingAddress) TableName() string {
	return "billing_addresses"
}
