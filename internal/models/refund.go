package models

import "time"

// Refund 退款申请
type Refund struct {
	ID         uint       `gorm:"primarykey" json:"id"`           // 主键
	OrderID    uint       `gorm:"index;not null" json:"order_id"` // 订单ID
	Order      *Order     `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Reason     string     `gorm:"type:text;not null" json:"reason"`       // 申请说明
	Email      string     `gorm:"size:255;not null" json:"email"`         // 联系邮箱
	Accepted   bool       `gorm:"not null;default:false" json:"accepted"` // 是否已同意
	AcceptedAt *time.Time `json:"accepted_at"`                            // 同意时间
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt  time.Time  `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (Refund) TableName() string {
	return "refunds"
}
