package models

import "time"

// Coupon 优惠券（固定金额减免）
type Coupon struct {
	ID        uint      `gorm:"primarykey" json:"id"`                      // 主键
	Code      string    `gorm:"uniqueIndex;size:15;not null" json:"code"`  // 优惠码
	Amount    Money     `gorm:"type:decimal(20,2);not null" json:"amount"` // 减免金额
	CreatedAt time.Time `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                // 更新时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
