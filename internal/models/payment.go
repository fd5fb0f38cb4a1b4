package models

import "time"

// Payment 支付记录，每笔成功扣款一条
type Payment struct {
	ID             uint      `gorm:"primarykey" json:"id"`                           // 主键
	UserID         uint      `gorm:"index;not null" json:"user_id"`                  // 用户ID
	OrderID        uint      `gorm:"uniqueIndex;not null" json:"order_id"`           // 订单ID
	Gateway        string    `gorm:"size:16;not null" json:"gateway"`                // stripe / paypal
	ChargeID       string    `gorm:"uniqueIndex;size:128;not null" json:"charge_id"` // 网关流水号
	Amount         Money     `gorm:"type:decimal(20,2);not null" json:"amount"`      // 扣款金额
	Currency       string    `gorm:"size:8;not null" json:"currency"`                // 币种
	IdempotencyKey string    `gorm:"size:64;index" json:"-"`                         // 扣款幂等键
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
