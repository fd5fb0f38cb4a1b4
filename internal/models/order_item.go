package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem 订单行（购物车中的一个商品及数量）
type OrderItem struct {
	ID        uint       `gorm:"primarykey" json:"id"`                    // 主键
	OrderID   uint       `gorm:"index;not null" json:"order_id"`          // 订单ID
	UserID    uint       `gorm:"index;not null" json:"user_id"`           // 用户ID
	ItemID    uint       `gorm:"index;not null" json:"item_id"`           // 商品ID
	Item      *Item      `gorm:"foreignKey:ItemID" json:"item,omitempty"` // 商品
	Quantity  int        `gorm:"not null;default:1" json:"quantity"`      // 数量
	Ordered   bool       `gorm:"not null;default:false" json:"ordered"`   // 是否已随订单支付
	LineKey   *string    `gorm:"uniqueIndex;size:64" json:"-"`            // 有效期间为 订单ID:商品ID，移除后清空
	RemovedAt *time.Time `gorm:"index" json:"removed_at,omitempty"`       // 移除时间（保留历史）
	CreatedAt time.Time  `json:"created_at"`                              // 创建时间
	UpdatedAt time.Time  `json:"updated_at"`                              // 更新时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// CartLineKey 购物车行唯一键
func CartLineKey(orderID, itemID uint) string {
	return fmt.Sprintf("%d:%d", orderID, itemID)
}

func (oi *OrderItem) quantity() decimal.Decimal {
	return decimal.NewFromInt(int64(oi.Quantity))
}

// TotalItemPrice 数量 × 原价
func (oi *OrderItem) TotalItemPrice() Money {
	if oi == nil || oi.Item == nil {
		return NewMoneyFromDecimal(decimal.Zero)
	}
	return NewMoneyFromDecimal(oi.Item.Price.Decimal.Mul(oi.quantity()))
}

// TotalDiscountItemPrice 数量 × 折扣价，无折扣价时为 0
func (oi *OrderItem) TotalDiscountItemPrice() Money {
	if oi == nil || !oi.Item.HasDiscount() {
		return NewMoneyFromDecimal(decimal.Zero)
	}
	return NewMoneyFromDecimal(oi.Item.DiscountPrice.Decimal.Mul(oi.quantity()))
}

// AmountSaved 折扣节省金额
func (oi *OrderItem) AmountSaved() Money {
	if oi == nil || !oi.Item.HasDiscount() {
		return NewMoneyFromDecimal(decimal.Zero)
	}
	return NewMoneyFromDecimal(oi.TotalItemPrice().Decimal.Sub(oi.TotalDiscountItemPrice().Decimal))
}

// FinalPrice 行实付金额
func (oi *OrderItem) FinalPrice() Money {
	if oi == nil || oi.Item == nil {
		return NewMoneyFromDecimal(decimal.Zero)
	}
	return NewMoneyFromDecimal(oi.Item.EffectivePrice().Mul(oi.quantity()))
}
