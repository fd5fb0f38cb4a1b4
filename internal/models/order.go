package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order 订单。未支付时即为用户购物车，每个用户至多一个
type Order struct {
	ID                uint            `gorm:"primarykey" json:"id"`                                         // 主键
	UserID            uint            `gorm:"index;not null" json:"user_id"`                                // 用户ID
	CartOwnerID       *uint           `gorm:"uniqueIndex" json:"-"`                                         // 未支付期间等于 UserID，支付后清空
	Ordered           bool            `gorm:"not null;default:false;index" json:"ordered"`                  // 是否已支付
	OrderedAt         *time.Time      `gorm:"index" json:"ordered_at"`                                      // 支付时间
	RefCode           *string         `gorm:"uniqueIndex;size:20" json:"ref_code"`                          // 订单参考号
	BillingAddressID  *uint           `json:"billing_address_id"`                                           // 账单地址
	ShippingAddressID *uint           `json:"shipping_address_id"`                                          // 收货地址
	CouponID          *uint           `gorm:"index" json:"coupon_id"`                                       // 优惠券
	PaymentID         *uint           `json:"payment_id"`                                                   // 支付记录
	ChargeKey         string          `gorm:"size:64;not null;default:''" json:"-"`                         // 当前扣款幂等键
	RefundRequested   bool            `gorm:"not null;default:false" json:"refund_requested"`               // 已申请退款
	RefundGranted     bool            `gorm:"not null;default:false" json:"refund_granted"`                 // 已同意退款
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt         time.Time       `json:"updated_at"`                                                   // 更新时间
	Items             []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`                    // 订单行
	BillingAddress    *BillingAddress `gorm:"foreignKey:BillingAddressID" json:"billing_address,omitempty"` // 账单地址
	ShippingAddress   *BillingAddress `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	Coupon            *Coupon         `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	Payment           *Payment        `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// ActiveItems 未被移除的订单行
func (o *Order) ActiveItems() []OrderItem {
	if o == nil {
		return nil
	}
	result := make([]OrderItem, 0, len(o.Items))
	for _, line := range o.Items {
		if line.RemovedAt == nil {
			result = append(result, line)
		}
	}
	return result
}

// Subtotal 各行实付金额之和
func (o *Order) Subtotal() Money {
	sum := decimal.Zero
	for _, line := range o.ActiveItems() {
		sum = sum.Add(line.FinalPrice().Decimal)
	}
	return NewMoneyFromDecimal(sum)
}

// CouponAmount 优惠券减免金额
func (o *Order) CouponAmount() Money {
	if o == nil || o.Coupon == nil {
		return NewMoneyFromDecimal(decimal.Zero)
	}
	return o.Coupon.Amount
}

// Total 应付金额：小计减去优惠券，最低为 0
func (o *Order) Total() Money {
	if o == nil {
		return NewMoneyFromDecimal(decimal.Zero)
	}
	total := o.Subtotal().Decimal.Sub(o.CouponAmount().Decimal)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return NewMoneyFromDecimal(total)
}

// IsEmpty 是否没有有效订单行
func (o *Order) IsEmpty() bool {
	return len(o.ActiveItems()) == 0
}
