package service

import (
	"time"

	"github.com/dujiao-next/storefront/internal/models"
)

// OrderLineView 订单行展示
type OrderLineView struct {
	ItemSlug               string        `json:"item_slug"`
	ItemTitle              string        `json:"item_title"`
	Price                  models.Money  `json:"price"`
	DiscountPrice          *models.Money `json:"discount_price"`
	Quantity               int           `json:"quantity"`
	TotalItemPrice         models.Money  `json:"total_item_price"`
	TotalDiscountItemPrice models.Money  `json:"total_discount_item_price"`
	AmountSaved            models.Money  `json:"amount_saved"`
	FinalPrice             models.Money  `json:"final_price"`
}

// OrderView 订单（购物车）展示
type OrderView struct {
	ID              uint                   `json:"id"`
	Ordered         bool                   `json:"ordered"`
	OrderedAt       *time.Time             `json:"ordered_at,omitempty"`
	RefCode         string                 `json:"ref_code,omitempty"`
	Items           []OrderLineView        `json:"items"`
	CouponCode      string                 `json:"coupon_code,omitempty"`
	CouponAmount    models.Money           `json:"coupon_amount"`
	Subtotal        models.Money           `json:"subtotal"`
	Total           models.Money           `json:"total"`
	BillingAddress  *models.BillingAddress `json:"billing_address,omitempty"`
	ShippingAddress *models.BillingAddress `json:"shipping_address,omitempty"`
	RefundRequested bool                   `json:"refund_requested"`
	RefundGranted   bool                   `json:"refund_granted"`
	CreatedAt       time.Time              `json:"created_at"`
}

// BuildOrderView 组装订单展示数据
func BuildOrderView(order *models.Order) *OrderView {
	if order == nil {
		return nil
	}
	view := &OrderView{
		ID:              order.ID,
		Ordered:         order.Ordered,
		OrderedAt:       order.OrderedAt,
		CouponAmount:    order.CouponAmount(),
		Subtotal:        order.Subtotal(),
		Total:           order.Total(),
		BillingAddress:  order.BillingAddress,
		ShippingAddress: order.ShippingAddress,
		RefundRequested: order.RefundRequested,
		RefundGranted:   order.RefundGranted,
		CreatedAt:       order.CreatedAt,
	}
	if order.RefCode != nil {
		view.RefCode = *order.RefCode
	}
	if order.Coupon != nil {
		view.CouponCode = order.Coupon.Code
	}
	lines := order.ActiveItems()
	view.Items = make([]OrderLineView, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		lv := OrderLineView{
			Quantity:               line.Quantity,
			TotalItemPrice:         line.TotalItemPrice(),
			TotalDiscountItemPrice: line.TotalDiscountItemPrice(),
			AmountSaved:            line.AmountSaved(),
			FinalPrice:             line.FinalPrice(),
		}
		if line.Item != nil {
			lv.ItemSlug = line.Item.Slug
			lv.ItemTitle = line.Item.Title
			lv.Price = line.Item.Price
			lv.DiscountPrice = line.Item.DiscountPrice
		}
		view.Items = append(view.Items, lv)
	}
	return view
}
