package models

import (
	"testing"
	"time"
)

func moneyPtr(raw string) *Money {
	m := MustMoney(raw)
	return &m
}

func TestOrderTotalWithDiscountAndCoupon(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Quantity: 2, Item: &Item{Price: MustMoney("10.00")}},
			{Quantity: 1, Item: &Item{Price: MustMoney("12.00"), DiscountPrice: moneyPtr("10.00")}},
		},
		Coupon: &Coupon{Code: "SAVE5", Amount: MustMoney("5.00")},
	}
	if got := order.Subtotal().String(); got != "30.00" {
		t.Fatalf("subtotal want 30.00 got %s", got)
	}
	if got := order.Total().String(); got != "25.00" {
		t.Fatalf("total want 25.00 got %s", got)
	}
	if got := order.Total().MinorUnits(); got != 2500 {
		t.Fatalf("minor units want 2500 got %d", got)
	}
	if got := order.Items[1].AmountSaved().String(); got != "2.00" {
		t.Fatalf("amount saved want 2.00 got %s", got)
	}
}

func TestOrderTotalSkipsRemovedLines(t *testing.T) {
	removedAt := time.Now()
	order := &Order{
		Items: []OrderItem{
			{Quantity: 1, Item: &Item{Price: MustMoney("3.50")}},
			{Quantity: 4, Item: &Item{Price: MustMoney("9.99")}, RemovedAt: &removedAt},
		},
	}
	if got := order.Total().String(); got != "3.50" {
		t.Fatalf("total want 3.50 got %s", got)
	}
	if order.IsEmpty() {
		t.Fatalf("order should not be empty")
	}
}

func TestOrderTotalFloorsAtZero(t *testing.T) {
	order := &Order{
		Items:  []OrderItem{{Quantity: 1, Item: &Item{Price: MustMoney("3.00")}}},
		Coupon: &Coupon{Amount: MustMoney("5.00")},
	}
	if !order.Total().IsZero() {
		t.Fatalf("total should be floored at zero, got %s", order.Total())
	}
}

func TestLineWithoutDiscount(t *testing.T) {
	line := OrderItem{Quantity: 3, Item: &Item{Price: MustMoney("1.10")}}
	if got := line.FinalPrice().String(); got != "3.30" {
		t.Fatalf("final price want 3.30 got %s", got)
	}
	if !line.TotalDiscountItemPrice().IsZero() || !line.AmountSaved().IsZero() {
		t.Fatalf("no discount expected")
	}
}

func TestLineFinalPriceUsesEffectivePrice(t *testing.T) {
	item := &Item{Price: MustMoney("12.00"), DiscountPrice: moneyPtr("9.50")}
	if got := item.EffectivePrice().StringFixed(2); got != "9.50" {
		t.Fatalf("effective price want 9.50 got %s", got)
	}
	line := OrderItem{Quantity: 2, Item: item}
	if got := line.FinalPrice().String(); got != "19.00" {
		t.Fatalf("final price want 19.00 got %s", got)
	}
	if got := line.AmountSaved().String(); got != "5.00" {
		t.Fatalf("amount saved want 5.00 got %s", got)
	}
	if got := (&OrderItem{Quantity: 1}).FinalPrice().String(); got != "0.00" {
		t.Fatalf("line without item want 0.00 got %s", got)
	}
}

func TestMoneyJSONRoundTripKeepsTwoDecimals(t *testing.T) {
	var m Money
	if err := m.UnmarshalJSON([]byte(`12.5`)); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	raw, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"12.50"` {
		t.Fatalf("unexpected json %s", raw)
	}
}
