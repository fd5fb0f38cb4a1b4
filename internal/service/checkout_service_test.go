package service

import (
	"context"
	"testing"

	"github.com/dujiao-next/storefront/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		StreetAddress: "1 Market St",
		Country:       "us",
		Zip:           "94105",
		PaymentOption: "S",
	}
}

func TestCheckoutRequiresOpenOrder(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := f.checkoutService()
	user := f.createUser(t, "nocart@example.com")

	_, err := svc.Form(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveOrder)
	_, err = svc.Submit(context.Background(), user.ID, validCheckoutInput())
	assert.ErrorIs(t, err, ErrNoActiveOrder)
}

func TestCheckoutValidation(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := f.checkoutService()
	ctx := context.Background()
	user := f.createUser(t, "validate@example.com")
	f.createItem(t, "lamp", "30.00", "")
	_, err := f.cartService().Add(ctx, user.ID, "lamp")
	require.NoError(t, err)

	input := validCheckoutInput()
	input.StreetAddress = " "
	_, err = svc.Submit(ctx, user.ID, input)
	assert.ErrorIs(t, err, ErrCheckoutFormInvalid)

	input = validCheckoutInput()
	input.Country = "XX"
	_, err = svc.Submit(ctx, user.ID, input)
	assert.ErrorIs(t, err, ErrCountryInvalid)

	input = validCheckoutInput()
	input.PaymentOption = "bitcoin"
	_, err = svc.Submit(ctx, user.ID, input)
	assert.ErrorIs(t, err, ErrPaymentOptionInvalid)

	order := f.openOrder(t, user.ID)
	assert.Nil(t, order.BillingAddressID, "rejected submissions leave the order untouched")
	var count int64
	require.NoError(t, f.db.Table("billing_addresses").Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutAttachesAddresses(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := f.checkoutService()
	ctx := context.Background()
	user := f.createUser(t, "ship@example.com")
	f.createItem(t, "desk", "120.00", "")
	_, err := f.cartService().Add(ctx, user.ID, "desk")
	require.NoError(t, err)

	input := validCheckoutInput()
	input.PaymentOption = "P"
	input.SameShippingAddress = true
	input.SaveInfo = true
	result, err := svc.Submit(ctx, user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentOptionPayPal, result.PaymentOption)
	require.NotNil(t, result.ShippingAddressID)

	order := f.openOrder(t, user.ID)
	require.NotNil(t, order.BillingAddress)
	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "US", order.BillingAddress.Country)
	assert.Equal(t, constants.AddressTypeBilling, order.BillingAddress.AddressType)
	assert.Equal(t, constants.AddressTypeShipping, order.ShippingAddress.AddressType)

	form, err := svc.Form(user.ID)
	require.NoError(t, err)
	require.NotNil(t, form.DefaultBilling)
	assert.Equal(t, result.BillingAddressID, form.DefaultBilling.ID)
	assert.Len(t, form.PaymentOptions, 2)
	assert.NotEmpty(t, form.Countries)
}

func TestNormalizeCountry(t *testing.T) {
	code, err := NormalizeCountry(" gb ")
	require.NoError(t, err)
	assert.Equal(t, "GB", code)

	for _, raw := range []string{"", "USA", "ZZ", "1A"} {
		_, err := NormalizeCountry(raw)
		assert.ErrorIs(t, err, ErrCountryInvalid, raw)
	}
}
