package service

import (
	"context"
	"testing"

	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponApply(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := f.couponService()
	ctx := context.Background()
	user := f.createUser(t, "coupon@example.com")
	f.createItem(t, "hat", "10.00", "")
	f.createCoupon(t, "SAVE5", "5.00")
	f.createCoupon(t, "SAVE8", "8.00")

	_, err := svc.Apply(ctx, user.ID, "NOPE")
	assert.ErrorIs(t, err, ErrCouponNotFound, "unknown code is reported before the order check")
	_, err = svc.Apply(ctx, user.ID, "SAVE5")
	assert.ErrorIs(t, err, ErrNoActiveOrder)

	_, err = f.cartService().Add(ctx, user.ID, "hat")
	require.NoError(t, err)
	_, err = svc.Apply(ctx, user.ID, "save5")
	assert.ErrorIs(t, err, ErrCouponNotFound, "codes match exactly")

	_, err = svc.Apply(ctx, user.ID, "SAVE5")
	require.NoError(t, err)
	assert.Equal(t, "5.00", f.openOrder(t, user.ID).Total().String())

	_, err = svc.Apply(ctx, user.ID, "SAVE8")
	require.NoError(t, err)
	assert.Equal(t, "2.00", f.openOrder(t, user.ID).Total().String())
}

func TestCouponAdminCreate(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := NewCouponAdminService(f.coupons)
	ctx := context.Background()

	coupon, err := svc.Create(ctx, CreateCouponInput{Code: "WELCOME10", Amount: models.MustMoney("10")})
	require.NoError(t, err)
	assert.Equal(t, "10.00", coupon.Amount.String())

	_, err = svc.Create(ctx, CreateCouponInput{Code: "WELCOME10", Amount: models.MustMoney("3")})
	assert.ErrorIs(t, err, ErrCouponCodeExists)
	_, err = svc.Create(ctx, CreateCouponInput{Code: "FREE", Amount: models.MustMoney("0")})
	assert.ErrorIs(t, err, ErrCouponAmountInvalid)
	_, err = svc.Create(ctx, CreateCouponInput{Code: "THISCODEISTOOLONG", Amount: models.MustMoney("1")})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	coupons, total, err := svc.List(repository.CouponListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, coupons, 1)
}
