package service

import (
	"context"
	"testing"

	"github.com/dujiao-next/storefront/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddIncrementsExistingLine(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := f.cartService()
	ctx := context.Background()
	user := f.createUser(t, "cart@example.com")
	f.createItem(t, "shirt", "10.00", "")

	first, err := svc.Add(ctx, user.ID, "shirt")
	require.NoError(t, err)
	assert.Equal(t, constants.CartOutcomeAdded, first.Outcome)

	second, err := svc.Add(ctx, user.ID, "shirt")
	require.NoError(t, err)
	assert.Equal(t, constants.CartOutcomeQuantityUpdated, second.Outcome)
	assert.Equal(t, first.OrderID, second.OrderID)

	order := f.openOrder(t, user.ID)
	require.Len(t, order.ActiveItems(), 1)
	assert.Equal(t, 2, order.ActiveItems()[0].Quantity)
	assert.Equal(t, "20.00", order.Total().String())
}

func TestCartAddRejectsUnknownAndInactiveItems(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := f.cartService()
	user := f.createUser(t, "inactive@example.com")
	item := f.createItem(t, "retired", "5.00", "")
	require.NoError(t, f.db.Model(item).Update("is_active", false).Error)

	_, err := svc.Add(context.Background(), user.ID, "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = svc.Add(context.Background(), user.ID, "retired")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCartDecrementAndRemove(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := f.cartService()
	ctx := context.Background()
	user := f.createUser(t, "dec@example.com")
	f.createItem(t, "mug", "8.00", "")
	f.createItem(t, "cap", "12.00", "")

	_, err := svc.Decrement(ctx, user.ID, "mug")
	assert.ErrorIs(t, err, ErrNoActiveOrder)

	for i := 0; i < 2; i++ {
		_, err = svc.Add(ctx, user.ID, "mug")
		require.NoError(t, err)
	}
	_, err = svc.Add(ctx, user.ID, "cap")
	require.NoError(t, err)

	result, err := svc.Decrement(ctx, user.ID, "mug")
	require.NoError(t, err)
	assert.Equal(t, constants.CartOutcomeQuantityUpdated, result.Outcome)

	result, err = svc.Decrement(ctx, user.ID, "mug")
	require.NoError(t, err)
	assert.Equal(t, constants.CartOutcomeRemoved, result.Outcome)

	_, err = svc.Decrement(ctx, user.ID, "mug")
	assert.ErrorIs(t, err, ErrItemNotInCart)

	_, err = svc.Remove(ctx, user.ID, "cap")
	require.NoError(t, err)
	_, err = svc.Remove(ctx, user.ID, "cap")
	assert.ErrorIs(t, err, ErrItemNotInCart)

	order := f.openOrder(t, user.ID)
	assert.True(t, order.IsEmpty())

	var total int64
	require.NoError(t, f.db.Table("order_items").Where("order_id = ?", order.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total, "removed lines are kept as history")

	// 移除后重新加入会新建一行
	result, err = svc.Add(ctx, user.ID, "cap")
	require.NoError(t, err)
	assert.Equal(t, constants.CartOutcomeAdded, result.Outcome)
}

func TestCartMutationClearsChargeKey(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := f.cartService()
	ctx := context.Background()
	user := f.createUser(t, "key@example.com")
	f.createItem(t, "book", "15.00", "")

	_, err := svc.Add(ctx, user.ID, "book")
	require.NoError(t, err)
	order := f.openOrder(t, user.ID)
	require.NoError(t, f.orders.SetChargeKey(order.ID, "stale-key"))

	_, err = svc.Add(ctx, user.ID, "book")
	require.NoError(t, err)
	assert.Empty(t, f.openOrder(t, user.ID).ChargeKey)
}
