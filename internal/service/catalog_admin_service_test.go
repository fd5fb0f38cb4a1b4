package service

import (
	"context"
	"testing"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAdminCreatesAndUpdatesItems(t *testing.T) {
	f := setupStorefrontTest(t)
	admin := NewCatalogAdminService(f.items, f.categories)
	catalog := NewCatalogService(f.cfg.Shop, f.items, f.categories)
	ctx := context.Background()

	category, err := admin.CreateCategory(ctx, CategoryInput{Title: "Shirts", Slug: "shirts", Description: "Cotton"})
	require.NoError(t, err)
	assert.True(t, category.IsActive)
	_, err = admin.CreateCategory(ctx, CategoryInput{Title: "Again", Slug: "shirts"})
	assert.ErrorIs(t, err, ErrSlugExists)
	_, err = admin.CreateCategory(ctx, CategoryInput{Title: "Bad", Slug: "Bad Slug"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	discount := models.MustMoney("12.00")
	item, err := admin.CreateItem(ctx, ItemInput{
		Title:         "Linen shirt",
		Slug:          "linen-shirt",
		Price:         models.MustMoney("15.00"),
		DiscountPrice: &discount,
		CategorySlug:  "shirts",
	})
	require.NoError(t, err)
	require.NotNil(t, item.CategoryID)
	assert.Equal(t, category.ID, *item.CategoryID)

	tooHigh := models.MustMoney("20.00")
	_, err = admin.CreateItem(ctx, ItemInput{Title: "x", Slug: "x", Price: models.MustMoney("15"), DiscountPrice: &tooHigh})
	assert.ErrorIs(t, err, ErrDiscountInvalid)
	_, err = admin.CreateItem(ctx, ItemInput{Title: "x", Slug: "x", Price: models.MustMoney("0")})
	assert.ErrorIs(t, err, ErrItemPriceInvalid)
	_, err = admin.CreateItem(ctx, ItemInput{Title: "x", Slug: "x", Price: models.MustMoney("1"), CategorySlug: "none"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	_, err = admin.CreateItem(ctx, ItemInput{Title: "dup", Slug: "linen-shirt", Price: models.MustMoney("1")})
	assert.ErrorIs(t, err, ErrSlugExists)

	view, err := catalog.Category(ctx, "shirts")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	inactive := false
	updated, err := admin.UpdateItem(ctx, "linen-shirt", ItemPatch{IsActive: &inactive, ClearDiscount: true})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Nil(t, updated.DiscountPrice)

	view, err = catalog.Category(ctx, "shirts")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = admin.UpdateItem(ctx, "missing", ItemPatch{})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCatalogShopPagination(t *testing.T) {
	f := setupStorefrontTest(t)
	catalog := NewCatalogService(config.ShopConfig{ShopPageSize: 6}, f.items, f.categories)
	for _, slug := range []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"} {
		f.createItem(t, slug, "1.00", "")
	}

	page, err := catalog.Shop(context.Background(), 2)
	require.NoError(t, err)
	assert.EqualValues(t, 7, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a7", page.Items[0].Slug)

	_, err = catalog.Product(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = catalog.Category(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
