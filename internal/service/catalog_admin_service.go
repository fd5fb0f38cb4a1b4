package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CatalogAdminService 商品目录管理服务
type CatalogAdminService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogAdminService 创建商品目录管理服务
func NewCatalogAdminService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository) *CatalogAdminService {
	return &CatalogAdminService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// CategoryInput 创建分类输入
type CategoryInput struct {
	Title       string
	Slug        string
	Description string
	Image       string
	IsActive    *bool
}

// ItemInput 创建商品输入
type ItemInput struct {
	Title         string
	Slug          string
	Price         models.Money
	DiscountPrice *models.Money
	CategorySlug  string
	Label         string
	Description   string
	Image         string
	IsActive      *bool
}

// ItemPatch 更新商品输入，nil 字段保持不变
type ItemPatch struct {
	Title         *string
	Price         *models.Money
	DiscountPrice *models.Money
	ClearDiscount bool
	CategorySlug  *string
	Label         *string
	Description   *string
	Image         *string
	IsActive      *bool
}

// CreateCategory 创建分类
func (s *CatalogAdminService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	title := strings.TrimSpace(input.Title)
	slug := strings.TrimSpace(input.Slug)
	if title == "" || !slugPattern.MatchString(slug) {
		return nil, ErrInvalidRequest
	}
	exist, err := s.categoryRepo.GetBySlug(slug, false)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrSlugExists
	}
	category := &models.Category{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		IsActive:    boolOrDefault(input.IsActive, true),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	s.bumpCatalog(ctx)
	logger.Ctx(ctx).Infow("category_created", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

// CreateItem 创建商品
func (s *CatalogAdminService) CreateItem(ctx context.Context, input ItemInput) (*models.Item, error) {
	title := strings.TrimSpace(input.Title)
	slug := strings.TrimSpace(input.Slug)
	if title == "" || !slugPattern.MatchString(slug) {
		return nil, ErrInvalidRequest
	}
	if err := validateItemPricing(input.Price, input.DiscountPrice); err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategoryID(input.CategorySlug)
	if err != nil {
		return nil, err
	}
	exist, err := s.itemRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrSlugExists
	}

	item := &models.Item{
		Title:         title,
		Slug:          slug,
		Price:         models.NewMoneyFromDecimal(input.Price.Decimal),
		DiscountPrice: input.DiscountPrice,
		CategoryID:    categoryID,
		Label:         strings.TrimSpace(input.Label),
		Description:   strings.TrimSpace(input.Description),
		Image:         strings.TrimSpace(input.Image),
		IsActive:      boolOrDefault(input.IsActive, true),
	}
	if err := s.itemRepo.Create(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	s.bumpCatalog(ctx)
	logger.Ctx(ctx).Infow("item_created", "item_id", item.ID, "slug", item.Slug, "price", item.Price.String())
	return item, nil
}

// UpdateItem 按 slug 更新商品，下架即 is_active=false
func (s *CatalogAdminService) UpdateItem(ctx context.Context, slug string, patch ItemPatch) (*models.Item, error) {
	item, err := s.itemRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	price := item.Price
	if patch.Price != nil {
		price = *patch.Price
	}
	discount := item.DiscountPrice
	if patch.ClearDiscount {
		discount = nil
	} else if patch.DiscountPrice != nil {
		discount = patch.DiscountPrice
	}
	if err := validateItemPricing(price, discount); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"price":          models.NewMoneyFromDecimal(price.Decimal),
		"discount_price": discount,
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrInvalidRequest
		}
		fields["title"] = title
	}
	if patch.CategorySlug != nil {
		categoryID, err := s.resolveCategoryID(*patch.CategorySlug)
		if err != nil {
			return nil, err
		}
		fields["category_id"] = categoryID
	}
	if patch.Label != nil {
		fields["label"] = strings.TrimSpace(*patch.Label)
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Image != nil {
		fields["image"] = strings.TrimSpace(*patch.Image)
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if err := s.itemRepo.UpdateFields(item.ID, fields); err != nil {
		return nil, err
	}
	s.bumpCatalog(ctx)
	logger.Ctx(ctx).Infow("item_updated", "item_id", item.ID, "slug", item.Slug)
	return s.itemRepo.GetBySlug(item.Slug)
}

func (s *CatalogAdminService) resolveCategoryID(categorySlug string) (*uint, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return nil, nil
	}
	category, err := s.categoryRepo.GetBySlug(categorySlug, false)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	id := category.ID
	return &id, nil
}

func (s *CatalogAdminService) bumpCatalog(ctx context.Context) {
	if err := cache.BumpCatalogVersion(ctx); err != nil {
		logger.Ctx(ctx).Warnw("catalog_cache_bump_failed", "error", err)
	}
}

func validateItemPricing(price models.Money, discount *models.Money) error {
	if !price.Decimal.IsPositive() {
		return ErrItemPriceInvalid
	}
	if discount == nil {
		return nil
	}
	if !discount.Decimal.IsPositive() || !discount.Decimal.LessThan(price.Decimal) {
		return ErrDiscountInvalid
	}
	return nil
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
