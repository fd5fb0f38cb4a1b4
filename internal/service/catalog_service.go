package service

import (
	"context"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
)

// ItemPage 商品分页结果
type ItemPage struct {
	Items      []models.Item `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// CategoryView 分类页数据
type CategoryView struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Items       []models.Item `json:"items"`
}

// CatalogService 商品目录服务（只读，带版本化缓存）
type CatalogService struct {
	cfg          config.ShopConfig
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(cfg config.ShopConfig, itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		cfg:          cfg,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// Home 首页上架商品
func (s *CatalogService) Home(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.cached(ctx, "home", &items, func() error {
		list, _, err := s.itemRepo.List(repository.ItemListFilter{
			OnlyActive: true,
			Page:       1,
			PageSize:   positiveOrDefault(s.cfg.HomePageSize, 20),
		})
		items = list
		return err
	})
	return items, err
}

// Shop 商店分页
func (s *CatalogService) Shop(ctx context.Context, page int) (*ItemPage, error) {
	if page < 1 {
		page = 1
	}
	pageSize := positiveOrDefault(s.cfg.ShopPageSize, 6)
	result := &ItemPage{}
	err := s.cached(ctx, "shop", result, func() error {
		items, total, err := s.itemRepo.List(repository.ItemListFilter{
			OnlyActive: true,
			Page:       page,
			PageSize:   pageSize,
		})
		if err != nil {
			return err
		}
		*result = ItemPage{
			Items:      items,
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		}
		return nil
	}, page)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Product 商品详情
func (s *CatalogService) Product(ctx context.Context, slug string) (*models.Item, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrItemNotFound
	}
	var item *models.Item
	err := s.cached(ctx, "product", &item, func() error {
		found, err := s.itemRepo.GetBySlug(slug)
		item = found
		return err
	}, slug)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Category 分类页：未知或已停用的分类视为不存在
func (s *CatalogService) Category(ctx context.Context, slug string) (*CategoryView, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrCategoryNotFound
	}
	var view *CategoryView
	err := s.cached(ctx, "category", &view, func() error {
		category, err := s.categoryRepo.GetBySlug(slug, true)
		if err != nil || category == nil {
			return err
		}
		items, _, err := s.itemRepo.List(repository.ItemListFilter{
			OnlyActive: true,
			CategoryID: category.ID,
		})
		if err != nil {
			return err
		}
		view = &CategoryView{
			Title:       category.Title,
			Description: category.Description,
			Image:       category.Image,
			Items:       items,
		}
		return nil
	}, slug)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrCategoryNotFound
	}
	return view, nil
}

// Categories 上架分类列表
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.cached(ctx, "categories", &categories, func() error {
		list, err := s.categoryRepo.List(true)
		categories = list
		return err
	})
	return categories, err
}

// cached 读取版本化缓存，未命中时调用 load 并回写；缓存故障只记录日志
func (s *CatalogService) cached(ctx context.Context, kind string, dest interface{}, load func() error, parts ...interface{}) error {
	ttl := time.Duration(s.cfg.CatalogCacheSeconds) * time.Second
	if ttl <= 0 || !cache.Enabled() {
		return load()
	}
	version, err := cache.CatalogVersion(ctx)
	if err != nil {
		logger.Warnw("catalog_cache_version_failed", "error", err)
		return load()
	}
	key := cache.CatalogKey(version, kind, parts...)
	hit, err := cache.GetJSON(ctx, key, dest)
	if err != nil {
		logger.Warnw("catalog_cache_get_failed", "key", key, "error", err)
	}
	if hit {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	if err := cache.SetJSON(ctx, key, dest, ttl); err != nil {
		logger.Warnw("catalog_cache_set_failed", "key", key, "error", err)
	}
	return nil
}

func positiveOrDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
