package repository

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// ItemRepository 商品数据访问接口
type ItemRepository interface {
	GetBySlug(slug string) (*models.Item, error)
	List(filter ItemListFilter) ([]models.Item, int64, error)
	Create(item *models.Item) error
	UpdateFields(id uint, fields map[string]interface{}) error
}

// GormItemRepository GORM 实现
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建商品仓库
func NewItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// GetBySlug 根据 slug 获取商品（含分类）
func (r *GormItemRepository) GetBySlug(slug string) (*models.Item, error) {
	var item models.Item
	if err := r.db.Preload("Category").Where("slug = ?", slug).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List 商品列表
func (r *GormItemRepository) List(filter ItemListFilter) ([]models.Item, int64, error) {
	query := r.db.Model(&models.Item{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	query = applyPagination(query.Order("id asc"), filter.Page, filter.PageSize)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create 创建商品
func (r *GormItemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// UpdateFields 按字段更新，支持零值（如下架）
func (r *GormItemRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Item{}).Where("id = ?", id).Updates(fields).Error
}
