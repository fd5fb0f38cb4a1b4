package repository

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	GetBySlug(slug string, onlyActive bool) (*models.Category, error)
	List(onlyActive bool) ([]models.Category, error)
	Create(category *models.Category) error
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// GetBySlug 根据 slug 获取分类
func (r *GormCategoryRepository) GetBySlug(slug string, onlyActive bool) (*models.Category, error) {
	query := r.db.Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var category models.Category
	if err := query.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// List 分类列表
func (r *GormCategoryRepository) List(onlyActive bool) ([]models.Category, error) {
	query := r.db.Model(&models.Category{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := query.Order("title asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}
