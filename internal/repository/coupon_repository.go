package repository

import (
	"errors"
	"strings"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// CouponRepository 优惠券数据访问接口
type CouponRepository interface {
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
	List(filter CouponListFilter) ([]models.Coupon, int64, error)
}

// GormCouponRepository GORM 实现
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓库
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// GetByCode 根据优惠码精确查找
func (r *GormCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// Create 创建优惠券
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return r.db.Create(coupon).Error
}

// List 优惠券列表
func (r *GormCouponRepository) List(filter CouponListFilter) ([]models.Coupon, int64, error) {
	query := r.db.Model(&models.Coupon{})
	if code := strings.TrimSpace(filter.Code); code != "" {
		query = query.Where("code LIKE ?", "%"+code+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var coupons []models.Coupon
	query = applyPagination(query.Order("id desc"), filter.Page, filter.PageSize)
	if err := query.Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}
