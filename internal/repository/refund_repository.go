package repository

import (
	"errors"
	"time"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// RefundRepository 退款申请数据访问接口
type RefundRepository interface {
	WithTx(tx *gorm.DB) *GormRefundRepository
	Create(refund *models.Refund) error
	GetByID(id uint) (*models.Refund, error)
	List(filter RefundListFilter) ([]models.Refund, int64, error)
	MarkAccepted(id uint, at time.Time) (bool, error)
}

// GormRefundRepository GORM 实现
type GormRefundRepository struct {
	db *gorm.DB
}

// NewRefundRepository 创建退款仓库
func NewRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRefundRepository) WithTx(tx *gorm.DB) *GormRefundRepository {
	if tx == nil {
		return r
	}
	return &GormRefundRepository{db: tx}
}

// Create 创建退款申请
func (r *GormRefundRepository) Create(refund *models.Refund) error {
	return r.db.Create(refund).Error
}

// GetByID 根据 ID 获取退款申请
func (r *GormRefundRepository) GetByID(id uint) (*models.Refund, error) {
	var refund models.Refund
	if err := r.db.Preload("Order").First(&refund, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refund, nil
}

// List 退款申请列表
func (r *GormRefundRepository) List(filter RefundListFilter) ([]models.Refund, int64, error) {
	query := r.db.Model(&models.Refund{})
	if filter.Accepted != nil {
		query = query.Where("accepted = ?", *filter.Accepted)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var refunds []models.Refund
	query = applyPagination(query.Preload("Order").Order("id desc"), filter.Page, filter.PageSize)
	if err := query.Find(&refunds).Error; err != nil {
		return nil, 0, err
	}
	return refunds, total, nil
}

// MarkAccepted 同意退款，已同意时返回 false
func (r *GormRefundRepository) MarkAccepted(id uint, at time.Time) (bool, error) {
	result := r.db.Model(&models.Refund{}).
		Where("id = ? AND accepted = ?", id, false).
		UpdateColumns(map[string]interface{}{
			"accepted":    true,
			"accepted_at": at,
			"updated_at":  at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
