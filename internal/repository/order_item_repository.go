package repository

import (
	"time"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// OrderItemRepository 订单行数据访问接口，数量变更均为单条原子 SQL
type OrderItemRepository interface {
	WithTx(tx *gorm.DB) *GormOrderItemRepository
	IncrementLine(lineKey string) (bool, error)
	CreateLine(line *models.OrderItem) error
	DecrementLine(lineKey string) (bool, error)
	RemoveLine(lineKey string, removedAt time.Time) (bool, error)
	HasLine(lineKey string) (bool, error)
	MarkOrdered(orderID uint) error
}

// GormOrderItemRepository GORM 实现
type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository 创建订单行仓库
func NewOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderItemRepository) WithTx(tx *gorm.DB) *GormOrderItemRepository {
	if tx == nil {
		return r
	}
	return &GormOrderItemRepository{db: tx}
}

func (r *GormOrderItemRepository) updateLive(lineKey string, extra string, fields map[string]interface{}) (bool, error) {
	query := r.db.Model(&models.OrderItem{}).Where("line_key = ?", lineKey)
	if extra != "" {
		query = query.Where(extra)
	}
	result := query.UpdateColumns(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementLine 数量 +1，返回是否命中有效行
func (r *GormOrderItemRepository) IncrementLine(lineKey string) (bool, error) {
	return r.updateLive(lineKey, "", map[string]interface{}{
		"quantity":   gorm.Expr("quantity + ?", 1),
		"updated_at": time.Now(),
	})
}

// CreateLine 新建订单行，line_key 冲突时返回 gorm.ErrDuplicatedKey
func (r *GormOrderItemRepository) CreateLine(line *models.OrderItem) error {
	return r.db.Create(line).Error
}

// DecrementLine 数量大于 1 时 -1，返回是否命中
func (r *GormOrderItemRepository) DecrementLine(lineKey string) (bool, error) {
	return r.updateLive(lineKey, "quantity > 1", map[string]interface{}{
		"quantity":   gorm.Expr("quantity - ?", 1),
		"updated_at": time.Now(),
	})
}

// RemoveLine 软删除订单行并释放 line_key
func (r *GormOrderItemRepository) RemoveLine(lineKey string, removedAt time.Time) (bool, error) {
	return r.updateLive(lineKey, "", map[string]interface{}{
		"removed_at": removedAt,
		"line_key":   nil,
		"updated_at": removedAt,
	})
}

// HasLine 是否存在有效订单行
func (r *GormOrderItemRepository) HasLine(lineKey string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).Where("line_key = ?", lineKey).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkOrdered 订单支付后标记全部有效行
func (r *GormOrderItemRepository) MarkOrdered(orderID uint) error {
	return r.db.Model(&models.OrderItem{}).
		Where("order_id = ? AND removed_at IS NULL", orderID).
		UpdateColumns(map[string]interface{}{
			"ordered":    true,
			"updated_at": time.Now(),
		}).Error
}
