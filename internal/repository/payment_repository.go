package repository

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository 支付记录数据访问接口
type PaymentRepository interface {
	WithTx(tx *gorm.DB) *GormPaymentRepository
	Create(payment *models.Payment) error
	GetByOrderID(orderID uint) (*models.Payment, error)
	GetByChargeID(chargeID string) (*models.Payment, error)
}

// GormPaymentRepository GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付记录仓库
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create 创建支付记录
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetByOrderID 根据订单获取支付记录
func (r *GormPaymentRepository) GetByOrderID(orderID uint) (*models.Payment, error) {
	return r.firstWhere("order_id = ?", orderID)
}

// GetByChargeID 根据网关流水号获取支付记录
func (r *GormPaymentRepository) GetByChargeID(chargeID string) (*models.Payment, error) {
	return r.firstWhere("charge_id = ?", chargeID)
}

func (r *GormPaymentRepository) firstWhere(cond string, arg interface{}) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where(cond, arg).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}
