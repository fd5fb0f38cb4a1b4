package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOpenOrderConflict 创建购物车订单时唯一约束冲突，但重新读取仍未找到
var ErrOpenOrderConflict = errors.New("open order conflict")

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormOrderRepository
	GetByID(id uint) (*models.Order, error)
	GetOpenByUser(userID uint) (*models.Order, error)
	GetOrCreateOpen(userID uint) (*models.Order, bool, error)
	LockByID(id uint) (*models.Order, error)
	GetByRefCode(refCode string) (*models.Order, error)
	SetCoupon(orderID, couponID uint) error
	SetAddresses(orderID uint, billingID uint, shippingID *uint) error
	SetChargeKey(orderID uint, key string) error
	ClearChargeKey(orderID uint) error
	MarkOrdered(orderID, paymentID uint, refCode string, orderedAt time.Time) (bool, error)
	MarkRefundRequested(orderID uint) error
	GrantRefund(orderID uint) error
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Transaction 开启事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withChildren(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("removed_at IS NULL").Order("id asc")
		}).
		Preload("Items.Item").
		Preload("BillingAddress").
		Preload("ShippingAddress").
		Preload("Coupon").
		Preload("Payment")
}

func (r *GormOrderRepository) first(query *gorm.DB) (*models.Order, error) {
	var order models.Order
	if err := r.withChildren(query).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByID 根据 ID 获取订单（含订单行与关联）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetOpenByUser 获取用户未支付的订单（购物车）
func (r *GormOrderRepository) GetOpenByUser(userID uint) (*models.Order, error) {
	return r.first(r.db.Where("cart_owner_id = ? AND ordered = ?", userID, false))
}

// GetOrCreateOpen 获取或创建购物车订单，第二个返回值表示是否新建
// cart_owner_id 唯一索引保证并发下每个用户只有一个未支付订单
func (r *GormOrderRepository) GetOrCreateOpen(userID uint) (*models.Order, bool, error) {
	existing, err := r.GetOpenByUser(userID)
	if err != nil || existing != nil {
		return existing, false, err
	}
	owner := userID
	order := &models.Order{UserID: userID, CartOwnerID: &owner}
	if err := r.db.Create(order).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, err
		}
		existing, err = r.GetOpenByUser(userID)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, ErrOpenOrderConflict
		}
		return existing, false, nil
	}
	return order, true, nil
}

// LockByID 行锁读取订单（需在事务内调用，sqlite 下忽略锁）
func (r *GormOrderRepository) LockByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByRefCode 根据参考号获取已支付订单
func (r *GormOrderRepository) GetByRefCode(refCode string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("ref_code = ?", refCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) updateOpen(orderID uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	return r.db.Model(&models.Order{}).
		Where("id = ? AND ordered = ?", orderID, false).
		UpdateColumns(fields).Error
}

// SetCoupon 绑定优惠券（覆盖旧券），并作废扣款幂等键
func (r *GormOrderRepository) SetCoupon(orderID, couponID uint) error {
	return r.updateOpen(orderID, map[string]interface{}{
		"coupon_id":  couponID,
		"charge_key": "",
	})
}

// SetAddresses 绑定账单与收货地址
func (r *GormOrderRepository) SetAddresses(orderID uint, billingID uint, shippingID *uint) error {
	return r.updateOpen(orderID, map[string]interface{}{
		"billing_address_id":  billingID,
		"shipping_address_id": shippingID,
	})
}

// SetChargeKey 写入扣款幂等键
func (r *GormOrderRepository) SetChargeKey(orderID uint, key string) error {
	return r.updateOpen(orderID, map[string]interface{}{"charge_key": key})
}

// ClearChargeKey 作废扣款幂等键
func (r *GormOrderRepository) ClearChargeKey(orderID uint) error {
	return r.updateOpen(orderID, map[string]interface{}{"charge_key": ""})
}

// MarkOrdered 标记订单已支付，释放购物车唯一占位；订单已支付时返回 false
func (r *GormOrderRepository) MarkOrdered(orderID, paymentID uint, refCode string, orderedAt time.Time) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND ordered = ?", orderID, false).
		UpdateColumns(map[string]interface{}{
			"ordered":       true,
			"ordered_at":    orderedAt,
			"cart_owner_id": nil,
			"payment_id":    paymentID,
			"ref_code":      refCode,
			"charge_key":    "",
			"updated_at":    orderedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// MarkRefundRequested 标记已申请退款
func (r *GormOrderRepository) MarkRefundRequested(orderID uint) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).UpdateColumns(map[string]interface{}{
		"refund_requested": true,
		"updated_at":       time.Now(),
	}).Error
}

// GrantRefund 同意退款
func (r *GormOrderRepository) GrantRefund(orderID uint) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).UpdateColumns(map[string]interface{}{
		"refund_requested": false,
		"refund_granted":   true,
		"updated_at":       time.Now(),
	}).Error
}

// ListByUser 用户订单列表（仅已支付）
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, fmt.Errorf("user id is required")
	}
	filter.OnlyOrdered = true
	return r.list(filter)
}

// ListAdmin 后台订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	return r.list(filter)
}

func (r *GormOrderRepository) list(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OnlyOrdered {
		query = query.Where("ordered = ?", true)
	}
	if filter.RefundRequested != nil {
		query = query.Where("refund_requested = ?", *filter.RefundRequested)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	query = applyPagination(r.withChildren(query).Order("id desc"), filter.Page, filter.PageSize)
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
