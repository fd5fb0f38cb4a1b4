package repository

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 地址数据访问接口
type AddressRepository interface {
	WithTx(tx *gorm.DB) *GormAddressRepository
	Create(address *models.BillingAddress) error
	GetDefault(userID uint, addressType string) (*models.BillingAddress, error)
	ClearDefault(userID uint, addressType string) error
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) *GormAddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.BillingAddress) error {
	return r.db.Create(address).Error
}

// GetDefault 获取用户默认地址
func (r *GormAddressRepository) GetDefault(userID uint, addressType string) (*models.BillingAddress, error) {
	var address models.BillingAddress
	err := r.db.Where("user_id = ? AND address_type = ? AND is_default = ?", userID, addressType, true).
		Order("id desc").
		First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// ClearDefault 清除用户某类型的默认地址标记
func (r *GormAddressRepository) ClearDefault(userID uint, addressType string) error {
	return r.db.Model(&models.BillingAddress{}).
		Where("user_id = ? AND address_type = ? AND is_default = ?", userID, addressType, true).
		Update("is_default", false).Error
}
