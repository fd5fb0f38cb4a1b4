package repository

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
)

// AdminAuditLogRepository 后台审计日志数据访问接口
type AdminAuditLogRepository interface {
	Create(log *models.AdminAuditLog) error
	List(filter AdminAuditLogListFilter) ([]models.AdminAuditLog, int64, error)
}

// GormAdminAuditLogRepository GORM 实现
type GormAdminAuditLogRepository struct {
	db *gorm.DB
}

// NewAdminAuditLogRepository 创建审计日志仓库
func NewAdminAuditLogRepository(db *gorm.DB) *GormAdminAuditLogRepository {
	return &GormAdminAuditLogRepository{db: db}
}

// Create 写入审计日志
func (r *GormAdminAuditLogRepository) Create(log *models.AdminAuditLog) error {
	return r.db.Create(log).Error
}

// List 审计日志列表
func (r *GormAdminAuditLogRepository) List(filter AdminAuditLogListFilter) ([]models.AdminAuditLog, int64, error) {
	query := r.db.Model(&models.AdminAuditLog{})
	if filter.OperatorAdminID != 0 {
		query = query.Where("operator_admin_id = ?", filter.OperatorAdminID)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", action)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var logs []models.AdminAuditLog
	query = applyPagination(query.Order("id desc"), filter.Page, filter.PageSize)
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
