package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
)

// 审计动作
const (
	AuditActionRefundAccept   = "refund.accept"
	AuditActionCouponCreate   = "coupon.create"
	AuditActionCategoryCreate = "category.create"
	AuditActionItemCreate     = "item.create"
	AuditActionItemUpdate     = "item.update"
	AuditActionStaffCreate    = "staff.create"
)

// AdminAuditInput 审计记录输入
type AdminAuditInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	Action           string
	TargetType       string
	TargetID         string
	RequestID        string
	Detail           map[string]interface{}
}

// AdminAuditService 后台操作审计服务
type AdminAuditService struct {
	repo repository.AdminAuditLogRepository
}

// NewAdminAuditService 创建审计服务
func NewAdminAuditService(repo repository.AdminAuditLogRepository) *AdminAuditService {
	return &AdminAuditService{repo: repo}
}

// Record 写入审计日志。失败只记日志，不影响业务结果
func (s *AdminAuditService) Record(ctx context.Context, input AdminAuditInput) {
	if s == nil || s.repo == nil || input.OperatorAdminID == 0 {
		return
	}
	action := strings.TrimSpace(input.Action)
	if action == "" {
		return
	}
	entry := &models.AdminAuditLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		Action:           action,
		TargetType:       strings.TrimSpace(input.TargetType),
		TargetID:         strings.TrimSpace(input.TargetID),
		RequestID:        strings.TrimSpace(input.RequestID),
		CreatedAt:        time.Now(),
	}
	if len(input.Detail) > 0 {
		if raw, err := json.Marshal(input.Detail); err == nil {
			entry.Detail = string(raw)
		}
	}
	if err := s.repo.Create(entry); err != nil {
		logger.Ctx(ctx).Warnw("admin_audit_record_failed", "action", action, "error", err)
	}
}

// List 审计日志列表
func (s *AdminAuditService) List(filter repository.AdminAuditLogListFilter) ([]models.AdminAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AdminAuditLog{}, 0, nil
	}
	return s.repo.List(filter)
}
