package admin

import (
	"time"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 员工登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateStaffRequest 创建员工请求
type CreateStaffRequest struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	Roles    []string `json:"roles"`
}

var staffErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrAdminTargetInvalid, Code: response.CodeBadRequest, Key: "error.admin_target_invalid"},
	{Target: service.ErrInvalidRequest, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

// AdminLogin 员工登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		handlershared.RespondMappedError(c, err, []handlershared.ErrorRule{
			{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
		}, handlershared.ErrorRule{Code: response.CodeInternal, Key: "error.internal"})
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"admin":      admin,
	})
}

// CreateStaff 创建员工并分配角色（仅超级管理员）
func (h *Handler) CreateStaff(c *gin.Context) {
	if !isSuperAdmin(c) {
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
		return
	}
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, roles, err := h.AuthService.CreateStaff(service.StaffInput{
		Username: req.Username,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, staffErrorRules, handlershared.ErrorRule{
			Code: response.CodeInternal,
			Key:  "error.internal",
		})
		return
	}
	h.recordAudit(c, service.AuditActionStaffCreate, "admin", admin.ID, map[string]interface{}{
		"username": admin.Username,
		"roles":    roles,
	})
	response.Success(c, gin.H{
		"admin": admin,
		"roles": roles,
	})
}

// ListRoles 列出可分配的员工角色
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}
