package admin

import (
	"strconv"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs 后台操作审计日志
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.AdminAuditLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Action:   c.Query("action"),
	}
	if raw := c.Query("operator_admin_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.OperatorAdminID = uint(id)
	}
	logs, total, err := h.AdminAuditService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
