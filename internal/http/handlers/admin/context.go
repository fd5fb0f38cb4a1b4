package admin

import (
	"context"
	"strconv"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextKeyAdminID)
}

func isSuperAdmin(c *gin.Context) bool {
	return c.GetBool(handlershared.ContextKeyIsSuper)
}

func requestContext(c *gin.Context) context.Context {
	return handlershared.RequestContext(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(value), true
}

// recordAudit 记录员工操作，操作人取自鉴权上下文
func (h *Handler) recordAudit(c *gin.Context, action, targetType string, targetID uint, detail map[string]interface{}) {
	adminID, _ := c.Get(handlershared.ContextKeyAdminID)
	operatorID, _ := adminID.(uint)
	h.AdminAuditService.Record(requestContext(c), service.AdminAuditInput{
		OperatorAdminID:  operatorID,
		OperatorUsername: c.GetString(handlershared.ContextKeyUsername),
		Action:           action,
		TargetType:       targetType,
		TargetID:         strconv.FormatUint(uint64(targetID), 10),
		RequestID:        c.GetString(handlershared.ContextKeyRequestID),
		Detail:           detail,
	})
}
