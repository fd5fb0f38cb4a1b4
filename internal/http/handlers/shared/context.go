package shared

import (
	"context"

	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyAdminID   = "admin_id"
	ContextKeyIsSuper   = "is_super"
	ContextKeyUsername  = "username"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应
func GetContextUintWithKeys(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return 0, false
	}
}

// RequestContext 返回携带 request_id 的 context，供 service 层日志使用
func RequestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if id := c.GetString(ContextKeyRequestID); id != "" {
		ctx = logger.WithRequestID(ctx, id)
	}
	return ctx
}
