package public

import (
	"context"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextKeyUserID)
}

func requestContext(c *gin.Context) context.Context {
	return handlershared.RequestContext(c)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondNotice(c *gin.Context, code int, level, key, redirect string, data interface{}) {
	handlershared.RespondNotice(c, code, level, key, redirect, data)
}
