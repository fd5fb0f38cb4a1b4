package shared

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/i18n"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorRule 业务错误到接口响应的映射
type ErrorRule struct {
	Target   error
	Code     int
	Key      string
	Level    string
	Redirect string
}

// RequestLog 提供携带 request_id 的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString(ContextKeyRequestID); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondNotice 返回国际化提示与跳转目标
func RespondNotice(c *gin.Context, code int, level, key, redirect string, data interface{}) {
	response.WithNotice(c, response.Notice{
		Code:     code,
		Level:    level,
		Msg:      i18n.T(i18n.ResolveLocale(c), key),
		Redirect: redirect,
	}, data)
}

// RespondMappedError 按规则表匹配错误，未命中时记录日志并返回兜底错误
func RespondMappedError(c *gin.Context, err error, rules []ErrorRule, fallback ErrorRule) {
	if RespondPasswordPolicyError(c, err) {
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			respondRule(c, rule, nil)
			return
		}
	}
	respondRule(c, fallback, err)
}

func respondRule(c *gin.Context, rule ErrorRule, err error) {
	if rule.Level == "" && rule.Redirect == "" {
		RespondError(c, rule.Code, rule.Key, err)
		return
	}
	if err != nil {
		RequestLog(c).Errorw("handler_error", "code", rule.Code, "key", rule.Key, "error", err)
	}
	RespondNotice(c, rule.Code, rule.Level, rule.Key, rule.Redirect, nil)
}

// RespondPasswordPolicyError 密码策略错误带格式化参数，单独翻译
func RespondPasswordPolicyError(c *gin.Context, err error) bool {
	if err == nil || !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.Key(), perr.Args()...)
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
	return true
}
