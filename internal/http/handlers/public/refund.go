package public

import (
	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/i18n"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// RefundRequest 退款申请表单
type RefundRequest struct {
	RefCode        string                              `json:"ref_code" form:"ref_code"`
	Message        string                              `json:"message" form:"message"`
	Email          string                              `json:"email" form:"email"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

var refundErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrRefundOrderNotFound, Code: response.CodeOK, Key: "notice.refund.not_found", Level: constants.NoticeInfo, Redirect: constants.PageRequestRefund},
	{Target: service.ErrRefundFormInvalid, Code: response.CodeBadRequest, Key: "error.refund_form_invalid", Level: constants.NoticeWarning, Redirect: constants.PageRequestRefund},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid", Level: constants.NoticeWarning, Redirect: constants.PageRequestRefund},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required", Level: constants.NoticeWarning, Redirect: constants.PageRequestRefund},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid", Level: constants.NoticeWarning, Redirect: constants.PageRequestRefund},
	{Target: service.ErrCaptchaUnavailable, Code: response.CodeInternal, Key: "error.captcha_unavailable", Level: constants.NoticeError, Redirect: constants.PageRequestRefund},
}

// RefundForm 退款表单元数据
func (h *Handler) RefundForm(c *gin.Context) {
	response.Success(c, gin.H{
		"ref_code_max_length": constants.RefCodeLength,
		"captcha_required":    h.RefundService.CaptchaRequired(),
	})
}

// SubmitRefund 提交退款申请，订单不存在时只做提示
func (h *Handler) SubmitRefund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBind(&req); err != nil {
		respondNotice(c, response.CodeBadRequest, constants.NoticeWarning, "error.refund_form_invalid", constants.PageRequestRefund, nil)
		return
	}
	refund, err := h.RefundService.Request(requestContext(c), service.RefundInput{
		RefCode: req.RefCode,
		Message: req.Message,
		Email:   req.Email,
		Captcha: req.CaptchaPayload.ToServicePayload(),
		Locale:  i18n.ResolveLocale(c),
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, refundErrorRules, handlershared.ErrorRule{
			Code:     response.CodeInternal,
			Key:      "error.internal",
			Level:    constants.NoticeError,
			Redirect: constants.PageRequestRefund,
		})
		return
	}
	respondNotice(c, response.CodeOK, constants.NoticeInfo, "notice.refund.received", constants.PageRequestRefund, gin.H{
		"refund_id": refund.ID,
	})
}
