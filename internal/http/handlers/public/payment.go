package public

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/i18n"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// PayRequest 支付提交，token 由前端网关组件生成
type PayRequest struct {
	Token string `json:"token" form:"token"`
}

var paymentPageErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrPaymentOptionInvalid, Code: response.CodeBadRequest, Key: "notice.checkout.invalid_payment_option", Level: constants.NoticeWarning, Redirect: constants.PageCheckout},
	{Target: service.ErrNoActiveOrder, Code: response.CodeOK, Key: "notice.payment.no_active_order", Level: constants.NoticeError, Redirect: constants.PageCheckout},
	{Target: service.ErrBillingAddressMissing, Code: response.CodeOK, Key: "notice.payment.billing_missing", Level: constants.NoticeWarning, Redirect: constants.PageCheckout},
}

var paymentSubmitErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrPaymentOptionInvalid, Code: response.CodeBadRequest, Key: "notice.checkout.invalid_payment_option", Level: constants.NoticeWarning, Redirect: constants.PageCheckout},
	{Target: service.ErrNoActiveOrder, Code: response.CodeOK, Key: "notice.payment.no_active_order", Level: constants.NoticeError, Redirect: constants.PageCheckout},
	{Target: service.ErrBillingAddressMissing, Code: response.CodeOK, Key: "notice.payment.billing_missing", Level: constants.NoticeWarning, Redirect: constants.PageCheckout},
	{Target: service.ErrPaymentTokenMissing, Code: response.CodeBadRequest, Key: "notice.payment.token_missing", Level: constants.NoticeWarning, Redirect: constants.PageCheckout},
	{Target: service.ErrOrderTotalInvalid, Code: response.CodeBadRequest, Key: "notice.payment.total_invalid", Level: constants.NoticeWarning, Redirect: constants.PageOrderSummary},
	{Target: service.ErrPaymentInProgress, Code: response.CodeConflict, Key: "notice.payment.in_progress", Level: constants.NoticeWarning, Redirect: constants.PageHome},
	{Target: service.ErrOrderAlreadyPaid, Code: response.CodeConflict, Key: "notice.payment.already_paid", Level: constants.NoticeInfo, Redirect: constants.PageHome},
	{Target: service.ErrPaymentGatewayNotSetup, Code: response.CodeInternal, Key: "error.payment_not_setup", Level: constants.NoticeError, Redirect: constants.PageHome},
}

// PaymentPage 支付页数据
func (h *Handler) PaymentPage(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, err := h.PaymentService.Page(uid, c.Param("option"))
	if err != nil {
		handlershared.RespondMappedError(c, err, paymentPageErrorRules, handlershared.ErrorRule{
			Code: response.CodeInternal,
			Key:  "error.internal",
		})
		return
	}
	response.Success(c, page)
}

// SubmitPayment 对当前订单扣款
func (h *Handler) SubmitPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	option := c.Param("option")
	var req PayRequest
	if err := c.ShouldBind(&req); err != nil {
		respondNotice(c, response.CodeBadRequest, constants.NoticeWarning, "notice.payment.token_missing", constants.PaymentPage(option), nil)
		return
	}

	locale := i18n.ResolveLocale(c)
	result, err := h.PaymentService.Pay(requestContext(c), service.PayInput{
		UserID: uid,
		Option: option,
		Token:  req.Token,
		Locale: locale,
	})
	if err != nil {
		respondPaymentError(c, err, locale)
		return
	}
	respondNotice(c, response.CodeOK, constants.NoticeSuccess, "notice.payment.success", constants.PageHome, result)
}

// respondPaymentError 卡片被拒原样展示网关文案；网关故障只展示网关名；其余为通用错误
func respondPaymentError(c *gin.Context, err error, locale string) {
	var declined *service.PaymentDeclinedError
	if errors.As(err, &declined) {
		response.WithNotice(c, response.Notice{
			Code:     response.CodePaymentRequired,
			Level:    constants.NoticeError,
			Msg:      declined.Message,
			Redirect: constants.PageHome,
		}, nil)
		return
	}
	var gatewayErr *service.PaymentGatewayError
	if errors.As(err, &gatewayErr) {
		response.WithNotice(c, response.Notice{
			Code:     response.CodeBadGateway,
			Level:    constants.NoticeError,
			Msg:      i18n.Sprintf(locale, "notice.payment.gateway_error", gatewayErr.Gateway),
			Redirect: constants.PageHome,
		}, nil)
		return
	}
	handlershared.RespondMappedError(c, err, paymentSubmitErrorRules, handlershared.ErrorRule{
		Code:     response.CodeInternal,
		Key:      "notice.payment.serious_error",
		Level:    constants.NoticeError,
		Redirect: constants.PageHome,
	})
}
