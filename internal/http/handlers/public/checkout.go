package public

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算表单
type CheckoutRequest struct {
	StreetAddress       string `json:"street_address" form:"street_address"`
	ApartmentAddress    string `json:"apartment_address" form:"apartment_address"`
	Country             string `json:"country" form:"country"`
	Zip                 string `json:"zip" form:"zip"`
	SameShippingAddress bool   `json:"same_shipping_address" form:"same_shipping_address"`
	SaveInfo            bool   `json:"save_info" form:"save_info"`
	PaymentOption       string `json:"payment_option" form:"payment_option"`
}

var checkoutSubmitErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrNoActiveOrder, Code: response.CodeOK, Key: "notice.order.no_active_order", Level: constants.NoticeError, Redirect: constants.PageOrderSummary},
	{Target: service.ErrCheckoutFormInvalid, Code: response.CodeBadRequest, Key: "notice.checkout.form_invalid", Level: constants.NoticeWarning, Redirect: constants.PageCheckout},
	{Target: service.ErrCountryInvalid, Code: response.CodeBadRequest, Key: "error.country_invalid", Level: constants.NoticeWarning, Redirect: constants.PageCheckout},
	{Target: service.ErrPaymentOptionInvalid, Code: response.CodeBadRequest, Key: "notice.checkout.invalid_payment_option", Level: constants.NoticeWarning, Redirect: constants.PageCheckout},
}

var checkoutSubmitFallback = handlershared.ErrorRule{
	Code:     response.CodeInternal,
	Key:      "notice.payment.serious_error",
	Level:    constants.NoticeError,
	Redirect: constants.PageCheckout,
}

// CheckoutForm 结算页数据：订单、国家列表、支付方式、默认账单地址
func (h *Handler) CheckoutForm(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	form, err := h.CheckoutService.Form(uid)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveOrder) {
			respondNotice(c, response.CodeOK, constants.NoticeInfo, "notice.order.no_active_order", constants.PageOrderSummary, nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, form)
}

// SubmitCheckout 保存账单地址，成功后跳转所选支付方式的支付页
func (h *Handler) SubmitCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		respondNotice(c, response.CodeBadRequest, constants.NoticeWarning, "notice.checkout.form_invalid", constants.PageCheckout, nil)
		return
	}
	result, err := h.CheckoutService.Submit(requestContext(c), uid, service.CheckoutInput{
		StreetAddress:       req.StreetAddress,
		ApartmentAddress:    req.ApartmentAddress,
		Country:             req.Country,
		Zip:                 req.Zip,
		SameShippingAddress: req.SameShippingAddress,
		SaveInfo:            req.SaveInfo,
		PaymentOption:       req.PaymentOption,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, checkoutSubmitErrorRules, checkoutSubmitFallback)
		return
	}
	respondNotice(c, response.CodeOK, constants.NoticeSuccess, "notice.checkout.address_saved", constants.PaymentPage(result.PaymentOption), result)
}
