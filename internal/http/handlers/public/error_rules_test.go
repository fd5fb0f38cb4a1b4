package public

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/i18n"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noticeBody struct {
	StatusCode int    `json:"status_code"`
	Msg        string `json:"msg"`
	Level      string `json:"level"`
	Redirect   string `json:"redirect"`
}

func captureNotice(t *testing.T, respond func(c *gin.Context)) noticeBody {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	respond(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body noticeBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestRefundErrorRules(t *testing.T) {
	fallback := handlershared.ErrorRule{Code: response.CodeInternal, Key: "error.internal", Level: constants.NoticeError, Redirect: constants.PageRequestRefund}
	tests := []struct {
		name     string
		err      error
		code     int
		level    string
		msg      string
		redirect string
	}{
		{
			name:     "unknown_ref_code",
			err:      fmt.Errorf("lookup: %w", service.ErrRefundOrderNotFound),
			code:     response.CodeOK,
			level:    constants.NoticeInfo,
			msg:      "This order does not exist",
			redirect: constants.PageRequestRefund,
		},
		{
			name:     "captcha_required",
			err:      service.ErrCaptchaRequired,
			code:     response.CodeBadRequest,
			level:    constants.NoticeWarning,
			msg:      "captcha is required",
			redirect: constants.PageRequestRefund,
		},
		{
			name:     "storage_failure",
			err:      errors.New("database is locked"),
			code:     response.CodeInternal,
			level:    constants.NoticeError,
			msg:      "internal server error",
			redirect: constants.PageRequestRefund,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := captureNotice(t, func(c *gin.Context) {
				handlershared.RespondMappedError(c, tt.err, refundErrorRules, fallback)
			})
			assert.Equal(t, tt.code, body.StatusCode)
			assert.Equal(t, tt.level, body.Level)
			assert.Equal(t, tt.msg, body.Msg)
			assert.Equal(t, tt.redirect, body.Redirect)
		})
	}
}

func TestRespondPaymentError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  int
		level string
		msg   string
	}{
		{
			name:  "declined_message_verbatim",
			err:   &service.PaymentDeclinedError{Gateway: "Stripe", Message: "Your card has insufficient funds."},
			code:  response.CodePaymentRequired,
			level: constants.NoticeError,
			msg:   "Your card has insufficient funds.",
		},
		{
			name:  "gateway_failure_names_gateway",
			err:   &service.PaymentGatewayError{Gateway: "PayPal", Err: errors.New("503")},
			code:  response.CodeBadGateway,
			level: constants.NoticeError,
			msg:   "Something went wrong with PayPal",
		},
		{
			name:  "already_paid",
			err:   service.ErrOrderAlreadyPaid,
			code:  response.CodeConflict,
			level: constants.NoticeInfo,
			msg:   "This order has already been paid",
		},
		{
			name:  "unexpected_error",
			err:   errors.New("connection reset"),
			code:  response.CodeInternal,
			level: constants.NoticeError,
			msg:   "A serious error occurred",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := captureNotice(t, func(c *gin.Context) {
				respondPaymentError(c, tt.err, i18n.LocaleEnUS)
			})
			assert.Equal(t, tt.code, body.StatusCode)
			assert.Equal(t, tt.level, body.Level)
			assert.Equal(t, tt.msg, body.Msg)
		})
	}
}

func TestCheckoutSubmitUnexpectedErrorIsGeneric(t *testing.T) {
	body := captureNotice(t, func(c *gin.Context) {
		handlershared.RespondMappedError(c, errors.New("insert billing address: disk full"), checkoutSubmitErrorRules, checkoutSubmitFallback)
	})
	assert.Equal(t, response.CodeInternal, body.StatusCode)
	assert.Equal(t, constants.NoticeError, body.Level)
	assert.Equal(t, "A serious error occurred", body.Msg)
	assert.Equal(t, constants.PageCheckout, body.Redirect)

	body = captureNotice(t, func(c *gin.Context) {
		handlershared.RespondMappedError(c, service.ErrCheckoutFormInvalid, checkoutSubmitErrorRules, checkoutSubmitFallback)
	})
	assert.Equal(t, response.CodeBadRequest, body.StatusCode)
	assert.Equal(t, "Failed checkout", body.Msg)
}
