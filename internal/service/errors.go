package service

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// 商品目录
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugExists       = errors.New("slug already exists")
	ErrItemPriceInvalid = errors.New("item price must be greater than zero")
	ErrDiscountInvalid  = errors.New("discount price must be lower than price")
)

// 购物车与结算
var (
	ErrNoActiveOrder        = errors.New("no active order")
	ErrItemNotInCart        = errors.New("item not in cart")
	ErrCheckoutFormInvalid  = errors.New("checkout form invalid")
	ErrCountryInvalid       = errors.New("country code invalid")
	ErrPaymentOptionInvalid = errors.New("payment option invalid")
)

// 优惠券
var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponCodeExists    = errors.New("coupon code already exists")
	ErrCouponAmountInvalid = errors.New("coupon amount must be greater than zero")
)

// 支付
var (
	ErrBillingAddressMissing  = errors.New("billing address missing")
	ErrPaymentTokenMissing    = errors.New("payment token missing")
	ErrOrderTotalInvalid      = errors.New("order total must be greater than zero")
	ErrPaymentInProgress      = errors.New("payment already in progress")
	ErrOrderAlreadyPaid       = errors.New("order already paid")
	ErrPaymentGatewayNotSetup = errors.New("payment gateway not configured")
	ErrPaymentGateway         = errors.New("payment gateway error")
	ErrPaymentDeclined        = errors.New("payment declined")
)

// 退款
var (
	ErrRefundFormInvalid     = errors.New("refund form invalid")
	ErrRefundOrderNotFound   = errors.New("refund order not found")
	ErrRefundNotFound        = errors.New("refund not found")
	ErrRefundAlreadyAccepted = errors.New("refund already accepted")
)

// 账号与鉴权
var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already exists")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAdminTargetInvalid = errors.New("admin target invalid")
)

// 验证码与邮件
var (
	ErrCaptchaRequired           = errors.New("captcha required")
	ErrCaptchaInvalid            = errors.New("captcha invalid")
	ErrCaptchaUnavailable        = errors.New("captcha unavailable")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// PaymentDeclinedError 网关明确拒绝扣款，Message 为网关原文，需原样展示给用户
type PaymentDeclinedError struct {
	Gateway string
	Message string
}

func (e *PaymentDeclinedError) Error() string {
	return fmt.Sprintf("%s declined: %s", e.Gateway, e.Message)
}

// Unwrap 便于 errors.Is(err, ErrPaymentDeclined)
func (e *PaymentDeclinedError) Unwrap() error {
	return ErrPaymentDeclined
}

// PaymentGatewayError 网关调用失败（网络、鉴权、限流、响应异常）
type PaymentGatewayError struct {
	Gateway string
	Err     error
}

func (e *PaymentGatewayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s gateway error", e.Gateway)
	}
	return fmt.Sprintf("%s gateway error: %v", e.Gateway, e.Err)
}

// Is 同时匹配 ErrPaymentGateway
func (e *PaymentGatewayError) Is(target error) bool {
	return target == ErrPaymentGateway
}

// Unwrap 返回底层网关错误
func (e *PaymentGatewayError) Unwrap() error {
	return e.Err
}
