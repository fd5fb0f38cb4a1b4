package constants

import "strings"

// 支付方式常量
const (
	PaymentOptionStripe = "stripe"
	PaymentOptionPayPal = "paypal"
)

// 结算表单中的支付方式简写
const (
	PaymentOptionCodeStripe = "S"
	PaymentOptionCodePayPal = "P"
)

// 地址类型常量
const (
	AddressTypeBilling  = "B"
	AddressTypeShipping = "S"
)

// 提示级别常量
const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// 前端跳转目标
const (
	PageHome          = "/"
	PageOrderSummary  = "/order-summary"
	PageCheckout      = "/checkout"
	PageRequestRefund = "/request-refund"
	PageProductPrefix = "/product/"
	PagePaymentPrefix = "/payment/"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 订单编号
const (
	RefCodeLength   = 20
	RefCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// 购物车变更结果
const (
	CartOutcomeAdded           = "added"
	CartOutcomeQuantityUpdated = "quantity_updated"
	CartOutcomeRemoved         = "removed"
)

// 验证码场景
const (
	CaptchaSceneRefundRequest = "refund_request"
)

// NormalizePaymentOption 将表单值（S/P 或完整名称）归一为支付方式，无法识别返回空串
func NormalizePaymentOption(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case strings.ToLower(PaymentOptionCodeStripe), PaymentOptionStripe:
		return PaymentOptionStripe
	case strings.ToLower(PaymentOptionCodePayPal), PaymentOptionPayPal:
		return PaymentOptionPayPal
	default:
		return ""
	}
}

// PaymentOptionLabel 支付方式展示名
func PaymentOptionLabel(option string) string {
	switch option {
	case PaymentOptionStripe:
		return "Stripe"
	case PaymentOptionPayPal:
		return "PayPal"
	default:
		return option
	}
}

// ProductPage 商品详情页路径
func ProductPage(slug string) string {
	return PageProductPrefix + slug
}

// PaymentPage 支付页路径
func PaymentPage(option string) string {
	return PagePaymentPrefix + option
}

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskOrderPaidEmail       = "order:paid_email"
	TaskRefundRequestedEmail = "refund:requested_email"
)
