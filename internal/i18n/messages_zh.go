package i18n

var messagesZhCN = map[string]string{
	"common.success": "成功",

	"notice.cart.item_added":       "商品已加入购物车。",
	"notice.cart.quantity_updated": "商品数量已更新。",
	"notice.cart.item_removed":     "商品已从购物车移除。",
	"notice.cart.item_not_in_cart": "购物车中没有该商品。",
	"notice.cart.no_active_order":  "您当前没有进行中的订单。",

	"notice.order.no_active_order":           "您当前没有进行中的订单",
	"notice.checkout.invalid_payment_option": "支付方式无效",
	"notice.checkout.form_invalid":           "结算信息填写有误",
	"notice.checkout.address_saved":          "账单地址已保存",

	"notice.coupon.added":     "优惠券已使用",
	"notice.coupon.not_found": "优惠券不存在",

	"notice.payment.no_active_order": "未找到进行中的订单",
	"notice.payment.billing_missing": "您还没有填写账单地址",
	"notice.payment.success":         "下单成功",
	"notice.payment.gateway_error":   "%s 支付出现问题",
	"notice.payment.serious_error":   "发生严重错误",
	"notice.payment.total_invalid":   "订单金额必须大于零",
	"notice.payment.token_missing":   "缺少支付凭证",
	"notice.payment.in_progress":     "该订单正在支付中",
	"notice.payment.already_paid":    "该订单已支付",

	"notice.refund.received":  "您的申请已收到",
	"notice.refund.not_found": "订单不存在",

	"error.bad_request":            "请求参数错误",
	"error.not_found":              "资源不存在",
	"error.item_not_found":         "商品不存在",
	"error.category_not_found":     "分类不存在",
	"error.internal":               "服务器内部错误",
	"error.unauthorized":           "未登录",
	"error.forbidden":              "无权限",
	"error.too_many_requests":      "请求过于频繁，请稍后再试",
	"error.rate_limited":           "请求过于频繁，请在 %d 秒后重试",
	"error.rate_limit_unavailable": "限流服务不可用",
	"error.auth_header_missing":    "缺少认证信息",
	"error.auth_header_invalid":    "认证信息格式错误",
	"error.token_invalid":          "令牌无效或已过期",
	"error.token_revoked":          "令牌已失效",
	"error.jwt_secret_missing":     "JWT 密钥未配置",
	"error.email_invalid":          "邮箱格式错误",
	"error.email_exists":           "邮箱已注册",
	"error.password_too_short":     "密码长度至少为 %d 位",
	"error.login_invalid":          "邮箱或密码错误",
	"error.user_disabled":          "账号已禁用",
	"error.captcha_required":       "请输入验证码",
	"error.captcha_invalid":        "验证码错误或已过期",
	"error.country_invalid":        "国家代码无效",
	"error.refund_form_invalid":    "订单号、说明与邮箱均为必填",
	"error.refund_not_found":       "退款申请不存在",
	"error.refund_accepted":        "退款已同意",
	"error.coupon_code_exists":     "优惠码已存在",
	"error.coupon_amount":          "优惠金额必须大于零",
	"error.slug_exists":            "标识已存在",
	"error.item_price_invalid":     "商品价格必须大于零",
	"error.discount_invalid":       "折扣价必须低于原价",
	"error.payment_option":         "不支持的支付方式",
	"error.payment_not_setup":      "支付网关未配置",
	"error.captcha_unavailable":    "验证码服务不可用",
	"error.admin_target_invalid":   "无效的管理员目标",

	"email.order_paid.subject":       "您的订单 %s",
	"email.order_paid.body":          "感谢您的购买。\n\n订单号：%s\n支付金额：%s %s\n\n如需申请退款请保留订单号。",
	"email.refund_requested.subject": "订单 %s 的退款申请",
	"email.refund_requested.body":    "我们已收到订单 %s 的退款申请，会尽快处理。",
}
