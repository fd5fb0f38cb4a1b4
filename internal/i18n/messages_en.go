package i18n

var messagesEnUS = map[string]string{
	"common.success": "success",

	"notice.cart.item_added":       "Item was added to your cart.",
	"notice.cart.quantity_updated": "Item quantity was updated.",
	"notice.cart.item_removed":     "Item was removed from your cart.",
	"notice.cart.item_not_in_cart": "Item was not in your cart.",
	"notice.cart.no_active_order":  "You don't have an active order.",

	"notice.order.no_active_order":           "You do not have an active order",
	"notice.checkout.invalid_payment_option": "Invalid payment option selected",
	"notice.checkout.form_invalid":           "Failed checkout",
	"notice.checkout.address_saved":          "Billing address saved",

	"notice.coupon.added":     "Successfully added coupon",
	"notice.coupon.not_found": "This coupon does not exist",

	"notice.payment.no_active_order": "No active order found",
	"notice.payment.billing_missing": "You have not added a billing address",
	"notice.payment.success":         "Order was successful",
	"notice.payment.gateway_error":   "Something went wrong with %s",
	"notice.payment.serious_error":   "A serious error occurred",
	"notice.payment.total_invalid":   "Your order total must be greater than zero",
	"notice.payment.token_missing":   "Payment token is required",
	"notice.payment.in_progress":     "A payment for this order is already in progress",
	"notice.payment.already_paid":    "This order has already been paid",

	"notice.refund.received":  "Your request was received",
	"notice.refund.not_found": "This order does not exist",

	"error.bad_request":            "invalid request",
	"error.not_found":              "not found",
	"error.item_not_found":         "item not found",
	"error.category_not_found":     "category not found",
	"error.internal":               "internal server error",
	"error.unauthorized":           "unauthorized",
	"error.forbidden":              "forbidden",
	"error.too_many_requests":      "too many requests, please try again later",
	"error.rate_limited":           "too many requests, please retry in %d seconds",
	"error.rate_limit_unavailable": "rate limiter is unavailable",
	"error.auth_header_missing":    "authorization header is missing",
	"error.auth_header_invalid":    "authorization header is invalid",
	"error.token_invalid":          "token is invalid or expired",
	"error.token_revoked":          "token has been revoked",
	"error.jwt_secret_missing":     "jwt secret is not configured",
	"error.email_invalid":          "email address is invalid",
	"error.email_exists":           "email is already registered",
	"error.password_too_short":     "password must be at least %d characters",
	"error.login_invalid":          "email or password is incorrect",
	"error.user_disabled":          "account is disabled",
	"error.captcha_required":       "captcha is required",
	"error.captcha_invalid":        "captcha is incorrect or expired",
	"error.country_invalid":        "country must be a valid ISO country code",
	"error.refund_form_invalid":    "reference code, message and email are required",
	"error.refund_not_found":       "refund not found",
	"error.refund_accepted":        "refund has already been accepted",
	"error.coupon_code_exists":     "coupon code already exists",
	"error.coupon_amount":          "coupon amount must be greater than zero",
	"error.slug_exists":            "slug already exists",
	"error.item_price_invalid":     "item price must be greater than zero",
	"error.discount_invalid":       "discount price must be lower than price",
	"error.payment_option":         "unsupported payment option",
	"error.payment_not_setup":      "payment gateway is not configured",
	"error.captcha_unavailable":    "captcha is unavailable",
	"error.admin_target_invalid":   "invalid staff target",

	"email.order_paid.subject":       "Your order %s",
	"email.order_paid.body":          "Thanks for your purchase.\n\nReference code: %s\nTotal charged: %s %s\n\nKeep the reference code if you ever need to request a refund.",
	"email.refund_requested.subject": "Refund request for order %s",
	"email.refund_requested.body":    "We received your refund request for order %s and will get back to you soon.",
}
