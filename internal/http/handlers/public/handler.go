package public

import "github.com/dujiao-next/storefront/internal/provider"

// Handler 前台接口处理器入口
// 说明：该处理器用于商品浏览、购物车、结算、支付与退款申请。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
