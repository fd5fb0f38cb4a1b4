package public

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

var cartOutcomeKeys = map[string]string{
	constants.CartOutcomeAdded:           "notice.cart.item_added",
	constants.CartOutcomeQuantityUpdated: "notice.cart.quantity_updated",
	constants.CartOutcomeRemoved:         "notice.cart.item_removed",
}

// AddToCart 加入购物车，完成后跳转订单摘要
func (h *Handler) AddToCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	slug := c.Param("slug")
	result, err := h.CartService.Add(requestContext(c), uid, slug)
	if err != nil {
		respondCartError(c, err, slug)
		return
	}
	respondNotice(c, response.CodeOK, constants.NoticeInfo, cartOutcomeKeys[result.Outcome], constants.PageOrderSummary, result)
}

// RemoveFromCart 移除整行，完成后跳转商品页
func (h *Handler) RemoveFromCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	slug := c.Param("slug")
	result, err := h.CartService.Remove(requestContext(c), uid, slug)
	if err != nil {
		respondCartError(c, err, slug)
		return
	}
	respondNotice(c, response.CodeOK, constants.NoticeInfo, cartOutcomeKeys[result.Outcome], constants.ProductPage(result.ItemSlug), result)
}

// RemoveSingleItem 数量减一，数量为 1 时移除整行
func (h *Handler) RemoveSingleItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	slug := c.Param("slug")
	result, err := h.CartService.Decrement(requestContext(c), uid, slug)
	if err != nil {
		respondCartError(c, err, slug)
		return
	}
	respondNotice(c, response.CodeOK, constants.NoticeInfo, cartOutcomeKeys[result.Outcome], constants.ProductPage(result.ItemSlug), result)
}

// respondCartError 购物车中没有该商品或没有订单属于提示，不是错误
func respondCartError(c *gin.Context, err error, slug string) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		respondError(c, response.CodeNotFound, "error.item_not_found", nil)
	case errors.Is(err, service.ErrItemNotInCart):
		respondNotice(c, response.CodeOK, constants.NoticeInfo, "notice.cart.item_not_in_cart", constants.ProductPage(slug), nil)
	case errors.Is(err, service.ErrNoActiveOrder):
		respondNotice(c, response.CodeOK, constants.NoticeInfo, "notice.cart.no_active_order", constants.ProductPage(slug), nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
