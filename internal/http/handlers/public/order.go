package public

import (
	"errors"

	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderSummary 当前购物车订单摘要
func (h *Handler) OrderSummary(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.CartService.Summary(uid)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveOrder) {
			respondNotice(c, response.CodeOK, constants.NoticeError, "notice.order.no_active_order", constants.PageHome, nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, service.BuildOrderView(order))
}

// ListOrders 已支付订单历史
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      uid,
		OnlyOrdered: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}
