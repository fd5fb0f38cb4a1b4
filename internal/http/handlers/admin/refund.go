package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

var acceptRefundErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrRefundNotFound, Code: response.CodeNotFound, Key: "error.refund_not_found"},
	{Target: service.ErrRefundAlreadyAccepted, Code: response.CodeConflict, Key: "error.refund_accepted"},
}

// ListRefunds 退款申请列表
func (h *Handler) ListRefunds(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.RefundListFilter{Page: page, PageSize: pageSize}
	if raw := c.Query("accepted"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.Accepted = &value
	}
	refunds, total, err := h.RefundService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, refunds, response.NewPagination(page, pageSize, total))
}

// GetRefund 退款申请详情
func (h *Handler) GetRefund(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	refund, err := h.RefundService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrRefundNotFound) {
			respondError(c, response.CodeNotFound, "error.refund_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, refund)
}

// AcceptRefund 同意退款，订单标记为已退款
func (h *Handler) AcceptRefund(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	refund, err := h.RefundService.Accept(requestContext(c), id)
	if err != nil {
		handlershared.RespondMappedError(c, err, acceptRefundErrorRules, handlershared.ErrorRule{
			Code: response.CodeInternal,
			Key:  "error.internal",
		})
		return
	}
	h.recordAudit(c, service.AuditActionRefundAccept, "refund", refund.ID, map[string]interface{}{
		"order_id": refund.OrderID,
	})
	response.Success(c, refund)
}
