package admin

import (
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCouponRequest 创建优惠券请求
type CreateCouponRequest struct {
	Code   string       `json:"code" binding:"required"`
	Amount models.Money `json:"amount"`
}

var createCouponErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrInvalidRequest, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrCouponAmountInvalid, Code: response.CodeBadRequest, Key: "error.coupon_amount"},
	{Target: service.ErrCouponCodeExists, Code: response.CodeConflict, Key: "error.coupon_code_exists"},
}

// ListCoupons 优惠券列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	coupons, total, err := h.CouponAdminService.List(repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     c.Query("code"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.NewPagination(page, pageSize, total))
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	coupon, err := h.CouponAdminService.Create(requestContext(c), service.CreateCouponInput{
		Code:   req.Code,
		Amount: req.Amount,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, createCouponErrorRules, handlershared.ErrorRule{
			Code: response.CodeInternal,
			Key:  "error.internal",
		})
		return
	}
	h.recordAudit(c, service.AuditActionCouponCreate, "coupon", coupon.ID, map[string]interface{}{
		"code":   coupon.Code,
		"amount": coupon.Amount.String(),
	})
	response.Success(c, coupon)
}
