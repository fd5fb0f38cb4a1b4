package public

import (
	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCouponRequest 优惠码表单
type AddCouponRequest struct {
	Code string `json:"code" form:"code"`
}

var addCouponErrorRules = []handlershared.ErrorRule{
	{Target: service.ErrCouponNotFound, Code: response.CodeOK, Key: "notice.coupon.not_found", Level: constants.NoticeInfo, Redirect: constants.PageCheckout},
	{Target: service.ErrNoActiveOrder, Code: response.CodeOK, Key: "notice.order.no_active_order", Level: constants.NoticeInfo, Redirect: constants.PageCheckout},
}

// AddCoupon 绑定优惠码到当前订单
func (h *Handler) AddCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCouponRequest
	if err := c.ShouldBind(&req); err != nil {
		respondNotice(c, response.CodeBadRequest, constants.NoticeWarning, "error.bad_request", constants.PageCheckout, nil)
		return
	}
	coupon, err := h.CouponService.Apply(requestContext(c), uid, req.Code)
	if err != nil {
		handlershared.RespondMappedError(c, err, addCouponErrorRules, handlershared.ErrorRule{
			Code: response.CodeInternal,
			Key:  "error.internal",
		})
		return
	}
	respondNotice(c, response.CodeOK, constants.NoticeSuccess, "notice.coupon.added", constants.PageCheckout, gin.H{
		"code":   coupon.Code,
		"amount": coupon.Amount,
	})
}
