package service

import (
	"context"
	"strings"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
	orderRepo  repository.OrderRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, orderRepo repository.OrderRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		orderRepo:  orderRepo,
	}
}

// Apply 将优惠码绑定到用户的未支付订单，覆盖已有优惠券
func (s *CouponService) Apply(ctx context.Context, userID uint, code string) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCouponNotFound
	}
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	order, err := s.orderRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoActiveOrder
	}
	if err := s.orderRepo.SetCoupon(order.ID, coupon.ID); err != nil {
		return nil, err
	}

	var previous interface{}
	if order.CouponID != nil {
		previous = *order.CouponID
	}
	logger.Ctx(ctx).Infow("coupon_applied",
		"user_id", userID,
		"order_id", order.ID,
		"coupon_id", coupon.ID,
		"previous_coupon_id", previous,
	)
	return coupon, nil
}
