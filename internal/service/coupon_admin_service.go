package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"gorm.io/gorm"
)

const couponCodeMaxLength = 15

// CouponAdminService 优惠券管理服务
type CouponAdminService struct {
	repo repository.CouponRepository
}

// NewCouponAdminService 创建优惠券管理服务
func NewCouponAdminService(repo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{repo: repo}
}

// CreateCouponInput 创建优惠券输入
type CreateCouponInput struct {
	Code   string
	Amount models.Money
}

// Create 创建优惠券，优惠码区分大小写
func (s *CouponAdminService) Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" || utf8.RuneCountInString(code) > couponCodeMaxLength {
		return nil, ErrInvalidRequest
	}
	if !input.Amount.Decimal.IsPositive() {
		return nil, ErrCouponAmountInvalid
	}
	exist, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCouponCodeExists
	}

	coupon := &models.Coupon{
		Code:   code,
		Amount: models.NewMoneyFromDecimal(input.Amount.Decimal),
	}
	if err := s.repo.Create(coupon); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCouponCodeExists
		}
		return nil, err
	}
	logger.Ctx(ctx).Infow("coupon_created", "coupon_id", coupon.ID, "code", coupon.Code, "amount", coupon.Amount.String())
	return coupon, nil
}

// List 优惠券列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.repo.List(filter)
}
