package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/queue"
	"github.com/dujiao-next/storefront/internal/repository"

	"gorm.io/gorm"
)

const refundMessageMaxLength = 2000

// RefundInput 退款申请表单
type RefundInput struct {
	RefCode string
	Message string
	Email   string
	Captcha CaptchaVerifyPayload
	Locale  string
}

// RefundService 退款申请服务
type RefundService struct {
	orderRepo   repository.OrderRepository
	refundRepo  repository.RefundRepository
	captchaSvc  *CaptchaService
	queueClient *queue.Client
}

// NewRefundService 创建退款申请服务
func NewRefundService(orderRepo repository.OrderRepository, refundRepo repository.RefundRepository, captchaSvc *CaptchaService, queueClient *queue.Client) *RefundService {
	return &RefundService{
		orderRepo:   orderRepo,
		refundRepo:  refundRepo,
		captchaSvc:  captchaSvc,
		queueClient: queueClient,
	}
}

// CaptchaRequired 退款表单是否需要验证码
func (s *RefundService) CaptchaRequired() bool {
	return s.captchaSvc != nil && s.captchaSvc.SceneEnabled(constants.CaptchaSceneRefundRequest)
}

// Request 按参考号提交退款申请，同一订单允许多次申请
func (s *RefundService) Request(ctx context.Context, input RefundInput) (*models.Refund, error) {
	refCode := strings.TrimSpace(input.RefCode)
	message := strings.TrimSpace(input.Message)
	if refCode == "" || utf8.RuneCountInString(refCode) > constants.RefCodeLength {
		return nil, ErrRefundFormInvalid
	}
	if message == "" || utf8.RuneCountInString(message) > refundMessageMaxLength {
		return nil, ErrRefundFormInvalid
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if s.captchaSvc != nil {
		if err := s.captchaSvc.Verify(constants.CaptchaSceneRefundRequest, input.Captcha); err != nil {
			return nil, err
		}
	}

	order, err := s.orderRepo.GetByRefCode(refCode)
	if err != nil {
		return nil, err
	}
	if order == nil || !order.Ordered {
		logger.Ctx(ctx).Infow("refund_order_not_found", "ref_code", refCode)
		return nil, ErrRefundOrderNotFound
	}

	refund := &models.Refund{
		OrderID: order.ID,
		Reason:  message,
		Email:   email,
	}
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.refundRepo.WithTx(tx).Create(refund); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).MarkRefundRequested(order.ID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueRefundRequestedEmail(queue.RefundRequestedEmailPayload{
		RefundID: refund.ID,
		Locale:   input.Locale,
	}); err != nil {
		logger.Ctx(ctx).Warnw("refund_email_enqueue_failed", "refund_id", refund.ID, "error", err)
	}
	logger.Ctx(ctx).Infow("refund_requested",
		"refund_id", refund.ID,
		"order_id", order.ID,
		"ref_code", refCode,
	)
	return refund, nil
}

// Accept 后台同意退款：标记申请已同意，订单转为已退款
func (s *RefundService) Accept(ctx context.Context, id uint) (*models.Refund, error) {
	refund, err := s.refundRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, ErrRefundNotFound
	}
	now := time.Now()
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		accepted, err := s.refundRepo.WithTx(tx).MarkAccepted(refund.ID, now)
		if err != nil {
			return err
		}
		if !accepted {
			return ErrRefundAlreadyAccepted
		}
		return s.orderRepo.WithTx(tx).GrantRefund(refund.OrderID)
	})
	if err != nil {
		return nil, err
	}
	refund.Accepted = true
	refund.AcceptedAt = &now
	logger.Ctx(ctx).Infow("refund_accepted", "refund_id", refund.ID, "order_id", refund.OrderID)
	return refund, nil
}

// List 退款申请列表
func (s *RefundService) List(filter repository.RefundListFilter) ([]models.Refund, int64, error) {
	return s.refundRepo.List(filter)
}

// Get 获取退款申请
func (s *RefundService) Get(id uint) (*models.Refund, error) {
	refund, err := s.refundRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, ErrRefundNotFound
	}
	return refund, nil
}
