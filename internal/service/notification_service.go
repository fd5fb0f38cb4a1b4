package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/repository"
)

// NotificationService 异步邮件通知：由队列消费者调用
type NotificationService struct {
	orderRepo    repository.OrderRepository
	refundRepo   repository.RefundRepository
	userRepo     repository.UserRepository
	emailService *EmailService
}

// NewNotificationService 创建通知服务
func NewNotificationService(orderRepo repository.OrderRepository, refundRepo repository.RefundRepository, userRepo repository.UserRepository, emailService *EmailService) *NotificationService {
	return &NotificationService{
		orderRepo:    orderRepo,
		refundRepo:   refundRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// SendOrderPaid 发送支付回执。邮件服务未启用或收件人无效时跳过，不再重试
func (s *NotificationService) SendOrderPaid(ctx context.Context, orderID uint, locale string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || !order.Ordered || order.RefCode == nil {
		logger.Ctx(ctx).Warnw("order_paid_email_skipped", "order_id", orderID, "reason", "order_not_paid")
		return nil
	}
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Ctx(ctx).Warnw("order_paid_email_skipped", "order_id", orderID, "reason", "user_missing")
		return nil
	}
	if locale == "" {
		locale = user.Locale
	}

	input := OrderPaidEmailInput{RefCode: *order.RefCode, Amount: order.Total()}
	if order.Payment != nil {
		input.Amount = order.Payment.Amount
		input.Currency = order.Payment.Currency
	}
	err = s.emailService.SendOrderPaidEmail(user.Email, input, locale)
	return s.settle(ctx, "order_paid_email", err, "order_id", orderID)
}

// SendRefundRequested 发送退款申请确认
func (s *NotificationService) SendRefundRequested(ctx context.Context, refundID uint, locale string) error {
	refund, err := s.refundRepo.GetByID(refundID)
	if err != nil {
		return err
	}
	if refund == nil || refund.Order == nil || refund.Order.RefCode == nil {
		logger.Ctx(ctx).Warnw("refund_email_skipped", "refund_id", refundID, "reason", "refund_missing")
		return nil
	}
	err = s.emailService.SendRefundRequestedEmail(refund.Email, *refund.Order.RefCode, locale)
	return s.settle(ctx, "refund_email", err, "refund_id", refundID)
}

func (s *NotificationService) settle(ctx context.Context, event string, err error, kv ...interface{}) error {
	log := logger.Ctx(ctx).With(kv...)
	switch {
	case err == nil:
		log.Infow(event + "_sent")
		return nil
	case errors.Is(err, ErrEmailServiceDisabled), errors.Is(err, ErrEmailServiceNotConfigured), errors.Is(err, ErrEmailRecipientRejected), errors.Is(err, ErrInvalidEmail):
		log.Warnw(event+"_skipped", "error", err)
		return nil
	default:
		return err
	}
}
