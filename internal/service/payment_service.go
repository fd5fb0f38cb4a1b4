package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/queue"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const refCodeMaxAttempts = 5

// PaymentService 支付服务
type PaymentService struct {
	cfg           config.PaymentConfig
	currency      string
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	paymentRepo   repository.PaymentRepository
	queueClient   *queue.Client
	gateways      map[string]PaymentGateway
}

// NewPaymentService 创建支付服务
func NewPaymentService(cfg *config.Config, orderRepo repository.OrderRepository, orderItemRepo repository.OrderItemRepository, paymentRepo repository.PaymentRepository, queueClient *queue.Client) *PaymentService {
	svc := &PaymentService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		paymentRepo:   paymentRepo,
		queueClient:   queueClient,
		currency:      "usd",
		gateways:      map[string]PaymentGateway{},
	}
	if cfg != nil {
		svc.cfg = cfg.Payment
		if currency := strings.ToLower(strings.TrimSpace(cfg.Shop.Currency)); currency != "" {
			svc.currency = currency
		}
	}
	return svc
}

// WithGateway 替换指定支付方式的网关实现
func (s *PaymentService) WithGateway(option string, gateway PaymentGateway) *PaymentService {
	s.gateways[option] = gateway
	return s
}

// PaymentPage 支付页数据
type PaymentPage struct {
	Option         string     `json:"option"`
	Gateway        string     `json:"gateway"`
	Currency       string     `json:"currency"`
	AmountMinor    int64      `json:"amount_minor"`
	PublishableKey string     `json:"publishable_key,omitempty"`
	PayPalClientID string     `json:"paypal_client_id,omitempty"`
	Order          *OrderView `json:"order"`
}

// PayInput 提交支付
type PayInput struct {
	UserID uint
	Option string
	Token  string
	Locale string
}

// PayResult 支付结果
type PayResult struct {
	OrderID  uint         `json:"order_id"`
	RefCode  string       `json:"ref_code"`
	Gateway  string       `json:"gateway"`
	ChargeID string       `json:"charge_id"`
	Amount   models.Money `json:"amount"`
	Currency string       `json:"currency"`
}

// Page 支付页：需要未支付订单且已填写账单地址
func (s *PaymentService) Page(userID uint, option string) (*PaymentPage, error) {
	normalized := constants.NormalizePaymentOption(option)
	if normalized == "" {
		return nil, ErrPaymentOptionInvalid
	}
	order, err := s.loadPayableOrder(userID)
	if err != nil {
		return nil, err
	}
	page := &PaymentPage{
		Option:      normalized,
		Gateway:     constants.PaymentOptionLabel(normalized),
		Currency:    s.currency,
		AmountMinor: order.Total().MinorUnits(),
		Order:       BuildOrderView(order),
	}
	switch normalized {
	case constants.PaymentOptionStripe:
		page.PublishableKey = s.cfg.Stripe.PublishableKey
	case constants.PaymentOptionPayPal:
		page.PayPalClientID = s.cfg.PayPal.ClientID
	}
	return page, nil
}

// Pay 对当前订单扣款。成功后写入支付记录、标记订单已支付并分配参考号
func (s *PaymentService) Pay(ctx context.Context, input PayInput) (*PayResult, error) {
	option := constants.NormalizePaymentOption(input.Option)
	if option == "" {
		return nil, ErrPaymentOptionInvalid
	}
	order, err := s.loadPayableOrder(input.UserID)
	if err != nil {
		return nil, err
	}
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return nil, ErrPaymentTokenMissing
	}
	if order.Total().MinorUnits() <= 0 {
		return nil, ErrOrderTotalInvalid
	}
	gateway, err := s.gateway(option)
	if err != nil {
		return nil, err
	}

	log := logger.Ctx(ctx).With("user_id", input.UserID, "order_id", order.ID, "gateway", option)

	lock, err := cache.AcquireLock(ctx, paymentLockKey(order.ID), s.lockTTL())
	if err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			log.Warnw("payment_in_progress")
			return nil, ErrPaymentInProgress
		}
		return nil, err
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			log.Warnw("payment_lock_release_failed", "error", err)
		}
	}()

	chargeKey, err := s.prepareCharge(order.ID)
	if err != nil {
		return nil, err
	}
	// 抢到锁后重新读取，金额以锁内的订单为准
	order, err = s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.Ordered {
		return nil, ErrOrderAlreadyPaid
	}
	total := order.Total()
	if total.MinorUnits() <= 0 {
		return nil, ErrOrderTotalInvalid
	}

	log.Infow("payment_charge_started", "amount", total.String(), "currency", s.currency)
	outcome, err := gateway.Charge(ctx, ChargeRequest{
		OrderID:        order.ID,
		UserID:         input.UserID,
		Amount:         total,
		Currency:       s.currency,
		Token:          token,
		IdempotencyKey: chargeKey,
	})
	if err != nil {
		return nil, s.handleChargeError(log, order.ID, err)
	}

	payment, refCode, err := s.finalize(order, option, chargeKey, outcome)
	if err != nil {
		log.Errorw("payment_finalize_failed", "charge_id", outcome.ChargeID, "error", err)
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderPaidEmail(queue.OrderPaidEmailPayload{
		OrderID: order.ID,
		Locale:  input.Locale,
	}); err != nil {
		log.Warnw("order_paid_email_enqueue_failed", "error", err)
	}
	log.Infow("payment_succeeded",
		"payment_id", payment.ID,
		"charge_id", payment.ChargeID,
		"amount", payment.Amount.String(),
		"ref_code", refCode,
	)
	return &PayResult{
		OrderID:  order.ID,
		RefCode:  refCode,
		Gateway:  gateway.Name(),
		ChargeID: payment.ChargeID,
		Amount:   payment.Amount,
		Currency: payment.Currency,
	}, nil
}

func (s *PaymentService) loadPayableOrder(userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoActiveOrder
	}
	if order.BillingAddressID == nil {
		return nil, ErrBillingAddressMissing
	}
	return order, nil
}

func (s *PaymentService) gateway(option string) (PaymentGateway, error) {
	if gw, ok := s.gateways[option]; ok && gw != nil {
		return gw, nil
	}
	return NewPaymentGateway(option, s.cfg)
}

func (s *PaymentService) lockTTL() time.Duration {
	if s.cfg.LockSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.cfg.LockSeconds) * time.Second
}

// prepareCharge 行锁内确认订单未支付，并取得（或生成）本次扣款的幂等键
func (s *PaymentService) prepareCharge(orderID uint) (string, error) {
	var chargeKey string
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		locked, err := orderRepo.LockByID(orderID)
		if err != nil {
			return err
		}
		if locked == nil || locked.Ordered {
			return ErrOrderAlreadyPaid
		}
		chargeKey = locked.ChargeKey
		if chargeKey != "" {
			return nil
		}
		chargeKey = uuid.NewString()
		return orderRepo.SetChargeKey(orderID, chargeKey)
	})
	if err != nil {
		return "", err
	}
	return chargeKey, nil
}

func (s *PaymentService) handleChargeError(log *zap.SugaredLogger, orderID uint, err error) error {
	var declined *PaymentDeclinedError
	if errors.As(err, &declined) {
		log.Errorw("payment_charge_declined", "message", declined.Message)
		// 明确被拒后换新的幂等键，否则网关会重放同一次失败
		if clearErr := s.orderRepo.ClearChargeKey(orderID); clearErr != nil {
			log.Warnw("payment_charge_key_clear_failed", "error", clearErr)
		}
		return err
	}
	var gatewayErr *PaymentGatewayError
	if errors.As(err, &gatewayErr) {
		log.Errorw("payment_gateway_failed", "error", gatewayErr.Err)
		return err
	}
	log.Errorw("payment_charge_failed", "error", err)
	return err
}

// finalize 记录支付、标记订单与订单行。同一笔网关流水重复提交时直接返回已有结果
func (s *PaymentService) finalize(order *models.Order, option, chargeKey string, outcome *ChargeOutcome) (*models.Payment, string, error) {
	payment := &models.Payment{
		UserID:         order.UserID,
		OrderID:        order.ID,
		Gateway:        option,
		ChargeID:       outcome.ChargeID,
		Amount:         outcome.Amount,
		Currency:       outcome.Currency,
		IdempotencyKey: chargeKey,
	}
	var refCode string
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		existing, err := paymentRepo.GetByChargeID(outcome.ChargeID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.OrderID != order.ID {
				return fmt.Errorf("charge %s already recorded for order %d", outcome.ChargeID, existing.OrderID)
			}
			payment = existing
			recorded, err := orderRepo.GetByID(order.ID)
			if err != nil {
				return err
			}
			if recorded != nil && recorded.RefCode != nil {
				refCode = *recorded.RefCode
			}
			return nil
		}

		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		now := time.Now()
		for attempt := 1; ; attempt++ {
			refCode, err = GenerateRefCode()
			if err != nil {
				return err
			}
			tx.SavePoint("ref_code")
			marked, err := orderRepo.MarkOrdered(order.ID, payment.ID, refCode, now)
			if err == nil {
				if !marked {
					return ErrOrderAlreadyPaid
				}
				break
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= refCodeMaxAttempts {
				return err
			}
			tx.RollbackTo("ref_code")
		}
		return s.orderItemRepo.WithTx(tx).MarkOrdered(order.ID)
	})
	if err != nil {
		return nil, "", err
	}
	return payment, refCode, nil
}

// GenerateRefCode 生成 20 位小写字母数字订单参考号
func GenerateRefCode() (string, error) {
	alphabet := constants.RefCodeAlphabet
	limit := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(constants.RefCodeLength)
	for i := 0; i < constants.RefCodeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

func paymentLockKey(orderID uint) string {
	return fmt.Sprintf("payment:lock:order:%d", orderID)
}
