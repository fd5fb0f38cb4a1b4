package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/payment/paypal"
	"github.com/dujiao-next/storefront/internal/payment/stripe"

	"github.com/shopspring/decimal"
)

// ChargeRequest 网关扣款请求
type ChargeRequest struct {
	OrderID        uint
	UserID         uint
	Amount         models.Money
	Currency       string
	Token          string
	IdempotencyKey string
}

// ChargeOutcome 网关扣款结果
type ChargeOutcome struct {
	ChargeID string
	Amount   models.Money
	Currency string
}

// PaymentGateway 支付网关适配器
// 卡片被拒返回 *PaymentDeclinedError，其余网关故障返回 *PaymentGatewayError
type PaymentGateway interface {
	Name() string
	Charge(ctx context.Context, req ChargeRequest) (*ChargeOutcome, error)
}

// NewPaymentGateway 根据支付方式创建网关适配器，未配置时返回 ErrPaymentGatewayNotSetup
func NewPaymentGateway(option string, cfg config.PaymentConfig) (PaymentGateway, error) {
	switch option {
	case constants.PaymentOptionStripe:
		gwCfg := &stripe.Config{
			SecretKey:      cfg.Stripe.SecretKey,
			PublishableKey: cfg.Stripe.PublishableKey,
			APIBaseURL:     cfg.Stripe.APIBaseURL,
		}
		if err := stripe.ValidateConfig(gwCfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentGatewayNotSetup, err)
		}
		return &stripeGateway{cfg: gwCfg}, nil
	case constants.PaymentOptionPayPal:
		gwCfg := &paypal.Config{
			ClientID:     cfg.PayPal.ClientID,
			ClientSecret: cfg.PayPal.ClientSecret,
			BaseURL:      cfg.PayPal.BaseURL,
		}
		if err := paypal.ValidateConfig(gwCfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentGatewayNotSetup, err)
		}
		return &paypalGateway{cfg: gwCfg}, nil
	default:
		return nil, ErrPaymentOptionInvalid
	}
}

type stripeGateway struct {
	cfg *stripe.Config
}

func (g *stripeGateway) Name() string {
	return constants.PaymentOptionLabel(constants.PaymentOptionStripe)
}

func (g *stripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeOutcome, error) {
	amount, err := stripe.ToMinorAmount(req.Amount.String(), req.Currency)
	if err != nil {
		return nil, &PaymentGatewayError{Gateway: g.Name(), Err: err}
	}
	result, err := stripe.CreateCharge(ctx, g.cfg, stripe.ChargeInput{
		Amount:         amount,
		Currency:       req.Currency,
		Source:         req.Token,
		Description:    fmt.Sprintf("order %d", req.OrderID),
		IdempotencyKey: req.IdempotencyKey,
		Metadata: map[string]string{
			"order_id": fmt.Sprintf("%d", req.OrderID),
			"user_id":  fmt.Sprintf("%d", req.UserID),
		},
	})
	if err != nil {
		var cardErr *stripe.CardError
		if errors.As(err, &cardErr) {
			return nil, &PaymentDeclinedError{Gateway: g.Name(), Message: cardErr.Message}
		}
		return nil, &PaymentGatewayError{Gateway: g.Name(), Err: err}
	}
	return &ChargeOutcome{
		ChargeID: result.ChargeID,
		Amount:   req.Amount,
		Currency: strings.ToLower(req.Currency),
	}, nil
}

type paypalGateway struct {
	cfg *paypal.Config
}

func (g *paypalGateway) Name() string {
	return constants.PaymentOptionLabel(constants.PaymentOptionPayPal)
}

// Charge PayPal 的 token 为买家已批准的订单号，这里执行捕获并核对金额
func (g *paypalGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeOutcome, error) {
	result, err := paypal.CaptureOrder(ctx, g.cfg, paypal.CaptureInput{
		OrderID:   req.Token,
		RequestID: req.IdempotencyKey,
	})
	if err != nil {
		var declineErr *paypal.DeclineError
		if errors.As(err, &declineErr) {
			return nil, &PaymentDeclinedError{Gateway: g.Name(), Message: declineErr.Message}
		}
		return nil, &PaymentGatewayError{Gateway: g.Name(), Err: err}
	}
	if !result.Completed() {
		return nil, &PaymentGatewayError{Gateway: g.Name(), Err: fmt.Errorf("capture status %s", result.Status)}
	}
	captured, err := decimal.NewFromString(strings.TrimSpace(result.Amount))
	if err != nil {
		return nil, &PaymentGatewayError{Gateway: g.Name(), Err: fmt.Errorf("%w: capture amount %q", paypal.ErrResponseInvalid, result.Amount)}
	}
	if !captured.Equal(req.Amount.Decimal) || !strings.EqualFold(result.Currency, req.Currency) {
		return nil, &PaymentGatewayError{
			Gateway: g.Name(),
			Err:     fmt.Errorf("captured %s %s, expected %s %s", result.Amount, result.Currency, req.Amount.String(), req.Currency),
		}
	}
	return &ChargeOutcome{
		ChargeID: result.CaptureID,
		Amount:   models.NewMoneyFromDecimal(captured),
		Currency: strings.ToLower(result.Currency),
	}, nil
}
