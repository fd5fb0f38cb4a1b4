package service

import (
	"context"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"gorm.io/gorm"
)

// PaymentOption 支付方式选项
type PaymentOption struct {
	Code   string `json:"code"`
	Option string `json:"option"`
	Label  string `json:"label"`
}

// CheckoutForm 结算页数据
type CheckoutForm struct {
	Order          *OrderView             `json:"order"`
	Countries      []CountryOption        `json:"countries"`
	PaymentOptions []PaymentOption        `json:"payment_options"`
	DefaultBilling *models.BillingAddress `json:"default_billing_address,omitempty"`
}

// CheckoutInput 结算提交
type CheckoutInput struct {
	StreetAddress       string
	ApartmentAddress    string
	Country             string
	Zip                 string
	SameShippingAddress bool
	SaveInfo            bool
	PaymentOption       string
}

// CheckoutResult 结算结果
type CheckoutResult struct {
	OrderID           uint   `json:"order_id"`
	BillingAddressID  uint   `json:"billing_address_id"`
	ShippingAddressID *uint  `json:"shipping_address_id,omitempty"`
	PaymentOption     string `json:"payment_option"`
}

// CheckoutService 结算服务
type CheckoutService struct {
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(orderRepo repository.OrderRepository, addressRepo repository.AddressRepository) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
	}
}

// PaymentOptions 支持的支付方式
func PaymentOptions() []PaymentOption {
	return []PaymentOption{
		{Code: constants.PaymentOptionCodeStripe, Option: constants.PaymentOptionStripe, Label: constants.PaymentOptionLabel(constants.PaymentOptionStripe)},
		{Code: constants.PaymentOptionCodePayPal, Option: constants.PaymentOptionPayPal, Label: constants.PaymentOptionLabel(constants.PaymentOptionPayPal)},
	}
}

// Form 结算表单数据，需存在未支付订单
func (s *CheckoutService) Form(userID uint) (*CheckoutForm, error) {
	order, err := s.orderRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoActiveOrder
	}
	defaultBilling, err := s.addressRepo.GetDefault(userID, constants.AddressTypeBilling)
	if err != nil {
		return nil, err
	}
	return &CheckoutForm{
		Order:          BuildOrderView(order),
		Countries:      CountryOptions(),
		PaymentOptions: PaymentOptions(),
		DefaultBilling: defaultBilling,
	}, nil
}

// Submit 校验地址并绑定到订单，返回选定的支付方式
func (s *CheckoutService) Submit(ctx context.Context, userID uint, input CheckoutInput) (*CheckoutResult, error) {
	order, err := s.orderRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoActiveOrder
	}

	street := strings.TrimSpace(input.StreetAddress)
	zip := strings.TrimSpace(input.Zip)
	if street == "" || zip == "" || len(street) > 100 || len(zip) > 32 {
		return nil, ErrCheckoutFormInvalid
	}
	country, err := NormalizeCountry(input.Country)
	if err != nil {
		return nil, err
	}
	option := constants.NormalizePaymentOption(input.PaymentOption)
	if option == "" {
		logger.Ctx(ctx).Warnw("checkout_payment_option_invalid", "user_id", userID, "order_id", order.ID, "payment_option", input.PaymentOption)
		return nil, ErrPaymentOptionInvalid
	}

	result := &CheckoutResult{OrderID: order.ID, PaymentOption: option}
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		addressRepo := s.addressRepo.WithTx(tx)
		if input.SaveInfo {
			if err := addressRepo.ClearDefault(userID, constants.AddressTypeBilling); err != nil {
				return err
			}
		}
		billing := &models.BillingAddress{
			UserID:           userID,
			StreetAddress:    street,
			ApartmentAddress: strings.TrimSpace(input.ApartmentAddress),
			Country:          country,
			Zip:              zip,
			AddressType:      constants.AddressTypeBilling,
			IsDefault:        input.SaveInfo,
		}
		if err := addressRepo.Create(billing); err != nil {
			return err
		}
		result.BillingAddressID = billing.ID

		if input.SameShippingAddress {
			shipping := *billing
			shipping.ID = 0
			shipping.AddressType = constants.AddressTypeShipping
			shipping.IsDefault = false
			if err := addressRepo.Create(&shipping); err != nil {
				return err
			}
			shippingID := shipping.ID
			result.ShippingAddressID = &shippingID
		}
		return s.orderRepo.WithTx(tx).SetAddresses(order.ID, billing.ID, result.ShippingAddressID)
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Infow("checkout_address_saved",
		"user_id", userID,
		"order_id", order.ID,
		"billing_address_id", result.BillingAddressID,
		"payment_option", option,
	)
	return result, nil
}
