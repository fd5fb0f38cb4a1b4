package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/queue"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storefrontFixture struct {
	db          *gorm.DB
	cfg         *config.Config
	orders      *repository.GormOrderRepository
	orderItems  *repository.GormOrderItemRepository
	items       *repository.GormItemRepository
	categories  *repository.GormCategoryRepository
	addresses   *repository.GormAddressRepository
	coupons     *repository.GormCouponRepository
	payments    *repository.GormPaymentRepository
	refunds     *repository.GormRefundRepository
	users       *repository.GormUserRepository
	queueClient *queue.Client
}

func setupStorefrontTest(t *testing.T) *storefrontFixture {
	t.Helper()
	cache.UseClient(nil, "")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), models.GormConfig())
	require.NoError(t, err)
	require.NoError(t, models.MigrateWith(db))

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	require.NoError(t, err)

	return &storefrontFixture{
		db:          db,
		cfg:         config.Defaults(),
		orders:      repository.NewOrderRepository(db),
		orderItems:  repository.NewOrderItemRepository(db),
		items:       repository.NewItemRepository(db),
		categories:  repository.NewCategoryRepository(db),
		addresses:   repository.NewAddressRepository(db),
		coupons:     repository.NewCouponRepository(db),
		payments:    repository.NewPaymentRepository(db),
		refunds:     repository.NewRefundRepository(db),
		users:       repository.NewUserRepository(db),
		queueClient: queueClient,
	}
}

func (f *storefrontFixture) cartService() *CartService {
	return NewCartService(f.orders, f.orderItems, f.items)
}

func (f *storefrontFixture) checkoutService() *CheckoutService {
	return NewCheckoutService(f.orders, f.addresses)
}

func (f *storefrontFixture) couponService() *CouponService {
	return NewCouponService(f.coupons, f.orders)
}

func (f *storefrontFixture) paymentService() *PaymentService {
	return NewPaymentService(f.cfg, f.orders, f.orderItems, f.payments, f.queueClient)
}

func (f *storefrontFixture) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", Status: "active", Locale: "en-US"}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *storefrontFixture) createItem(t *testing.T, slug, price, discount string) *models.Item {
	t.Helper()
	item := &models.Item{Title: slug, Slug: slug, Price: models.MustMoney(price), IsActive: true}
	if discount != "" {
		d := models.MustMoney(discount)
		item.DiscountPrice = &d
	}
	require.NoError(t, f.db.Create(item).Error)
	return item
}

func (f *storefrontFixture) createCoupon(t *testing.T, code, amount string) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{Code: code, Amount: models.MustMoney(amount)}
	require.NoError(t, f.db.Create(coupon).Error)
	return coupon
}

func (f *storefrontFixture) openOrder(t *testing.T, userID uint) *models.Order {
	t.Helper()
	order, err := f.orders.GetOpenByUser(userID)
	require.NoError(t, err)
	require.NotNil(t, order)
	return order
}
