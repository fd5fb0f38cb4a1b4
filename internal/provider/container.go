package provider

import (
	"github.com/dujiao-next/storefront/internal/authz"
	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/queue"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	CategoryRepo      repository.CategoryRepository
	ItemRepo          repository.ItemRepository
	OrderRepo         repository.OrderRepository
	OrderItemRepo     repository.OrderItemRepository
	AddressRepo       repository.AddressRepository
	CouponRepo        repository.CouponRepository
	PaymentRepo       repository.PaymentRepository
	RefundRepo        repository.RefundRepository
	AdminAuditLogRepo repository.AdminAuditLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	CatalogService      *service.CatalogService
	CatalogAdminService *service.CatalogAdminService
	CartService         *service.CartService
	CheckoutService     *service.CheckoutService
	CouponService       *service.CouponService
	CouponAdminService  *service.CouponAdminService
	PaymentService      *service.PaymentService
	RefundService       *service.RefundService
	OrderService        *service.OrderService
	NotificationService *service.NotificationService
	AdminAuditService   *service.AdminAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，未启用时为空操作客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories(models.DB)
	c.initServices(models.DB)
	return c
}

// NewContainerWithDB 使用指定数据库构建容器，不连接 Redis
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories(db)
	c.initServices(db)
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ItemRepo = repository.NewItemRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.OrderItemRepo = repository.NewOrderItemRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.RefundRepo = repository.NewRefundRepository(db)
	c.AdminAuditLogRepo = repository.NewAdminAuditLogRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.AuthzService)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CatalogService = service.NewCatalogService(c.Config.Shop, c.ItemRepo, c.CategoryRepo)
	c.CatalogAdminService = service.NewCatalogAdminService(c.ItemRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.OrderRepo, c.OrderItemRepo, c.ItemRepo)
	c.CheckoutService = service.NewCheckoutService(c.OrderRepo, c.AddressRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.OrderRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.PaymentService = service.NewPaymentService(c.Config, c.OrderRepo, c.OrderItemRepo, c.PaymentRepo, c.QueueClient)
	c.RefundService = service.NewRefundService(c.OrderRepo, c.RefundRepo, c.CaptchaService, c.QueueClient)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.NotificationService = service.NewNotificationService(c.OrderRepo, c.RefundRepo, c.UserRepo, c.EmailService)
	c.AdminAuditService = service.NewAdminAuditService(c.AdminAuditLogRepo)
}
