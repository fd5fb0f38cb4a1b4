package router

import (
	"fmt"
	"strings"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	adminhandlers "github.com/dujiao-next/storefront/internal/http/handlers/admin"
	publichandlers "github.com/dujiao-next/storefront/internal/http/handlers/public"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	newRule := func(name string, limit config.RateLimitConfig) RateLimitRule {
		return RateLimitRule{
			Prefix:        fmt.Sprintf("%s:rate:%s", redisPrefix, name),
			WindowSeconds: limit.WindowSeconds,
			MaxRequests:   limit.MaxRequests,
			BlockSeconds:  limit.BlockSeconds,
			MessageKey:    "error.rate_limited",
		}
	}
	loginRule := newRule("login", cfg.Security.LoginRateLimit)
	adminLoginRule := newRule("admin_login", cfg.Security.LoginRateLimit)
	paymentRule := newRule("payment", cfg.Security.PaymentRateLimit)
	refundRule := newRule("refund", cfg.Security.RefundRateLimit)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 商品浏览与退款申请（无需登录）
		apiV1.GET("/", publicHandler.Home)
		apiV1.GET("/shop", publicHandler.Shop)
		apiV1.GET("/product/:slug", publicHandler.Product)
		apiV1.GET("/categories", publicHandler.Categories)
		apiV1.GET("/category/:slug", publicHandler.Category)
		apiV1.GET("/captcha/image", publicHandler.GetImageCaptcha)
		apiV1.GET("/request-refund", publicHandler.RefundForm)
		apiV1.POST("/request-refund", RateLimitMiddleware(redisClient, refundRule, KeyByIP), publicHandler.SubmitRefund)

		// 顾客认证
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, loginRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 顾客接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.GET("/orders", publicHandler.ListOrders)
			user.POST("/add-to-cart/:slug", publicHandler.AddToCart)
			user.POST("/remove-from-cart/:slug", publicHandler.RemoveFromCart)
			user.POST("/remove-item/:slug", publicHandler.RemoveSingleItem)
			user.GET("/order-summary", publicHandler.OrderSummary)
			user.GET("/checkout", publicHandler.CheckoutForm)
			user.POST("/checkout", publicHandler.SubmitCheckout)
			user.POST("/add-coupon", publicHandler.AddCoupon)
			user.GET("/payment/:option", publicHandler.PaymentPage)
			user.POST("/payment/:option", RateLimitMiddleware(redisClient, paymentRule, KeyByUserID), publicHandler.SubmitPayment)
		}

		// 员工接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.GET("/refunds", adminHandler.ListRefunds)
				authorized.GET("/refunds/:id", adminHandler.GetRefund)
				authorized.POST("/refunds/:id/accept", adminHandler.AcceptRefund)
				authorized.GET("/coupons", adminHandler.ListCoupons)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.POST("/items", adminHandler.CreateItem)
				authorized.PATCH("/items/:slug", adminHandler.UpdateItem)
				authorized.POST("/admins", adminHandler.CreateStaff)
				authorized.GET("/roles", adminHandler.ListRoles)
				authorized.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
