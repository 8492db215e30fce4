// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openshelf/storefront-backend/internal/config"
	"github.com/openshelf/storefront-backend/internal/handlers"
	"github.com/openshelf/storefront-backend/internal/middleware"
	"github.com/openshelf/storefront-backend/internal/services"
)

// Initialize wires services, handlers and routes onto a gin engine.
func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Services
	notificationService := services.NewNotificationService(db)
	optionService := services.NewOptionService(db)
	combinationService := services.NewCombinationService(db, cfg, optionService, notificationService)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db, combinationService)
	orderService := services.NewOrderService(db, combinationService, cartService, productService, notificationService)
	authService := services.NewAuthService(db, cfg)
	paymentService := services.NewPaymentService(cfg, orderService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	optionHandler := handlers.NewOptionHandler(optionService)
	combinationHandler := handlers.NewCombinationHandler(combinationService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := r.Group("/v1")

	// Auth
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	// Public catalog
	products := v1.Group("/products")
	products.Use(middleware.OptionalAuth())
	{
		products.GET("", productHandler.List)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:id", productHandler.GetByID)
		products.GET("/:id/combinations", combinationHandler.GetByProduct)
		products.POST("/:id/combinations/find", combinationHandler.Find)
		products.POST("/:id/combinations/price", combinationHandler.CalculatePrice)
	}

	options := v1.Group("/options")
	options.Use(middleware.OptionalAuth())
	{
		options.GET("/types", optionHandler.GetTypes)
		options.GET("/types/:id", optionHandler.GetType)
		options.GET("/types/:id/values", optionHandler.GetValues)
	}

	v1.GET("/combinations/:id/availability", combinationHandler.CheckAvailability)

	// Cart
	cart := v1.Group("/cart")
	cart.Use(middleware.AuthRequired())
	{
		cart.GET("", cartHandler.Get)
		cart.DELETE("", cartHandler.Clear)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	// Orders
	orders := v1.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.POST("", middleware.CheckoutRateLimit(), orderHandler.Checkout)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.GetByID)
		orders.POST("/:id/cancel", orderHandler.Cancel)
		orders.POST("/:id/payment", middleware.CheckoutRateLimit(), paymentHandler.CreateIntent)
		orders.POST("/:id/payment/confirm", middleware.CheckoutRateLimit(), paymentHandler.Confirm)
	}

	// Stripe calls this without auth; signature verification guards it
	v1.POST("/payments/webhook", paymentHandler.Webhook)

	// Notifications
	notifications := v1.Group("/notifications")
	notifications.Use(middleware.AuthRequired())
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
	}

	// Admin
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/products", productHandler.AdminList)
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)

		admin.POST("/products/:id/combinations", combinationHandler.Create)
		admin.POST("/products/:id/combinations/generate", combinationHandler.Generate)
		admin.DELETE("/products/:id/combinations", combinationHandler.DeleteByProduct)

		admin.GET("/combinations/low-stock", combinationHandler.GetLowStock)
		admin.GET("/combinations/out-of-stock", combinationHandler.GetOutOfStock)
		admin.GET("/combinations/statistics", combinationHandler.GetStatistics)
		admin.PUT("/combinations/stock", combinationHandler.UpdateStockBulk)
		admin.GET("/combinations/:id", combinationHandler.GetByID)
		admin.PUT("/combinations/:id", combinationHandler.Update)
		admin.DELETE("/combinations/:id", combinationHandler.Delete)
		admin.PUT("/combinations/:id/stock", combinationHandler.UpdateStock)
		admin.POST("/combinations/:id/stock/adjust", combinationHandler.AdjustStock)
		admin.POST("/combinations/:id/stock/reserve", combinationHandler.ReserveStock)
		admin.POST("/combinations/:id/stock/release", combinationHandler.ReleaseStock)

		admin.POST("/options/types", optionHandler.CreateType)
		admin.PUT("/options/types/:id", optionHandler.UpdateType)
		admin.DELETE("/options/types/:id", optionHandler.DeleteType)
		admin.POST("/options/types/:id/values", optionHandler.CreateValue)
		admin.PUT("/options/values/:id", optionHandler.UpdateValue)
		admin.DELETE("/options/values/:id", optionHandler.DeleteValue)

		admin.GET("/orders", orderHandler.AdminList)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
		admin.POST("/orders/:id/refund", paymentHandler.Refund)
	}

	return r
}
