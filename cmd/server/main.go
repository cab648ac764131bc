package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/application/billing"
	catalogapp "github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/application/catalog"
	identityapp "github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/application/identity"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/infrastructure/auth"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/infrastructure/cache"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/infrastructure/config"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/infrastructure/event"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/infrastructure/logger"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/infrastructure/persistence"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/interfaces/http/handler"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/interfaces/http/middleware"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PayPilot billing service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with SQL logging through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	orderService := billingapp.NewOrderService(orderRepo)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo)
	paymentService := billingapp.NewPaymentService(uow, paymentRepo, log)
	reconciliationService := billingapp.NewReconciliationService(uow, orderRepo, productRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// Event bus with an audit subscriber on all events
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	productService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)
	reconciliationService.SetEventPublisher(eventBus)

	// Idempotency store: Redis when configured, in-memory otherwise
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		idempotencyStore, err = cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Info("Redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService, reconciliationService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentHandler := handler.NewPaymentHandler(paymentService, invoiceService)
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check outside API versioning
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))
	if cfg.Idempotency.Enabled {
		r.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Store:  idempotencyStore,
			TTL:    cfg.Idempotency.TTL,
			Logger: log,
		}))
	}

	authRateLimit := func(dg *router.DomainGroup) *router.DomainGroup {
		if cfg.HTTP.AuthRateLimitEnabled {
			limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
			dg.Use(middleware.RateLimit(limiter))
		}
		return dg
	}

	authRoutes := authRateLimit(router.NewDomainGroup("auth", "/auth"))
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", authHandler.Me)

	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.POST("/staff", middleware.RequireStaff(), authHandler.RegisterStaff)
	userRoutes.POST("/clients", middleware.RequireStaff(), authHandler.RegisterClient)

	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.GetByID)
	productRoutes.GET("/:id/availability", productHandler.Availability)
	productRoutes.POST("", middleware.RequireStaff(), productHandler.Create)
	productRoutes.POST("/:id/restock", middleware.RequireStaff(), productHandler.Restock)
	productRoutes.POST("/:id/deactivate", middleware.RequireStaff(), productHandler.Deactivate)
	productRoutes.PUT("/:id/price", middleware.RequireStaff(), productHandler.ChangePrice)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.GET("/:id/evaluation", orderHandler.Evaluation)
	orderRoutes.GET("/:id/invoice", invoiceHandler.GetByOrderID)
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.POST("/:id/accept", middleware.RequireStaff(), orderHandler.Accept)
	orderRoutes.DELETE("/:id", orderHandler.Delete)

	invoiceRoutes := router.NewDomainGroup("invoices", "/invoices")
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/number/:number", invoiceHandler.GetByNumber)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)
	invoiceRoutes.GET("/:id/payment", paymentHandler.GetByInvoiceID)
	invoiceRoutes.POST("/:id/payments", paymentHandler.Record)

	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.GET("", paymentHandler.List)
	paymentRoutes.GET("/:id", paymentHandler.GetByID)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.Info)

	r.Register(authRoutes).
		Register(userRoutes).
		Register(productRoutes).
		Register(orderRoutes).
		Register(invoiceRoutes).
		Register(paymentRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
