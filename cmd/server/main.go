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

	appsync "github.com/varelaprogramador/plusdelivery-backend/internal/application/sync"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/notification"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/partner"
	"github.com/varelaprogramador/plusdelivery-backend/internal/infrastructure/config"
	"github.com/varelaprogramador/plusdelivery-backend/internal/infrastructure/logger"
	"github.com/varelaprogramador/plusdelivery-backend/internal/infrastructure/persistence"
	"github.com/varelaprogramador/plusdelivery-backend/internal/infrastructure/platform"
	"github.com/varelaprogramador/plusdelivery-backend/internal/infrastructure/scheduler"
	"github.com/varelaprogramador/plusdelivery-backend/internal/interfaces/http/handler"
	"github.com/varelaprogramador/plusdelivery-backend/internal/interfaces/http/middleware"
	"github.com/varelaprogramador/plusdelivery-backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PlusDelivery Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Initialize database connection with a zap-backed GORM logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// sqlite local mode has no external migration step, the schema is
	// built in place on startup. Postgres schemas are managed by the
	// migrate CLI.
	if cfg.Database.Driver == "sqlite" {
		if err := db.DB.AutoMigrate(
			&order.Order{},
			&integration.ProductLink{},
			&partner.Client{},
			&notification.Notification{},
		); err != nil {
			log.Fatal("Failed to build sqlite schema", zap.Error(err))
		}
	}

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	linkRepo := persistence.NewGormProductLinkRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Initialize platform adapters
	plusAdapter, err := platform.NewPlusAdapter(&platform.PlusConfig{
		BaseURL:  cfg.Plus.BaseURL,
		Secret:   cfg.Plus.Secret,
		Email:    cfg.Plus.Email,
		Password: cfg.Plus.Password,
		Timeout:  cfg.Plus.Timeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize Plus adapter", zap.Error(err))
	}

	saboritteAdapter, err := platform.NewSaboritteAdapter(&platform.SaboritteConfig{
		BaseURL:  cfg.Saboritte.BaseURL,
		Secret:   cfg.Saboritte.Secret,
		Email:    cfg.Saboritte.Email,
		Password: cfg.Saboritte.Password,
		Timeout:  cfg.Saboritte.Timeout,
		TestMode: cfg.Sync.TestMode,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize Saboritte adapter", zap.Error(err))
	}
	if cfg.Sync.TestMode {
		log.Warn("Test mode enabled, outbound orders will be logged instead of sent")
	}

	// Initialize sync pipeline. The gate is shared by the HTTP sync
	// endpoints and the auto-sync loop so runs never overlap.
	syncGate := scheduler.NewSyncGate()
	syncService := appsync.NewService(
		plusAdapter,
		saboritteAdapter,
		orderRepo,
		appsync.NewLinkResolver(linkRepo),
		appsync.NewClientMatcher(clientRepo),
		appsync.NewTransformer(),
		notificationRepo,
		syncGate,
		log,
	)

	// Start the automatic import loop (if enabled)
	autoSync := scheduler.NewAutoSync(scheduler.AutoSyncConfig{
		Enabled:  cfg.Sync.AutoSyncEnabled,
		Interval: cfg.Sync.SyncInterval,
	}, syncService, log)
	if err := autoSync.Start(context.Background()); err != nil {
		log.Fatal("Failed to start auto sync", zap.Error(err))
	}
	defer func() {
		if err := autoSync.Stop(context.Background()); err != nil {
			log.Error("Error stopping auto sync", zap.Error(err))
		}
	}()
	if cfg.Sync.AutoSyncEnabled {
		log.Info("Auto sync started", zap.Duration("interval", cfg.Sync.SyncInterval))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom binding validations
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so panics and request logs carry it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewOrderHandler(orderRepo, syncService)).
		Register(handler.NewProductLinkHandler(linkRepo)).
		Register(handler.NewClientHandler(clientRepo)).
		Register(handler.NewNotificationHandler(notificationRepo)).
		Register(handler.NewCatalogHandler(plusAdapter, saboritteAdapter, saboritteAdapter)).
		Register(handler.NewSyncHandler(syncGate)).
		Register(handler.NewHealthHandler(db, version))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
