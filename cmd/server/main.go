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

	ledgerapp "github.com/ledgerbook/backend/internal/application/ledger"
	paymentapp "github.com/ledgerbook/backend/internal/application/payment"
	"github.com/ledgerbook/backend/internal/infrastructure/auth"
	"github.com/ledgerbook/backend/internal/infrastructure/config"
	"github.com/ledgerbook/backend/internal/infrastructure/event"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"github.com/ledgerbook/backend/internal/infrastructure/notify"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence"
	"github.com/ledgerbook/backend/internal/interfaces/http/handler"
	"github.com/ledgerbook/backend/internal/interfaces/http/middleware"
	"github.com/ledgerbook/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting Ledgerbook Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Read-path repositories; write paths go through the transaction scope.
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	_ = persistence.NewGormPaymentRepository(db.DB)
	partyPaymentRepo := persistence.NewGormPartyPaymentRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	eventBus := event.NewInMemoryEventBus(log)

	var sink notify.Sink
	if cfg.Notify.Sink == "redis" {
		redisSink := notify.NewRedisSink(&cfg.Redis, cfg.Notify.Channel)
		defer func() {
			if err := redisSink.Close(); err != nil {
				log.Error("Error closing redis sink", zap.Error(err))
			}
		}()
		sink = redisSink
	} else {
		sink = notify.NewLogSink(log)
	}

	notificationHandler := notify.NewPaymentNotificationHandler(sink, log)
	eventBus.Subscribe(notificationHandler)
	log.Info("Event handlers registered",
		zap.String("notify_sink", cfg.Notify.Sink),
		zap.Strings("payment_notification_events", notificationHandler.EventTypes()),
	)

	jwtService := auth.NewJWTService(cfg.JWT)

	partyService := ledgerapp.NewPartyService(partyRepo, transactionRepo, partyPaymentRepo)
	statsService := ledgerapp.NewStatsService(transactionRepo, partyPaymentRepo)
	paymentService := paymentapp.NewPaymentService(txScope, eventBus)
	partyPaymentService := paymentapp.NewPartyPaymentService(txScope, eventBus)

	partyHandler := handler.NewPartyHandler(partyService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	partyPaymentHandler := handler.NewPartyPaymentHandler(partyPaymentService)
	statsHandler := handler.NewStatsHandler(statsService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(systemHandler).
		Register(partyHandler).
		Register(paymentHandler).
		Register(partyPaymentHandler).
		Register(statsHandler)

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
