package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/erp/invoicing/internal/application/catalog"
	financeapp "github.com/erp/invoicing/internal/application/finance"
	partnerapp "github.com/erp/invoicing/internal/application/partner"
	settingapp "github.com/erp/invoicing/internal/application/setting"
	"github.com/erp/invoicing/internal/application/state"
	tradeapp "github.com/erp/invoicing/internal/application/trade"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/domain/trade"
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/infrastructure/persistence"
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"github.com/erp/invoicing/internal/interfaces/http/handler"
	"github.com/erp/invoicing/internal/interfaces/http/middleware"
	"github.com/erp/invoicing/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Invoicing API
//	@version		1.0
//	@description	Customers, items, taxes, expenses, estimates, invoices and payments
//	@BasePath		/api/v1

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

	ctx := context.Background()

	tel, err := telemetry.Setup(ctx, telemetry.FromConfig(cfg.App.Name, cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log = tel.Logs.Attach(log)

	log.Info("Starting invoicing server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	var storeOpts []persistence.Option
	if tel.Tracer.IsEnabled() {
		storeOpts = append(storeOpts, persistence.WithTracerProvider(tel.Tracer.Provider()))
	}
	snapshots, err := persistence.NewSnapshotStore(ctx, cfg.Storage, log, storeOpts...)
	if err != nil {
		log.Fatal("Failed to open snapshot storage", zap.Error(err))
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			log.Error("Error closing snapshot storage", zap.Error(err))
		}
	}()

	stateMetrics, err := telemetry.NewStateMetrics(tel.Meter.Meter())
	if err != nil {
		log.Fatal("Failed to register state metrics", zap.Error(err))
	}

	store := state.NewStore(state.Default(),
		state.WithSnapshotStore(snapshots),
		state.WithSnapshotKey(cfg.Storage.Key),
		state.WithPersistTimeout(cfg.Storage.Timeout),
		state.WithLogger(log),
		state.WithCommitObserver(stateMetrics),
	)
	hydrateCtx, cancelHydrate := context.WithTimeout(ctx, cfg.Storage.Timeout)
	err = store.Hydrate(hydrateCtx)
	cancelHydrate()
	if err != nil {
		log.Fatal("Failed to load persisted state", zap.Error(err))
	}

	// Services
	calc := trade.NewCalculator(
		trade.WithCorrectedLinePercentage(cfg.Calculation.CorrectedLinePercentage),
		trade.WithCompoundTaxes(cfg.Calculation.CompoundTaxes),
	)
	clock := shared.SystemClock{}
	ids := shared.UUIDGenerator{}

	handlers := router.Handlers{
		Customers: handler.NewCustomerHandler(store, partnerapp.NewCustomerService(clock, ids)),
		Items:     handler.NewItemHandler(store, catalogapp.NewItemService(clock, ids)),
		Taxes:     handler.NewTaxHandler(store, financeapp.NewTaxService(clock, ids)),
		Expenses:  handler.NewExpenseHandler(store, financeapp.NewExpenseService(clock, ids)),
		Payments:  handler.NewPaymentHandler(store, financeapp.NewPaymentService(clock, ids)),
		Estimates: handler.NewEstimateHandler(store, tradeapp.NewEstimateService(calc, clock, ids)),
		Invoices:  handler.NewInvoiceHandler(store, tradeapp.NewInvoiceService(calc, clock, ids)),
		Settings:  handler.NewSettingsHandler(store, settingapp.NewSettingsService()),
		System:    handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, snapshots),
	}

	// HTTP engine
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	httpMetrics, err := middleware.HTTPMetrics(tel.Meter.Meter())
	if err != nil {
		log.Fatal("Failed to register HTTP metrics", zap.Error(err))
	}

	engine.Use(logger.Recovery(log), middleware.RequestID())
	if tel.Tracer.IsEnabled() {
		engine.Use(middleware.Tracing(middleware.TracingConfig{
			ServiceName:    cfg.App.Name,
			TracerProvider: tel.Tracer.Provider(),
		})...)
	}
	engine.Use(
		logger.GinMiddleware(log),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		httpMetrics,
	)

	engine.GET("/health", handlers.System.Health)
	router.RegisterSwagger(engine, middleware.SwaggerConfig{
		Enabled:    cfg.Swagger.Enabled,
		AllowedIPs: cfg.Swagger.AllowedIPs,
	})
	router.NewRouter(engine).Register(router.Groups(handlers)...).Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
