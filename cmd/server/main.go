package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/application/importer"
	partnerapp "github.com/ledgerline/backend/internal/application/partner"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/ledgerline/backend/internal/infrastructure/auth"
	"github.com/ledgerline/backend/internal/infrastructure/cache"
	"github.com/ledgerline/backend/internal/infrastructure/config"
	"github.com/ledgerline/backend/internal/infrastructure/i18n"
	"github.com/ledgerline/backend/internal/infrastructure/logger"
	"github.com/ledgerline/backend/internal/infrastructure/persistence"
	"github.com/ledgerline/backend/internal/infrastructure/storage"
	"github.com/ledgerline/backend/internal/infrastructure/telemetry"
	"github.com/ledgerline/backend/internal/interfaces/http/handler"
	"github.com/ledgerline/backend/internal/interfaces/http/middleware"
	"github.com/ledgerline/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Ledgerline backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Log.SlowThreshold)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	if cfg.Telemetry.DBSlowQueryThresh > 0 {
		dbTracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
	}
	if err := telemetry.NewDBTracingPlugin(dbTracing, log).RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Rate table cache and upload archive
	rates, closeRates := cache.NewRateTableCache(ctx, cfg.Redis, log)
	defer func() {
		if err := closeRates(); err != nil {
			log.Error("Error closing rate table cache", zap.Error(err))
		}
	}()

	var archive importer.ObjectStorage = storage.NoopObjectStorage{}
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		archive = s3Storage
		log.Info("Import archive enabled", zap.String("bucket", s3Storage.Bucket()))
	}

	bundle, err := i18n.NewBundle(cfg.Settings.DefaultLocale)
	if err != nil {
		log.Fatal("Failed to load translations", zap.Error(err))
	}

	statementMetrics, err := telemetry.NewStatementMetrics(mp.Meter("ledgerline/statement"))
	if err != nil {
		log.Fatal("Failed to create statement metrics", zap.Error(err))
	}

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	accountStore := persistence.NewGormCustomerAccountStore(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	revenueRepo := persistence.NewGormRevenueRepository(db.DB)
	currencyRepo := cache.NewInvalidatingCurrencyRepository(persistence.NewGormCurrencyRepository(db.DB), rates, log)

	// Application services
	customerService := partnerapp.NewCustomerService(
		customerRepo, userRepo, accountStore, invoiceRepo, revenueRepo, currencyRepo,
		partnerapp.CustomerServiceConfig{
			ListLimit:     cfg.Settings.ListLimit,
			DefaultLocale: cfg.Settings.DefaultLocale,
		},
		log,
	)
	statementService := partnerapp.NewStatementService(
		customerRepo, invoiceRepo, revenueRepo, currencyRepo, rates, statementMetrics,
		partnerapp.StatementServiceConfig{
			ReportingCurrency: valueobject.Currency(cfg.Settings.ReportingCurrency),
			DefaultPageSize:   cfg.Settings.ListLimit,
			RateCacheTTL:      cfg.Settings.RateCacheTTL,
		},
		log,
	)
	importService := importer.NewCustomerImportService(customerRepo, archive, log)

	// Handlers
	customerHandler := handler.NewCustomerHandler(customerService, statementService, importService, bundle, cfg.HTTP.MaxUploadSize)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db, log)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID, Logger, Recovery, security headers, CORS, body limit
	// 2. Tracing and metrics
	// 3. Auth, tenant, span enrichment, locale (API group only)
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
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
	// multipart overhead on top of the file itself
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxUploadSize + 1<<20))

	tracingConfig := middleware.DefaultTracingConfig()
	tracingConfig.Enabled = tp.IsEnabled()
	if cfg.Telemetry.ServiceName != "" {
		tracingConfig.ServiceName = cfg.Telemetry.ServiceName
	}
	engine.Use(middleware.TracingWithConfig(tracingConfig))
	engine.Use(middleware.SpanErrorMarker())
	httpMetrics, err := middleware.HTTPMetrics(mp.Meter("ledgerline/http"))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	engine.Use(httpMetrics)

	engine.GET("/health", systemHandler.Health)

	jwtConfig := middleware.DefaultJWTConfig(auth.NewJWTService(cfg.JWT))
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, "/api/v1/system/info")
	jwtConfig.Logger = log

	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.HeaderEnabled = cfg.IsDevelopment()
	tenantConfig.SkipPaths = jwtConfig.SkipPaths
	tenantConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1")).Use(
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		middleware.TenantMiddlewareWithConfig(tenantConfig),
		middleware.SpanAttributes(),
		middleware.Locale(bundle),
	)
	r.Register(router.CustomerRoutes(customerHandler)).
		Register(router.SystemRoutes(systemHandler))
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
		return
	}
	log.Info("Server exited gracefully")
}
