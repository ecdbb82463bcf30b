// Command portal-api serves the course portal backend.
//
//	@title						Course Portal API
//	@version					1.0
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/api/swagger"
	"github.com/noah-isme/course-portal-api/internal/handler"
	"github.com/noah-isme/course-portal-api/internal/middleware"
	"github.com/noah-isme/course-portal-api/internal/repository"
	"github.com/noah-isme/course-portal-api/internal/service"
	"github.com/noah-isme/course-portal-api/pkg/cache"
	"github.com/noah-isme/course-portal-api/pkg/config"
	"github.com/noah-isme/course-portal-api/pkg/database"
	"github.com/noah-isme/course-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-portal-api/pkg/middleware/cors"
	"github.com/noah-isme/course-portal-api/pkg/middleware/ratelimit"
	reqidmiddleware "github.com/noah-isme/course-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/course-portal-api/pkg/storage"
	"github.com/noah-isme/course-portal-api/pkg/storeclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	store := storeclient.New(cfg.Store, storeclient.WithObserver(metrics))
	validate := service.NewValidator()
	checks := map[string]handler.Pinger{"store": store}

	issuer := service.NewIDIssuer(service.NewIDGenerator(nil), nil, cfg.Applications.IDMaxAttempts, logr)
	if cfg.Database.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		ledger := repository.NewApplicationIDRepository(db)
		if err := ledger.EnsureSchema(ctx); err != nil {
			logr.Fatal("failed to prepare application id ledger", zap.Error(err))
		}
		issuer = service.NewIDIssuer(service.NewIDGenerator(nil), ledger, cfg.Applications.IDMaxAttempts, logr)
		checks["postgres"] = handler.PingFunc(db.PingContext)
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Catalog.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
			checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
		}
	}
	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, true)
	}

	receiptStore, err := storage.NewLocalStorage(cfg.Receipts.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare receipt storage", zap.Error(err))
	}
	receipts := service.NewReceiptService(
		receiptStore,
		storage.NewSignedURLSigner(cfg.Receipts.SignedURLSecret, cfg.Receipts.SignedURLTTL),
		metrics,
		logr,
		service.ReceiptConfig{APIPrefix: cfg.APIPrefix, CleanupInterval: cfg.Receipts.CleanupInterval},
	)
	receipts.StartCleanup(ctx)
	defer receipts.StopCleanup()

	applicationRepo := repository.NewApplicationRepository(store)
	notificationRepo := repository.NewNotificationRepository(store)
	catalogSvc := service.NewCatalogService(repository.NewCatalogRepository(store), notificationRepo, cacheSvc, logr)
	applicationSvc := service.NewApplicationService(applicationRepo, issuer, receipts, validate, metrics, logr)
	statusSvc := service.NewStatusService(applicationRepo, metrics, logr)
	meetLinkSvc := service.NewMeetLinkService(applicationRepo, repository.NewMeetLinkRepository(store), validate, metrics, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, cacheSvc, validate, logr)
	helpSvc := service.NewHelpRequestService(repository.NewHelpRequestRepository(store), validate, logr, cfg.HelpRequests.MaxImageBytes)
	authSvc := service.NewAuthService(repository.NewAdminRepository(store), validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	limiter := ratelimit.New(cfg.Lookups.RatePerSecond, cfg.Lookups.Burst)
	go sweepVisitors(ctx, limiter)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metrics, checks, logr)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		swagger.SwaggerInfo.BasePath = cfg.APIPrefix
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Routes{
		Catalog:       handler.NewCatalogHandler(catalogSvc),
		Applications:  handler.NewApplicationHandler(applicationSvc, catalogSvc, statusSvc, meetLinkSvc),
		Receipts:      handler.NewReceiptHandler(receipts, logr),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		HelpRequests:  handler.NewHelpRequestHandler(helpSvc),
		Auth:          handler.NewAuthHandler(authSvc),
		Admin:         handler.NewAdminHandler(applicationSvc, meetLinkSvc),
		Authenticate:  middleware.JWT(authSvc),
		LookupLimit:   limiter.Middleware(),
	}.Register(r.Group(cfg.APIPrefix))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
		_ = srv.Close()
	}
}

func sweepVisitors(ctx context.Context, limiter *ratelimit.Limiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep()
		}
	}
}
