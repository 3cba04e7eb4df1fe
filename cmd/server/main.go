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

	appdraft "github.com/resale/backend/internal/application/draft"
	appexport "github.com/resale/backend/internal/application/export"
	apppricing "github.com/resale/backend/internal/application/pricing"
	apppublish "github.com/resale/backend/internal/application/publish"
	"github.com/resale/backend/internal/domain/session"
	"github.com/resale/backend/internal/infrastructure/config"
	"github.com/resale/backend/internal/infrastructure/ebay"
	"github.com/resale/backend/internal/infrastructure/imaging"
	"github.com/resale/backend/internal/infrastructure/logger"
	"github.com/resale/backend/internal/infrastructure/retry"
	"github.com/resale/backend/internal/infrastructure/sessionstore"
	"github.com/resale/backend/internal/infrastructure/storage"
	"github.com/resale/backend/internal/infrastructure/upload"
	"github.com/resale/backend/internal/interfaces/http/handler"
	"github.com/resale/backend/internal/interfaces/http/middleware"
	"github.com/resale/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

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

	log.Info("Starting resale backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Draft session store: Redis when configured, in-memory otherwise
	var store session.Store
	if cfg.Redis.Enabled {
		redisStore, err := sessionstore.NewRedisStore(sessionstore.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			DraftTTL: cfg.Draft.TTL,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		store = redisStore
		log.Info("Draft store: redis",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	} else {
		store = sessionstore.NewMemoryStore()
		log.Info("Draft store: in-memory")
	}

	// Sweeper drops idle drafts and releases their staged image files
	sweeper := sessionstore.NewSweeper(sessionstore.SweeperConfig{
		Enabled:  true,
		Interval: cfg.Draft.SweepInterval,
		MaxIdle:  cfg.Draft.MaxIdle,
	}, store, log)
	if err := sweeper.Start(context.Background()); err != nil {
		log.Fatal("Failed to start draft sweeper", zap.Error(err))
	}
	defer func() {
		if err := sweeper.Stop(context.Background()); err != nil {
			log.Error("Error stopping draft sweeper", zap.Error(err))
		}
	}()

	// Marketplace clients share one credential set
	var ebayCfg *ebay.Config
	if cfg.Ebay.Sandbox {
		ebayCfg = ebay.NewSandboxConfig(cfg.Ebay.AppID, cfg.Ebay.DevID, cfg.Ebay.CertID, cfg.Ebay.AuthToken)
	} else {
		ebayCfg = ebay.NewConfig(cfg.Ebay.AppID, cfg.Ebay.DevID, cfg.Ebay.CertID, cfg.Ebay.AuthToken)
	}
	ebayCfg.OAuthToken = cfg.Ebay.OAuthToken
	ebayCfg.SiteID = cfg.Ebay.SiteID
	ebayCfg.MarketplaceID = cfg.Ebay.MarketplaceID
	ebayCfg.TimeoutSeconds = cfg.Ebay.TimeoutSeconds

	trading, err := ebay.NewTradingAdapter(ebayCfg)
	if err != nil {
		log.Fatal("Failed to create trading adapter", zap.Error(err))
	}
	browse, err := ebay.NewBrowseClient(ebayCfg)
	if err != nil {
		log.Fatal("Failed to create browse client", zap.Error(err))
	}
	account, err := ebay.NewAccountClient(ebayCfg)
	if err != nil {
		log.Fatal("Failed to create account client", zap.Error(err))
	}

	// Photo pipeline: compress then upload with bounded concurrency
	orchestrator := upload.NewOrchestrator(imaging.NewCompressor(), trading, log,
		upload.WithConcurrency(cfg.Upload.Concurrency),
		upload.WithRetryPolicy(retry.LinearPolicy(cfg.Upload.RetryAttempts, cfg.Upload.RetryDelay)),
	)

	// Application services
	draftManager := appdraft.NewManager(store, log)

	publishService := apppublish.NewService(trading, account, trading, orchestrator, log)
	publishCfg := apppublish.DefaultServiceConfig()
	publishCfg.PostalCode = cfg.Ebay.PostalCode
	publishCfg.DispatchDays = cfg.Ebay.DispatchDays
	publishService.SetConfig(publishCfg)

	compsService := apppricing.NewService(browse, log)
	compsService.SetConfig(apppricing.ServiceConfig{
		MaxResults: cfg.Comps.MaxResults,
		Timeout:    cfg.Comps.Timeout,
	})

	// Export archive is optional; without it payloads are returned inline only
	var archive appexport.ArchiveStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3ArchiveStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize export archive storage", zap.Error(err))
		}
		archive = s3
		log.Info("Export archive: s3", zap.String("bucket", cfg.Storage.Bucket))
	}
	exportService := appexport.NewService(nil, archive, log)
	exportService.SetConfig(appexport.ServiceConfig{
		DownloadURLExpiry: cfg.Storage.PresignExpiration,
	})

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
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

	// Health check endpoint (outside API versioning)
	engine.GET("/health", handler.Health(version))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewDraftHandler(draftManager, log)).
		Register(handler.NewPublishHandler(draftManager, publishService, log)).
		Register(handler.NewExportHandler(draftManager, exportService, log)).
		Register(handler.NewCompsHandler(compsService, log)).
		Register(handler.NewPolicyHandler(account, log))
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
