package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/tanlab/labdaily-api/api/swagger"
	"github.com/tanlab/labdaily-api/internal/dto"
	"github.com/tanlab/labdaily-api/internal/handler"
	"github.com/tanlab/labdaily-api/internal/middleware"
	"github.com/tanlab/labdaily-api/internal/repository"
	"github.com/tanlab/labdaily-api/internal/roster"
	"github.com/tanlab/labdaily-api/internal/service"
	"github.com/tanlab/labdaily-api/pkg/cache"
	"github.com/tanlab/labdaily-api/pkg/config"
	"github.com/tanlab/labdaily-api/pkg/database"
	"github.com/tanlab/labdaily-api/pkg/logger"
	corsmiddleware "github.com/tanlab/labdaily-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tanlab/labdaily-api/pkg/middleware/requestid"
	"github.com/tanlab/labdaily-api/pkg/storage"
)

// @title PI Lab Daily API
// @version 1.0.0
// @description Daily report submission and weekly digest service for a research lab
// @BasePath /api
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	var cacheSvc *service.CacheService
	if cfg.Status.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, status cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Status.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	go cleanupExports(exportStorage, cfg.Exports, logr)

	labRoster := roster.New(cfg.Roster.Students)

	reportRepo := repository.NewReportRepository(db)
	reportSvc := service.NewReportService(service.ReportServiceParams{
		Store:    reportRepo,
		Roster:   labRoster,
		Cache:    cacheSvc,
		Metrics:  metricsSvc,
		Logger:   logr,
		CacheTTL: cfg.Status.CacheTTL,
	})
	digestSvc := service.NewDigestService(service.DigestServiceParams{
		Store:   reportRepo,
		Roster:  labRoster,
		Storage: exportStorage,
		Signer:  signer,
		PDFFont: cfg.Exports.PDFFont,
		Logger:  logr,
	})

	reportHandler := handler.NewReportHandler(reportSvc)
	digestHandler := handler.NewDigestHandler(digestSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(middleware.Metrics(metricsSvc))
	}

	r.GET("/health", metricsHandler.Health)
	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/health", metricsHandler.Health)
		api.GET("/reports/students", reportHandler.Students)
		api.POST("/reports", reportHandler.Submit)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/status", reportHandler.Status)
		api.GET("/reports/week", digestHandler.Week)
		api.POST("/reports/export", digestHandler.Export)
		api.GET("/exports/:token", digestHandler.Download)

		if cfg.Leads.Enabled {
			leadSvc := service.NewLeadService(repository.NewLeadRepository(db), logr)
			leadHandler := handler.NewLeadHandler(leadSvc)
			api.POST("/leads", leadHandler.Create)
			api.GET("/leads", leadHandler.List)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "roster_size", labRoster.Size())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// cleanupExports deletes rendered export files once their signed URLs
// can no longer be valid.
func cleanupExports(store *storage.LocalStorage, cfg config.ExportsConfig, logr *zap.Logger) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		removed, err := store.CleanupOlderThan(cfg.SignedURLTTL)
		if err != nil {
			logr.Warn("export cleanup failed", zap.Error(err))
			continue
		}
		if len(removed) > 0 {
			logr.Info("expired exports removed", zap.Int("count", len(removed)))
		}
	}
}
