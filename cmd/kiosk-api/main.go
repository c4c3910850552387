package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-kiosk-api/api/swagger"
	"github.com/noah-isme/course-kiosk-api/internal/handler"
	"github.com/noah-isme/course-kiosk-api/internal/middleware"
	"github.com/noah-isme/course-kiosk-api/internal/repository"
	"github.com/noah-isme/course-kiosk-api/internal/service"
	"github.com/noah-isme/course-kiosk-api/pkg/cache"
	"github.com/noah-isme/course-kiosk-api/pkg/config"
	"github.com/noah-isme/course-kiosk-api/pkg/database"
	"github.com/noah-isme/course-kiosk-api/pkg/format"
	"github.com/noah-isme/course-kiosk-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-kiosk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-kiosk-api/pkg/middleware/requestid"
)

// @title Course Kiosk API
// @version 1.0.0
// @description Weekly course timetables for campus kiosk displays
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		logr.Fatal("failed to open schedule source", zap.String("data_source", cfg.DataSource), zap.Error(err))
	}
	defer closeSource()

	catalogSvc := service.NewCatalogService(source, validator.New(), metricsSvc, logr, service.CatalogOptions{
		SkipInvalid: cfg.Kiosk.SkipInvalid,
	})
	if _, err := catalogSvc.Reload(ctx); err != nil {
		// Stay up and report not ready until a retry or POST /catalog/reload succeeds.
		logr.Error("initial catalog load failed", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, projection cache disabled", zap.Error(err))
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "kiosk:", logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, redisClient != nil)

	refresher := service.NewCatalogRefresher(catalogSvc, cacheSvc, cfg.Kiosk.ReloadInterval, logr)
	refresher.Start(ctx)
	defer refresher.Stop()
	if !catalogSvc.Ready() {
		_ = refresher.Trigger()
	}

	locale := format.MustLookup(cfg.Kiosk.Locale)
	loc := cfg.Kiosk.Location()
	scheduleSvc := service.NewScheduleService(catalogSvc, cacheSvc, metricsSvc, logr, service.ScheduleOptions{
		Locale:       locale,
		Location:     loc,
		UpcomingDays: cfg.Kiosk.UpcomingDays,
	})
	exportSvc := service.NewExportService(scheduleSvc, service.DefaultRenderers(), locale, loc, logr)

	clock := handler.NewClock(cfg.Kiosk.AllowClockOverride && cfg.Env != config.EnvProduction)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, "/metrics"))
	r.Use(middleware.WithResponseMeta())

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Courses: handler.NewCourseHandler(scheduleSvc, exportSvc, clock),
		Classes: handler.NewClassHandler(scheduleSvc, clock),
		Catalog: handler.NewCatalogHandler(catalogSvc, scheduleSvc, cacheSvc, logr),
		Metrics: handler.NewMetricsHandler(metricsSvc),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "source", source.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openSource selects the schedule data source from DATA_SOURCE. SQL sources
// get their schema created on first use.
func openSource(ctx context.Context, cfg *config.Config) (service.DatasetSource, func(), error) {
	switch cfg.DataSource {
	case config.SourceSeed, "":
		return repository.NewYAMLSource(cfg.SeedFile), func() {}, nil
	case config.SourcePostgres, config.SourceSQLite:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repository.NewSQLSource(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}
