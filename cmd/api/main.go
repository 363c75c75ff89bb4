package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/tutorhub/tutor-support-api/api/swagger"
	"github.com/tutorhub/tutor-support-api/internal/handler"
	"github.com/tutorhub/tutor-support-api/internal/middleware"
	"github.com/tutorhub/tutor-support-api/internal/repository"
	"github.com/tutorhub/tutor-support-api/internal/service"
	"github.com/tutorhub/tutor-support-api/internal/store"
	"github.com/tutorhub/tutor-support-api/pkg/cache"
	"github.com/tutorhub/tutor-support-api/pkg/config"
	"github.com/tutorhub/tutor-support-api/pkg/logger"
	corsmiddleware "github.com/tutorhub/tutor-support-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tutorhub/tutor-support-api/pkg/middleware/requestid"
)

// @title Tutor Support API
// @version 1.0.0
// @description Scheduling, booking and calendar service for the tutor support system
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

	metrics := service.NewMetricsService()

	st := store.New(cfg.Store.Path, logr)
	st.SetObserver(metrics.ObserveStoreOperation)

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	profileRepo := repository.NewProfileRepository(st)
	scheduleRepo := repository.NewScheduleRepository(st)
	appointmentRepo := repository.NewAppointmentRepository(st)
	evaluationRepo := repository.NewEvaluationRepository(st)
	documentRepo := repository.NewDocumentRepository(st)

	authSvc := service.NewAuthService(profileRepo, cfg.JWT, logr)
	profileSvc := service.NewProfileService(profileRepo, logr)
	searchSvc := service.NewSearchService(profileRepo, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, cacheSvc, logr)
	bookingSvc := service.NewBookingService(appointmentRepo, profileRepo, cacheSvc, logr)
	calendarSvc := service.NewCalendarService(scheduleRepo, appointmentRepo, profileRepo, cacheSvc, cfg.Calendar, logr)
	evaluationSvc := service.NewEvaluationService(evaluationRepo, logr)
	documentSvc := service.NewDocumentService(documentRepo, logr)
	analyticsSvc := service.NewAnalyticsService(profileRepo, appointmentRepo, cacheSvc, logr)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Schedule:   handler.NewScheduleHandler(scheduleSvc, bookingSvc),
		Calendar:   handler.NewCalendarHandler(calendarSvc),
		Booking:    handler.NewBookingHandler(bookingSvc),
		Profile:    handler.NewProfileHandler(profileSvc, searchSvc),
		Evaluation: handler.NewEvaluationHandler(evaluationSvc),
		Document:   handler.NewDocumentHandler(documentSvc),
		Admin:      handler.NewAdminHandler(profileSvc, analyticsSvc, cfg.Exports.Enabled),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if _, err := os.Stat(cfg.Store.Path); err != nil && !os.IsNotExist(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "datastore unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Path)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
