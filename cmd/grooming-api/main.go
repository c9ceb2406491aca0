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
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	_ "github.com/noah-isme/pawcare-grooming-api/api/swagger"
	"github.com/noah-isme/pawcare-grooming-api/internal/events"
	"github.com/noah-isme/pawcare-grooming-api/internal/handler"
	"github.com/noah-isme/pawcare-grooming-api/internal/repository"
	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	"github.com/noah-isme/pawcare-grooming-api/pkg/cache"
	"github.com/noah-isme/pawcare-grooming-api/pkg/config"
	"github.com/noah-isme/pawcare-grooming-api/pkg/database"
	"github.com/noah-isme/pawcare-grooming-api/pkg/logger"
	"github.com/noah-isme/pawcare-grooming-api/pkg/tracing"
)

// @title PawCare Grooming API
// @version 1.0.0
// @description Stylist availability, roster and appointment booking for grooming facilities
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, cfg.Env)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdownTracing(flushCtx); err != nil {
				logr.Warn("tracing shutdown failed", zap.Error(err))
			}
		}()
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	var redisClient redis.UniversalClient
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, roster cache disabled", zap.Error(err))
		} else {
			redisClient = client
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "grooming", logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := service.NewValidator()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.SuitableTTL, logr, redisClient != nil)

	stylistRepo := repository.NewStylistRepository(db)
	capacityRepo := repository.NewStylistCapacityRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	settingsRepo := repository.NewFacilitySettingsRepository(db)

	var publisher service.EventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled && len(cfg.Events.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Events.Brokers), cfg.Events, logr)
		// not tied to ctx: requests drained by srv.Shutdown still publish
		kafkaPublisher.Start(context.Background())
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logr.Warn("event publisher close failed", zap.Error(err))
			}
		}()
		publisher = kafkaPublisher
		logr.Info("appointment events enabled", zap.Strings("brokers", cfg.Events.Brokers), zap.String("topic", events.Topic(cfg.Events.TopicPrefix)))
	}

	settingsSvc := service.NewFacilitySettingsService(settingsRepo, cfg.Availability, validate, logr)
	availabilitySvc := service.NewAvailabilityService(service.AvailabilityServiceConfig{
		Stylists:     stylistRepo,
		Capacities:   capacityRepo,
		Appointments: appointmentRepo,
		Settings:     settingsSvc,
		Cache:        cacheSvc,
		Metrics:      metrics,
		Defaults:     cfg.Availability,
		SuitableTTL:  cfg.Cache.SuitableTTL,
		Validator:    validate,
		Logger:       logr,
	})
	appointmentSvc := service.NewAppointmentService(appointmentRepo, availabilitySvc, publisher, metrics, validate, logr)
	stylistSvc := service.NewStylistService(stylistRepo, capacityRepo, cacheSvc, validate, logr)
	exportSvc := service.NewExportService(appointmentRepo, stylistRepo, logr)

	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = cacheRepo.Ping
	}

	router := handler.NewRouter(cfg, logr, metrics, handler.Handlers{
		Availability: handler.NewAvailabilityHandler(availabilitySvc),
		Appointments: handler.NewAppointmentHandler(appointmentSvc),
		Stylists:     handler.NewStylistHandler(stylistSvc),
		Settings:     handler.NewFacilitySettingsHandler(settingsSvc),
		Export:       handler.NewExportHandler(exportSvc),
		System:       handler.NewMetricsHandler(metrics, checks),
	})

	var httpHandler http.Handler = router
	if cfg.Tracing.Enabled {
		httpHandler = otelhttp.NewHandler(router, cfg.Tracing.ServiceName)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
