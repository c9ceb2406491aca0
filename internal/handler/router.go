package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/pawcare-grooming-api/internal/middleware"
	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	"github.com/noah-isme/pawcare-grooming-api/pkg/config"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
	"github.com/noah-isme/pawcare-grooming-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/pawcare-grooming-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/pawcare-grooming-api/pkg/middleware/requestid"
	"github.com/noah-isme/pawcare-grooming-api/pkg/response"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Availability *AvailabilityHandler
	Appointments *AppointmentHandler
	Stylists     *StylistHandler
	Settings     *FacilitySettingsHandler
	Export       *ExportHandler
	System       *MetricsHandler
}

// NewRouter builds the gin engine with the shared middleware chain and all routes.
func NewRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.New())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.System.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	availability := api.Group("/availability")
	availability.POST("/check", h.Availability.Check)
	availability.POST("/stylists", h.Availability.Stylists)
	availability.POST("/suitable", h.Availability.Suitable)

	facilities := api.Group("/facilities/:facilityId")
	facilities.GET("/stylists", h.Stylists.List)
	facilities.POST("/stylists", h.Stylists.Create)
	facilities.GET("/appointments", h.Appointments.List)
	facilities.GET("/settings", h.Settings.Get)
	facilities.PUT("/settings", h.Settings.Update)
	facilities.GET("/schedule/export", h.Export.DailySheet)

	stylists := api.Group("/stylists/:id")
	stylists.GET("", h.Stylists.Get)
	stylists.PUT("", h.Stylists.Update)
	stylists.DELETE("", h.Stylists.Delete)
	stylists.GET("/capacity", h.Stylists.GetCapacity)
	stylists.PUT("/capacity", h.Stylists.UpsertCapacity)
	stylists.GET("/open-slots", h.Availability.OpenSlots)

	api.POST("/appointments", h.Appointments.Book)
	appointments := api.Group("/appointments/:id")
	appointments.GET("", h.Appointments.Get)
	appointments.PUT("/schedule", h.Appointments.Reschedule)
	appointments.PATCH("/status", h.Appointments.UpdateStatus)

	api.GET("/system/metrics", h.System.Summary)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})
	return r
}
