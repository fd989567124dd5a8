package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/api"
	"github.com/pageza/macrotrack/backend/internal/metrics"
	"github.com/pageza/macrotrack/backend/internal/middleware"
	"github.com/pageza/macrotrack/backend/internal/service"
)

// Dependencies are the services and clients the routes are built from.
// Exporter, SearchLimiter, DB and Redis may be nil.
type Dependencies struct {
	Auth          service.IAuthService
	Profile       service.IProfileService
	Goals         service.IGoalsService
	Lookup        service.IFoodLookupService
	Tracker       service.ITrackerService
	Exporter      service.IDiaryExporter
	SearchLimiter *middleware.RateLimiter
	DB            *gorm.DB
	Redis         *redis.Client
	Origins       []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	if err := api.RegisterValidators(); err != nil {
		return nil, err
	}
	metrics.Register()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(deps.Origins...))

	health := api.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	api.NewAuthHandler(deps.Auth).RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))
	{
		var limiter gin.HandlerFunc
		if deps.SearchLimiter != nil {
			limiter = deps.SearchLimiter.RateLimitMiddleware()
		}

		api.NewProfileHandler(deps.Profile).RegisterRoutes(protected)
		api.NewGoalsHandler(deps.Goals).RegisterRoutes(protected)
		api.NewFoodHandler(deps.Lookup, deps.Tracker, limiter).RegisterRoutes(protected)
		api.NewTrackerHandler(deps.Tracker, deps.Goals, deps.Exporter).RegisterRoutes(protected)
	}

	return router, nil
}
