package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guttosm/taxi-data-service/internal/metrics"
	"github.com/guttosm/taxi-data-service/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	AuthEnabled bool
	APIKeys     map[string]bool
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
	}
}

// NewRouter creates and configures the Gin router for the taxi data service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)

	// Infrastructure routes
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerTripRoutes(router, handler, &cfg)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerTripRoutes registers the trip CRUD and aggregation routes.
func registerTripRoutes(router *gin.Engine, handler *Handler, cfg *RouterConfig) {
	trips := router.Group("/trips")

	if cfg.AuthEnabled && len(cfg.APIKeys) > 0 {
		trips.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	trips.POST("/", handler.CreateTrip)
	trips.GET("/", handler.ListTrips)
	trips.GET("/:id", handler.GetTrip)
	trips.PUT("/:id", handler.UpdateTrip)
	trips.DELETE("/:id", handler.DeleteTrip)
	// Serves GET /trips/stats/by-passenger-count; see Handler.PassengerStats
	// for why the static path cannot be registered directly.
	trips.GET("/:id/by-passenger-count", handler.PassengerStats)
}
