// Package app provides router configuration.
package app

import (
	"github.com/guttosm/taxi-data-service/config"
	"github.com/guttosm/taxi-data-service/internal/cache"
	"github.com/guttosm/taxi-data-service/internal/http"
	"github.com/guttosm/taxi-data-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(cfg config.Config, db *DatabaseComponents, c cache.Cache) *RouterComponents {
	trips := service.NewTripService(db.TripRepo, c,
		service.WithTripTTL(cfg.Cache.TripTTL),
		service.WithStatsTTL(cfg.Cache.StatsTTL),
	)

	handler := http.NewHandler(trips)
	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("postgres", db.Postgres)
	healthHandler.RegisterChecker("cache", http.HealthCheckFunc(c.Ping))
	healthHandler.RegisterCircuitBreaker("postgres_trips", db.TripCircuitBreaker)

	routerCfg := http.RouterConfig{
		RateLimit:   cfg.Server.RateLimit,
		RateWindow:  cfg.Server.RateWindow,
		CORSOrigins: cfg.Server.CORSOrigins,
		AuthEnabled: cfg.Server.AuthEnabled,
		APIKeys:     cfg.Server.APIKeys,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
