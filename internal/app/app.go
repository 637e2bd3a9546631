package app

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/taxi-data-service/config"
	"github.com/guttosm/taxi-data-service/internal/http"
)

// Components holds everything the running API needs, including the handles
// required for cleanup at shutdown.
type Components struct {
	Router   *gin.Engine
	Database *DatabaseComponents
	Close    func()
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) (*Components, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	db, err := InitializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	c := InitializeCache(cfg.Cache)

	routerComponents := InitializeRouter(cfg, db, c)
	router := http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)

	return &Components{
		Router:   router,
		Database: db,
		Close: func() {
			_ = c.Close()
			_ = db.Postgres.Close()
		},
	}, nil
}
