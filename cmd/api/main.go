// Package main is the entry point for the taxi data API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/taxi-data-service/config"
	"github.com/guttosm/taxi-data-service/internal/app"
)

func main() {
	cfg := config.Load()

	components, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer components.Close()

	server := app.NewServer(components.Router, cfg.Server.Port)
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
