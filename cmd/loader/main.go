// Package main is the entry point for the batch loader. It ingests every
// parquet file in the data directory into PostgreSQL, replacing any
// previously loaded trips, then exits.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/taxi-data-service/config"
	"github.com/guttosm/taxi-data-service/internal/app"
	"github.com/guttosm/taxi-data-service/internal/loader"
	"github.com/guttosm/taxi-data-service/internal/repository"
)

func main() {
	cfg := config.Load()
	app.InitializeLogger()

	pg, err := repository.NewPostgresWithConfig(cfg.Database.URL, repository.PostgresConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer func() { _ = pg.Close() }()

	repo := repository.NewTripRepository(pg)
	l := loader.New(repo, cfg.Loader.DataDir, cfg.Loader.ChunkSize)

	// Only a missing data directory or an empty one is fatal; a run where
	// every present file was skipped or failed still exits zero.
	if _, err := l.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Load failed")
	}
}
