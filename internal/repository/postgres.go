// Package repository provides the data access layer for PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// PostgresConfig holds PostgreSQL connection pool configuration.
type PostgresConfig struct {
	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of idle connections to keep.
	MaxIdleConns int
	// ConnMaxLifetime is how long a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is how long a connection can remain idle before being closed.
	ConnMaxIdleTime time.Duration
	// ConnectTimeout is the timeout for the initial connectivity check.
	ConnectTimeout time.Duration
}

// DefaultPostgresConfig returns production-oriented pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 10 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
}

// Postgres wraps the pooled database handle.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres opens a PostgreSQL connection pool with default configuration.
func NewPostgres(url string) (*Postgres, error) {
	return NewPostgresWithConfig(url, DefaultPostgresConfig())
}

// NewPostgresWithConfig opens a PostgreSQL connection pool with custom
// configuration and verifies connectivity with a ping.
func NewPostgresWithConfig(url string, cfg PostgresConfig) (*Postgres, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Postgres{DB: db}, nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.DB.PingContext(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	return p.DB.Close()
}
