package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// readWriteTimeout bounds slow clients on both directions; trip payloads
	// are small, so anything longer indicates a stuck connection.
	readWriteTimeout = 15 * time.Second
	idleTimeout      = 60 * time.Second
	// defaultShutdownTimeout is how long in-flight trip requests get to
	// drain before the listener is torn down.
	defaultShutdownTimeout = 10 * time.Second
)

// Server runs the trip API over http.Server and drains it cleanly on
// SIGINT/SIGTERM.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// NewServer wraps the router in an http.Server tuned for the trip API.
func NewServer(handler http.Handler, port string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           ":" + port,
			Handler:        handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			IdleTimeout:    idleTimeout,
			MaxHeaderBytes: 1 << 20,
		},
		shutdownTimeout: defaultShutdownTimeout,
	}
}

// Run serves until the listener fails or a shutdown signal arrives, then
// drains in-flight requests.
func (s *Server) Run() error {
	errChan := make(chan error, 1)

	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Received signal, initiating graceful shutdown")
	}

	return s.Shutdown()
}

// Shutdown stops accepting connections and waits up to the shutdown timeout
// for in-flight requests to finish.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}
