package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	http *http.Server
}

// New wraps handler in the JSON error middleware and binds it to the
// configured port on all interfaces.
func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           middleware.ErrorHandler(handler),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
