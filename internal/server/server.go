// Package server provides the HTTP API for paper-engine.
package server

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Player01osu/paper-engine/internal/config"
	"github.com/Player01osu/paper-engine/internal/index"
	"github.com/Player01osu/paper-engine/internal/ingest"
)

//go:embed index.html
var indexPage []byte

// Server is the HTTP server for the paper-engine API.
type Server struct {
	store         *index.Store
	submitter     *ingest.Submitter
	config        *config.ServerConfig
	snapshotPath  string
	defaultPolicy index.DupePolicy
	logger        *zap.Logger
	server        *http.Server
}

// NewServer creates a server with the given dependencies. defaultPolicy
// applies when a submit request carries no dupe parameter.
func NewServer(
	store *index.Store,
	submitter *ingest.Submitter,
	cfg *config.ServerConfig,
	snapshotPath string,
	defaultPolicy index.DupePolicy,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:         store,
		submitter:     submitter,
		config:        cfg,
		snapshotPath:  snapshotPath,
		defaultPolicy: defaultPolicy,
		logger:        logger,
	}
}

// Router returns the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.handleIndexPage)
	r.Route("/api/document", func(r chi.Router) {
		r.Get("/submit", s.handleSubmit)
		r.Get("/search", s.handleSearch)
	})
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
