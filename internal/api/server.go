package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storageapi/internal/apierror"
	"storageapi/internal/ledgerstate"
	"storageapi/internal/storage"
)

// Server represents the HTTP API server
// Provides the contract storage read endpoints plus Prometheus metrics and
// health checks
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	repository storage.Repository
	ledger     ledgerstate.Source
	port       int
}

// NewServer creates a new API server instance
// The repository and ledger source are made available to all handlers
func NewServer(port int, repository storage.Repository, ledger ledgerstate.Source) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mux:        mux,
		repository: repository,
		ledger:     ledger,
		port:       port,
	}

	// Register all HTTP routes
	s.registerRoutes()

	return s
}

// registerRoutes sets up all HTTP routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", s.handleMetrics())

	// Contract endpoints
	s.mux.HandleFunc("/contract/", s.handleContractRoutes)
}

// handleContractRoutes routes contract sub-endpoints
func (s *Server) handleContractRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "contract", apierror.InvalidParameter("Method not allowed"), http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/contract/")
	parts := strings.Split(path, "/")

	// GET /contract/{id}/storage
	if len(parts) == 2 && parts[1] == "storage" {
		s.handleContractStorage(w, r, parts[0])
		return
	}

	// GET /contract/{id}/keys
	if len(parts) == 2 && parts[1] == "keys" {
		s.handleContractKeys(w, r, parts[0])
		return
	}

	s.sendError(w, "contract", apierror.InvalidParameter("Endpoint not found"), http.StatusNotFound)
}

// Start starts the HTTP server in a goroutine
// Returns immediately after starting the server
func (s *Server) Start() error {
	go func() {
		slog.Info("API server starting",
			"port", s.port,
			"endpoints", []string{"/", "/health", "/metrics", "/contract/{id}/storage", "/contract/{id}/keys"},
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server error", "error", err)
		}
	}()

	// Give the server a moment to start
	time.Sleep(100 * time.Millisecond)

	return nil
}

// Shutdown gracefully shuts down the HTTP server
// Waits for active connections to close or context to timeout
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("API server shutting down...")
	return s.httpServer.Shutdown(ctx)
}
