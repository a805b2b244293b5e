package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storageapi/internal/apierror"
	"storageapi/internal/metrics"
	"storageapi/internal/models"
	"storageapi/internal/pagination"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// handleIndex returns basic service information
// GET / - Returns service info and available endpoints
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.sendError(w, "unknown", apierror.InvalidParameter("Endpoint not found"), http.StatusNotFound)
		return
	}

	info := map[string]interface{}{
		"service":     "Contract Storage API",
		"version":     "1.0.0",
		"description": "Read API over Soroban contract storage snapshots",
		"endpoints": map[string]string{
			"GET /":                      "This page - Service information",
			"GET /health":                "Health check endpoint",
			"GET /metrics":               "Prometheus metrics for monitoring",
			"GET /contract/{id}/storage": "Paginated storage entries (supports ?cursor=, ?limit=, ?order=, ?sort_by=)",
			"GET /contract/{id}/keys":    "Distinct decoded key names for a contract",
		},
	}

	s.respondJSON(w, "index", http.StatusOK, info)
}

// handleHealth returns health status
// GET /health - Health check for monitoring systems
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := "healthy"
	code := http.StatusOK
	if err := s.repository.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	health := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"service":   "contract-storage-api",
	}

	s.respondJSON(w, "health", code, health)
}

// handleMetrics returns Prometheus metrics
// GET /metrics - Prometheus scraping endpoint
func (s *Server) handleMetrics() http.Handler {
	return promhttp.Handler()
}

// handleContractStorage serves one page of a contract's storage entries
// GET /contract/{id}/storage?cursor=&limit=&order=&sort_by=
func (s *Server) handleContractStorage(w http.ResponseWriter, r *http.Request, contractID string) {
	ctx := r.Context()

	params, err := pagination.ParseRequest(contractID, r.URL.Query())
	if err != nil {
		s.sendAPIError(w, "storage", err)
		return
	}

	latestLedger, err := s.ledger.GetLatestLedgerSequence(ctx)
	if err != nil {
		slog.Error("Failed to get latest ledger sequence", "error", err)
		s.sendAPIError(w, "storage", apierror.Internal(err))
		return
	}

	rows, err := s.repository.GetContractDataPage(ctx, params)
	if err != nil {
		var apiErr *apierror.Error
		if !errors.As(err, &apiErr) {
			err = apierror.Storage(err)
		}
		slog.Error("Failed to query contract data", "contract_id", contractID, "error", err)
		s.sendAPIError(w, "storage", err)
		return
	}

	response := models.StorageResponse{
		Links:   pagination.BuildLinks(params, rows),
		Results: BuildContractDataDTOs(rows, latestLedger),
	}

	s.respondJSON(w, "storage", http.StatusOK, response)
}

// handleContractKeys lists the distinct decoded key names for a contract
// GET /contract/{id}/keys
func (s *Server) handleContractKeys(w http.ResponseWriter, r *http.Request, contractID string) {
	ctx := r.Context()

	if contractID == "" {
		s.sendAPIError(w, "keys", apierror.InvalidParameter("Invalid contract_id, must not be empty"))
		return
	}

	keys, err := s.repository.ListContractKeys(ctx, contractID)
	if err != nil {
		slog.Error("Failed to list contract keys", "contract_id", contractID, "error", err)
		s.sendAPIError(w, "keys", apierror.Storage(err))
		return
	}

	if keys == nil {
		keys = []string{}
	}

	response := models.KeysResponse{
		ContractID: contractID,
		TotalKeys:  len(keys),
		Keys:       keys,
	}

	s.respondJSON(w, "keys", http.StatusOK, response)
}

// sendAPIError maps a classified error to its HTTP status and client message
func (s *Server) sendAPIError(w http.ResponseWriter, endpoint string, err error) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		s.sendError(w, endpoint, apiErr, apiErr.HTTPStatus())
		return
	}

	s.sendError(w, endpoint, apierror.Internal(err), http.StatusInternalServerError)
}

// sendError sends a JSON error response
func (s *Server) sendError(w http.ResponseWriter, endpoint string, apiErr *apierror.Error, code int) {
	metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: apiErr.ClientMessage(),
	})
}

// respondJSON writes a successful JSON response
func (s *Server) respondJSON(w http.ResponseWriter, endpoint string, code int, payload interface{}) {
	metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
