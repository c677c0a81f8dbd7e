// Package api implements the TRL scoring REST API.
// It serves scored projects, dashboard aggregates and exports computed from
// the cached submission dataset.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aresleonardo123/dashboard-trl/internal/history"
	"github.com/aresleonardo123/dashboard-trl/internal/pipeline"
	"github.com/aresleonardo123/dashboard-trl/internal/source"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

// Pipeline produces scored datasets. pipeline.Service implements it.
type Pipeline interface {
	Load(ctx context.Context) (*pipeline.Dataset, error)
	Refresh(ctx context.Context, trigger string) (*pipeline.Dataset, error)
}

// RunReader reads recorded refresh runs. history.Service implements it.
type RunReader interface {
	ListRuns(ctx context.Context, limit int) ([]history.Run, error)
	GetRun(ctx context.Context, id uuid.UUID) (*history.Run, error)
}

// Handler is the top-level API handler for the scoring service.
type Handler struct {
	pipeline Pipeline
	runs     RunReader
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates a new API handler. runs may be nil when no run history
// is configured.
func NewHandler(p Pipeline, runs RunReader, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		pipeline: p,
		runs:     runs,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)

	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /api/v1/refresh", h.handleRefresh)

	// Read endpoints
	mux.HandleFunc("GET /api/v1/metrics", h.handleMetrics)
	mux.HandleFunc("GET /api/v1/charts", h.handleCharts)
	mux.HandleFunc("GET /api/v1/insights", h.handleInsights)
	mux.HandleFunc("GET /api/v1/projects", h.handleListProjects)
	mux.HandleFunc("POST /api/v1/projects/search", h.handleSearchProjects)
	mux.HandleFunc("GET /api/v1/projects/{name}/report", h.handleProjectReport)
	mux.HandleFunc("GET /api/v1/reports/top", h.handleTopReport)
	mux.HandleFunc("GET /api/v1/reports/approved.xlsx", h.handleApprovedExport)
	mux.HandleFunc("GET /api/v1/runs", h.handleListRuns)
	mux.HandleFunc("GET /api/v1/runs/{id}", h.handleGetRun)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dataset loads the current scored dataset, writing the error response
// itself when loading fails.
func (h *Handler) dataset(w http.ResponseWriter, r *http.Request) (*pipeline.Dataset, bool) {
	ds, err := h.pipeline.Load(r.Context())
	if err != nil {
		h.writeLoadError(w, err)
		return nil, false
	}
	return ds, true
}

func (h *Handler) writeLoadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, source.ErrSourceUnavailable):
		h.logger.Warn("submission source unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "submission source unavailable: "+err.Error())
	case errors.Is(err, scoring.ErrConfig):
		h.logger.Error("invalid answer dictionary", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "invalid answer dictionary: "+err.Error())
	default:
		h.logger.Error("loading dataset failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "load dataset: "+err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
