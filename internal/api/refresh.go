package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/aresleonardo123/dashboard-trl/internal/history"
	"github.com/aresleonardo123/dashboard-trl/internal/pipeline"
	"github.com/aresleonardo123/dashboard-trl/pkg/report"
)

const defaultRunsLimit = 20

type refreshResponse struct {
	Submissions int     `json:"submissions"`
	Approved    int     `json:"approved"`
	ApprovedPct float64 `json:"approved_pct"`
}

// handleRefresh refetches submissions from the remote form and replaces the
// stored copy.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ds, err := h.pipeline.Refresh(r.Context(), pipeline.TriggerAPI)
	if err != nil {
		h.writeLoadError(w, err)
		return
	}

	sum := report.Summarize(ds.Items)
	writeJSON(w, http.StatusOK, refreshResponse{
		Submissions: sum.Total,
		Approved:    sum.Approved,
		ApprovedPct: sum.ApprovedPct,
	})
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "run history is not configured")
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list runs: "+err.Error())
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "run history is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	run, err := h.runs.GetRun(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "run not found: "+id.String())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get run: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}
