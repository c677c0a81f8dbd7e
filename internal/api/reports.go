package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/aresleonardo123/dashboard-trl/pkg/report"
	"github.com/aresleonardo123/dashboard-trl/pkg/surface"
)

const defaultTopN = 10

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Headline(ds.Items))
}

func (h *Handler) handleCharts(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Charts(ds.Items, ds.Threshold))
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Summarize(ds.Items))
}

func (h *Handler) handleTopReport(w http.ResponseWriter, r *http.Request) {
	n := defaultTopN
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views(ds, report.Top(ds.Items, n)))
}

func (h *Handler) handleApprovedExport(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	approved := report.Approved(ds.Items)
	if len(approved) == 0 {
		writeError(w, http.StatusNotFound, "no approved projects")
		return
	}

	projects := make([]surface.ProjectView, 0, len(approved))
	for _, it := range approved {
		projects = append(projects, surface.NewProjectView(it, ds.InsightsFor(it)))
	}

	var buf bytes.Buffer
	if err := surface.WriteApprovedXLSX(&buf, projects); err != nil {
		writeError(w, http.StatusInternalServerError, "export spreadsheet: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="approved_projects.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
