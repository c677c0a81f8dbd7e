package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aresleonardo123/dashboard-trl/internal/pipeline"
	"github.com/aresleonardo123/dashboard-trl/pkg/report"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
	"github.com/aresleonardo123/dashboard-trl/pkg/surface"
)

type searchRequest struct {
	Name string `json:"name"`
}

type projectsResponse struct {
	Projects []surface.ProjectView `json:"projects"`
	Count    int                   `json:"count"`
}

func views(ds *pipeline.Dataset, items []scoring.Scored) projectsResponse {
	out := projectsResponse{Projects: make([]surface.ProjectView, 0, len(items))}
	for _, it := range items {
		out.Projects = append(out.Projects, surface.NewProjectView(it, ds.InsightsFor(it)))
	}
	out.Count = len(out.Projects)
	return out
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views(ds, ds.Items))
}

func (h *Handler) handleSearchProjects(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	found := report.Search(ds.Items, req.Name)
	if len(found) == 0 {
		writeError(w, http.StatusNotFound, "no project matches "+req.Name)
		return
	}
	writeJSON(w, http.StatusOK, views(ds, found))
}

func (h *Handler) handleProjectReport(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	it, found := report.Find(ds.Items, name)
	if !found {
		writeError(w, http.StatusNotFound, "no project matches "+name)
		return
	}

	var buf bytes.Buffer
	view := surface.NewProjectView(it, ds.InsightsFor(it))
	if err := surface.WriteProjectReport(&buf, view, h.now()); err != nil {
		writeError(w, http.StatusInternalServerError, "render report: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
