// Package surface defines output rendering for scored projects.
// Implementations handle different output targets: terminal, JSON, Markdown
// and spreadsheet export.
package surface

import (
	"io"
	"time"

	"github.com/aresleonardo123/dashboard-trl/pkg/report"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

// Renderer produces formatted output from a Report.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, r *Report) error
}

// Report is everything a renderer needs about one dataset.
type Report struct {
	Projects    []ProjectView  `json:"projects"`
	Summary     report.Summary `json:"summary"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ProjectView is the flattened, display-ready form of a scored project.
type ProjectView struct {
	Name     string           `json:"name"`
	Approved bool             `json:"approved"`
	Level    float64          `json:"level"`
	Segment  scoring.Segment  `json:"segment"`
	Mentor   bool             `json:"mentor"`
	Location string           `json:"location"`
	Language string           `json:"language"`
	Industry string           `json:"industry"`
	Scores   scoring.ScoreSet `json:"scores"`
	Total    float64          `json:"total"`
	Insights []string         `json:"insights"`
}

// NewProjectView flattens s together with its insights.
func NewProjectView(s scoring.Scored, insights []string) ProjectView {
	return ProjectView{
		Name:     s.Submission.Name,
		Approved: s.Approved,
		Level:    s.Submission.Level,
		Segment:  s.Segment,
		Mentor:   s.Submission.Mentor,
		Location: s.Submission.Location,
		Language: s.Submission.Language,
		Industry: s.Submission.Industry,
		Scores:   s.Scores,
		Total:    s.Total(),
		Insights: insights,
	}
}

// NewReport builds a Report, generating insights for each item with gen.
func NewReport(items []scoring.Scored, gen func(scoring.Scored) []string, at time.Time) *Report {
	r := &Report{
		Summary:     report.Summarize(items),
		GeneratedAt: at,
	}
	for _, it := range items {
		r.Projects = append(r.Projects, NewProjectView(it, gen(it)))
	}
	return r
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
