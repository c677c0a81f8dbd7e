package surface

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// MarkdownRenderer produces a printable Markdown report of a dataset.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, rep *Report) error {
	var sb strings.Builder
	sum := rep.Summary

	sb.WriteString("## TRL Scoring Report\n\n")
	sb.WriteString(fmt.Sprintf("_Generated %s_\n\n", rep.GeneratedAt.Format("02/01/2006 15:04")))

	sb.WriteString("### Overview\n\n")
	sb.WriteString("| Metric | Value |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Projects | %d |\n", sum.Total))
	sb.WriteString(fmt.Sprintf("| Approved | %d (%.1f%%) |\n", sum.Approved, sum.ApprovedPct))
	sb.WriteString(fmt.Sprintf("| Average TRL 1-3 | %.1f |\n", sum.Averages.Early))
	sb.WriteString(fmt.Sprintf("| Average TRL 4-7 | %.1f |\n", sum.Averages.Mid))
	sb.WriteString(fmt.Sprintf("| Average TRL 8-9 | %.1f |\n", sum.Averages.Late))
	sb.WriteString(fmt.Sprintf("| Average total | %.1f |\n", sum.Averages.Total))
	sb.WriteString("\n")

	if len(rep.Projects) > 0 {
		sb.WriteString("### Projects\n\n")
		sb.WriteString("| Project | Segment | TRL 1-3 | TRL 4-7 | TRL 8-9 | Total | Approved |\n")
		sb.WriteString("|---------|---------|---------|---------|---------|-------|----------|\n")
		for _, p := range rep.Projects {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.1f | %.1f | %.1f | %.1f | %s |\n",
				escapeCell(p.Name), p.Segment, p.Scores.Early, p.Scores.Mid, p.Scores.Late, p.Total, yesNo(p.Approved)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("### Highlights\n\n")
	for _, h := range sum.Highlights {
		sb.WriteString(fmt.Sprintf("- %s\n", h))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteProjectReport writes the printable report for a single project.
func WriteProjectReport(w io.Writer, p ProjectView, at time.Time) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s\n\n", p.Name))
	sb.WriteString(fmt.Sprintf("_Generated %s_\n\n", at.Format("02/01/2006 15:04")))

	sb.WriteString("| Field | Value |\n|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Approved | %s |\n", yesNo(p.Approved)))
	sb.WriteString(fmt.Sprintf("| TRL level | %g |\n", p.Level))
	sb.WriteString(fmt.Sprintf("| TRL segment | %s |\n", p.Segment))
	sb.WriteString(fmt.Sprintf("| Mentor | %s |\n", yesNo(p.Mentor)))
	sb.WriteString(fmt.Sprintf("| Location | %s |\n", escapeCell(p.Location)))
	sb.WriteString(fmt.Sprintf("| Language level | %s |\n", escapeCell(p.Language)))
	sb.WriteString(fmt.Sprintf("| Score TRL 1-3 | %.1f |\n", p.Scores.Early))
	sb.WriteString(fmt.Sprintf("| Score TRL 4-7 | %.1f |\n", p.Scores.Mid))
	sb.WriteString(fmt.Sprintf("| Score TRL 8-9 | %.1f |\n", p.Scores.Late))
	sb.WriteString(fmt.Sprintf("| Total | %.1f |\n", p.Total))
	sb.WriteString("\n")

	if len(p.Insights) > 0 {
		sb.WriteString("### Insights\n\n")
		for _, in := range p.Insights {
			sb.WriteString(fmt.Sprintf("- %s\n", in))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
