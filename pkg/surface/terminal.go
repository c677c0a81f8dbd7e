package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TerminalRenderer renders a Report as styled terminal output.
// Styling degrades to plain text when the output is not a color terminal.
type TerminalRenderer struct {
	// Insights prints each project's findings under its row.
	Insights bool
}

type termStyles struct {
	header   lipgloss.Style
	approved lipgloss.Style
	rejected lipgloss.Style
	dim      lipgloss.Style
	bold     lipgloss.Style
}

func newTermStyles() termStyles {
	return termStyles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		approved: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		rejected: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		bold:     lipgloss.NewStyle().Bold(true),
	}
}

func (r *TerminalRenderer) Render(w io.Writer, rep *Report) error {
	st := newTermStyles()
	sum := rep.Summary

	fmt.Fprintf(w, "%s\n\n", st.header.Render(fmt.Sprintf("TRL scoring: %d projects, %d approved (%.1f%%)",
		sum.Total, sum.Approved, sum.ApprovedPct)))

	if len(rep.Projects) == 0 {
		fmt.Fprintln(w, "No projects.")
		fmt.Fprintln(w)
	}

	for _, p := range rep.Projects {
		verdict := st.rejected.Render("✗")
		if p.Approved {
			verdict = st.approved.Render("✓")
		}
		fmt.Fprintf(w, "  %s %s %s\n", verdict, st.bold.Render(p.Name), st.dim.Render(string(p.Segment)))
		fmt.Fprintf(w, "      TRL 1-3 %5.1f  TRL 4-7 %5.1f  TRL 8-9 %5.1f  total %6.1f\n",
			p.Scores.Early, p.Scores.Mid, p.Scores.Late, p.Total)

		if r.Insights {
			for _, in := range p.Insights {
				for i, line := range wrapText(in, 70) {
					prefix := "      • "
					if i > 0 {
						prefix = "        "
					}
					fmt.Fprintf(w, "%s%s\n", prefix, st.dim.Render(line))
				}
			}
		}
	}
	if len(rep.Projects) > 0 {
		fmt.Fprintln(w)
	}

	if len(sum.Highlights) > 0 {
		fmt.Fprintln(w, st.bold.Render("Highlights:"))
		for _, h := range sum.Highlights {
			fmt.Fprintf(w, "  • %s\n", h)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
