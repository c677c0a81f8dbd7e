package report

import (
	"fmt"

	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

// Summary is the aggregate view of a collection of scored projects.
type Summary struct {
	Total        int                     `json:"total"`
	Approved     int                     `json:"approved"`
	ApprovedPct  float64                 `json:"approved_pct"`
	Distribution map[scoring.Segment]int `json:"distribution"`
	Averages     Averages                `json:"averages"`
	Top          []Ranked                `json:"top"`
	Highlights   []string                `json:"highlights"`
}

// Summarize builds a Summary. An empty collection yields zeros and a
// placeholder top-project highlight.
func Summarize(items []scoring.Scored) Summary {
	s := Summary{
		Total:        len(items),
		Distribution: make(map[scoring.Segment]int),
	}

	var early, mid, late, total float64
	for _, it := range items {
		if it.Approved {
			s.Approved++
		}
		s.Distribution[it.Segment]++
		early += it.Scores.Early
		mid += it.Scores.Mid
		late += it.Scores.Late
		total += it.Total()
	}

	if s.Total > 0 {
		s.ApprovedPct = round1(float64(s.Approved) / float64(s.Total) * 100)
	}
	s.Averages = Averages{
		Early: mean(early, s.Total),
		Mid:   mean(mid, s.Total),
		Late:  mean(late, s.Total),
		Total: mean(total, s.Total),
	}

	s.Top = make([]Ranked, 0, 3)
	for _, it := range Top(items, 3) {
		s.Top = append(s.Top, Ranked{Name: it.Submission.Name, Total: round1(it.Total())})
	}

	s.Highlights = highlights(s)
	return s
}

func highlights(s Summary) []string {
	top := "No standout projects"
	if len(s.Top) > 0 {
		top = fmt.Sprintf("Top project: %s (%.1f pts)", s.Top[0].Name, s.Top[0].Total)
	}

	early := s.Distribution[scoring.SegmentEarly]
	mid := s.Distribution[scoring.SegmentMid]
	late := s.Distribution[scoring.SegmentLate]

	rec := "Recommendation: Prepare implementation"
	if early > late {
		rec = "Recommendation: Mentor early projects"
	}

	return []string{
		fmt.Sprintf("%d of %d projects are approved (%.1f%%)", s.Approved, s.Total, s.ApprovedPct),
		top,
		fmt.Sprintf("TRL distribution: %d early stage, %d in development, %d ready", early, mid, late),
		fmt.Sprintf("Averages: TRL 1-3: %.1f, TRL 4-7: %.1f, TRL 8-9: %.1f", s.Averages.Early, s.Averages.Mid, s.Averages.Late),
		rec,
	}
}
