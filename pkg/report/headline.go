package report

import (
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
	"github.com/aresleonardo123/dashboard-trl/pkg/submission"
)

// Metrics are the dashboard's headline numbers.
type Metrics struct {
	Forms          int                        `json:"forms"`
	MaxLevel       int                        `json:"max_level"`
	Approved       int                        `json:"approved"`
	MentorYes      int                        `json:"mentor_yes"`
	MentorNo       int                        `json:"mentor_no"`
	MaxTotal       float64                    `json:"max_total"`
	TopBySegment   map[scoring.Segment]string `json:"top_by_segment"`
	CommonLanguage string                     `json:"common_language"`
}

// Headline computes Metrics. The top project of a segment is the first
// project in input order holding that segment's best total.
func Headline(items []scoring.Scored) Metrics {
	m := Metrics{
		Forms:          len(items),
		TopBySegment:   make(map[scoring.Segment]string),
		CommonLanguage: submission.NotSpecified,
	}

	var maxLevel, maxTotal float64
	best := make(map[scoring.Segment]float64)
	languages := make(map[string]int)

	for i, it := range items {
		if i == 0 || it.Submission.Level > maxLevel {
			maxLevel = it.Submission.Level
		}
		if i == 0 || it.Total() > maxTotal {
			maxTotal = it.Total()
		}
		if it.Approved {
			m.Approved++
		}
		if it.Submission.Mentor {
			m.MentorYes++
		}

		if it.Segment != scoring.SegmentUnknown {
			if cur, ok := best[it.Segment]; !ok || it.Total() > cur {
				best[it.Segment] = it.Total()
				m.TopBySegment[it.Segment] = it.Submission.Name
			}
		}
		languages[it.Submission.Language]++
	}

	m.MentorNo = m.Forms - m.MentorYes
	m.MaxLevel = int(maxLevel)
	m.MaxTotal = round1(maxTotal)

	if lang, ok := mode(languages); ok {
		m.CommonLanguage = lang
	}
	return m
}

// mode returns the most frequent key; ties go to the smallest key.
func mode(counts map[string]int) (string, bool) {
	var (
		best  string
		count int
	)
	for k, c := range counts {
		if c > count || (c == count && k < best) {
			best, count = k, c
		}
	}
	return best, count > 0
}
