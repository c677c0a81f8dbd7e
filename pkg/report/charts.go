package report

import (
	"sort"

	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

// HistogramBins is the number of bins in score histograms.
const HistogramBins = 20

// Count is one labelled bar.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SegmentApproval counts projects whose score in one segment does or does
// not reach the threshold.
type SegmentApproval struct {
	Segment scoring.Segment `json:"segment"`
	Passed  int             `json:"passed"`
	Failed  int             `json:"failed"`
}

// Bin is a half-open histogram interval [Low, High); the last bin is closed.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ChartData holds the series behind the dashboard charts.
type ChartData struct {
	ApprovedBySegment []Count           `json:"approved_by_segment"`
	Approval          []Count           `json:"approval"`
	SegmentApproval   []SegmentApproval `json:"segment_approval"`
	EarlyScores       []Bin             `json:"early_scores"`
	Industry          []Count           `json:"industry"`
	Language          []Count           `json:"language"`
	Location          []Count           `json:"location"`
}

// Charts computes every chart series. threshold is the per-segment pass mark.
func Charts(items []scoring.Scored, threshold float64) ChartData {
	var c ChartData

	approvedBy := make(map[scoring.Segment]int)
	passed := make(map[scoring.Segment]int)
	var yes int
	industry := make(map[string]int)
	language := make(map[string]int)
	location := make(map[string]int)
	early := make([]float64, 0, len(items))

	for _, it := range items {
		for _, seg := range scoring.Segments {
			ok := it.Scores.Get(seg) >= threshold
			if ok {
				passed[seg]++
				if it.Approved {
					approvedBy[seg]++
				}
			}
		}
		if it.Approved {
			yes++
		}
		industry[it.Submission.Industry]++
		language[it.Submission.Language]++
		location[it.Submission.Location]++
		early = append(early, it.Scores.Early)
	}

	for _, seg := range scoring.Segments {
		c.ApprovedBySegment = append(c.ApprovedBySegment, Count{Label: string(seg), Count: approvedBy[seg]})
		c.SegmentApproval = append(c.SegmentApproval, SegmentApproval{
			Segment: seg,
			Passed:  passed[seg],
			Failed:  len(items) - passed[seg],
		})
	}
	c.Approval = []Count{
		{Label: "Yes", Count: yes},
		{Label: "No", Count: len(items) - yes},
	}
	c.EarlyScores = Histogram(early, HistogramBins)
	c.Industry = counts(industry)
	c.Language = counts(language)
	c.Location = counts(location)
	return c
}

// Histogram splits values into n equal-width bins between their min and max.
// All-equal values land in a single bin.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	bins[n-1].High = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

// counts orders labels by count descending, then label ascending.
func counts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
