// Package report computes dataset-wide views over scored submissions:
// summaries, headline metrics, chart series, rankings and search.
// Every function is total over an empty collection.
package report

import (
	"math"
	"sort"
	"strings"

	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

// Ranked is a project name with its total score.
type Ranked struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Averages are mean segment and total scores, rounded to one decimal.
type Averages struct {
	Early float64 `json:"trl_1_3"`
	Mid   float64 `json:"trl_4_7"`
	Late  float64 `json:"trl_8_9"`
	Total float64 `json:"total"`
}

// Top returns up to n items ordered by total score, highest first. Ties keep
// input order. The input slice is not reordered.
func Top(items []scoring.Scored, n int) []scoring.Scored {
	sorted := make([]scoring.Scored, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total() > sorted[j].Total()
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Approved filters items down to approved projects, keeping order.
func Approved(items []scoring.Scored) []scoring.Scored {
	var out []scoring.Scored
	for _, it := range items {
		if it.Approved {
			out = append(out, it)
		}
	}
	return out
}

// Search returns every item whose project name contains query, ignoring
// case. The query is matched literally. An empty result means nothing matched.
func Search(items []scoring.Scored, query string) []scoring.Scored {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []scoring.Scored
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Submission.Name), q) {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the first item matching query as Search does.
func Find(items []scoring.Scored, query string) (scoring.Scored, bool) {
	found := Search(items, query)
	if len(found) == 0 {
		return scoring.Scored{}, false
	}
	return found[0], true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return round1(sum / float64(n))
}
