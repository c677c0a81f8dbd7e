package insight_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aresleonardo123/dashboard-trl/pkg/insight"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
	"github.com/aresleonardo123/dashboard-trl/pkg/submission"
)

func scored(level float64, scores scoring.ScoreSet, mentor bool, lang, industry string) scoring.Scored {
	return scoring.Scored{
		Submission: submission.Submission{
			Level:    level,
			Mentor:   mentor,
			Language: lang,
			Industry: industry,
		},
		Segment: scoring.SegmentFor(level),
		Scores:  scores,
	}
}

func TestGenerateEarlyWeakProject(t *testing.T) {
	s := scored(2, scoring.ScoreSet{Early: 10}, false, "Básico", "Agro")

	want := []string{
		"Conceptual stage: needs more theoretical development and validation",
		"Weak theoretical grounding: needs more research",
		"Insufficient technical development: requires more validation",
		"Limited market readiness: needs further development",
		"No mentor accompaniment: mentoring is recommended",
		"Limited English: affects international potential",
		"Prioritize research and conceptual validation",
		"Carry out more market and technical research",
		"Seek faculty mentoring to strengthen the project",
		"Improve English documentation for greater impact",
		"Limited potential: requires significant development",
		"Sector: Agro - consider related market trends",
	}
	if diff := cmp.Diff(want, insight.Generate(s)); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateStrongMidProject(t *testing.T) {
	s := scored(6, scoring.ScoreSet{Early: 45, Mid: 55, Late: 50}, true, "Avanzado", "Energy")

	want := []string{
		"Working prototype: technical validation in progress",
		"Well-founded innovation backed by solid research",
		"Advanced and validated technical development",
		"High deployment and scalability potential",
		"Strong academic mentoring",
		"Good capacity for international documentation",
		"Focus on technical development and testing",
		"Excellent potential: well developed across all areas",
		"Sector: Energy - consider related market trends",
	}
	if diff := cmp.Diff(want, insight.Generate(s)); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateUnknownSegmentUsesLateStageStatements(t *testing.T) {
	s := scored(0, scoring.ScoreSet{Early: 40, Mid: 40, Late: 40}, true, "Intermediate", submission.NotSpecified)
	got := insight.Generate(s)

	if got[0] != "Almost ready: needs final adjustments before deployment" {
		t.Errorf("maturity = %q", got[0])
	}
	if diff := cmp.Diff([]string{
		"Prepare an implementation and commercialization strategy",
		"Run pilot tests with end users",
	}, insight.NewGenerator(insight.DefaultThresholds()).Recommendations(s)); diff != "" {
		t.Errorf("Recommendations() mismatch (-want +got):\n%s", diff)
	}
	if got[len(got)-1] != "Sector: Not specified - consider related market trends" {
		t.Errorf("industry = %q", got[len(got)-1])
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	s := scored(8, scoring.ScoreSet{Early: 12, Mid: 33, Late: 61}, false, "Intermedio", "Health")
	first := insight.Generate(s)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, insight.Generate(s)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestPotential(t *testing.T) {
	g := insight.NewGenerator(insight.DefaultThresholds())
	tests := []struct {
		total float64
		want  string
	}{
		{120, "Excellent potential: well developed across all areas"},
		{119.9, "Good potential: solid project with some areas to improve"},
		{80, "Good potential: solid project with some areas to improve"},
		{50, "Moderate potential: needs work in several areas"},
		{49, "Limited potential: requires significant development"},
	}
	for _, tt := range tests {
		if got := g.Potential(tt.total); got != tt.want {
			t.Errorf("Potential(%v) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestMaturityThresholds(t *testing.T) {
	g := insight.NewGenerator(insight.DefaultThresholds())
	tests := []struct {
		level  float64
		scores scoring.ScoreSet
		want   string
	}{
		{1, scoring.ScoreSet{Early: 40}, "Solid research: good theoretical grounding and initial validation"},
		{4, scoring.ScoreSet{Mid: 49}, "Early prototype: requires further technical development"},
		{9, scoring.ScoreSet{Late: 60}, "Ready for deployment: high market readiness"},
	}
	for _, tt := range tests {
		s := scored(tt.level, tt.scores, false, "", "")
		if got := g.Maturity(s); got != tt.want {
			t.Errorf("Maturity(level %v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
