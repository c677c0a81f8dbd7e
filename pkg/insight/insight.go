// Package insight derives qualitative findings from a scored submission.
package insight

import (
	"fmt"

	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
	"github.com/aresleonardo123/dashboard-trl/pkg/submission"
)

// Thresholds configures every cut-off used when generating insights.
type Thresholds struct {
	// Maturity: nominal segment score needed for the stronger statement.
	MaturityEarly float64 `yaml:"maturity_early" json:"maturity_early"`
	MaturityMid   float64 `yaml:"maturity_mid" json:"maturity_mid"`
	MaturityLate  float64 `yaml:"maturity_late" json:"maturity_late"`

	// Strengths: segment score at or above.
	StrengthEarly float64 `yaml:"strength_early" json:"strength_early"`
	StrengthMid   float64 `yaml:"strength_mid" json:"strength_mid"`
	StrengthLate  float64 `yaml:"strength_late" json:"strength_late"`

	// Weaknesses: segment score below.
	WeaknessEarly float64 `yaml:"weakness_early" json:"weakness_early"`
	WeaknessMid   float64 `yaml:"weakness_mid" json:"weakness_mid"`
	WeaknessLate  float64 `yaml:"weakness_late" json:"weakness_late"`

	// Recommendations: nominal segment score below which an extra step is suggested.
	FollowUpEarly float64 `yaml:"follow_up_early" json:"follow_up_early"`
	FollowUpMid   float64 `yaml:"follow_up_mid" json:"follow_up_mid"`
	FollowUpLate  float64 `yaml:"follow_up_late" json:"follow_up_late"`

	// Potential: total score at or above.
	PotentialExcellent float64 `yaml:"potential_excellent" json:"potential_excellent"`
	PotentialGood      float64 `yaml:"potential_good" json:"potential_good"`
	PotentialModerate  float64 `yaml:"potential_moderate" json:"potential_moderate"`
}

// DefaultThresholds returns the standard insight cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaturityEarly: 40,
		MaturityMid:   50,
		MaturityLate:  60,

		StrengthEarly: 40,
		StrengthMid:   50,
		StrengthLate:  50,

		WeaknessEarly: 30,
		WeaknessMid:   40,
		WeaknessLate:  40,

		FollowUpEarly: 30,
		FollowUpMid:   40,
		FollowUpLate:  50,

		PotentialExcellent: 120,
		PotentialGood:      80,
		PotentialModerate:  50,
	}
}

// Generator produces insights with a fixed set of thresholds.
type Generator struct {
	T Thresholds
}

// NewGenerator returns a Generator using t.
func NewGenerator(t Thresholds) *Generator {
	return &Generator{T: t}
}

// Generate is a convenience wrapper using DefaultThresholds.
func Generate(s scoring.Scored) []string {
	return NewGenerator(DefaultThresholds()).Generate(s)
}

// Generate returns the ordered findings for s: maturity, strengths,
// weaknesses, recommendations, potential and industry. The output depends
// only on s.
func (g *Generator) Generate(s scoring.Scored) []string {
	out := []string{g.Maturity(s)}
	out = append(out, g.Strengths(s)...)
	out = append(out, g.Weaknesses(s)...)
	out = append(out, g.Recommendations(s)...)
	out = append(out, g.Potential(s.Total()))
	out = append(out, Industry(s.Submission.Industry))
	return out
}

// Maturity describes the project's stage. Projects outside every band are
// assessed as late stage.
func (g *Generator) Maturity(s scoring.Scored) string {
	switch s.Segment {
	case scoring.SegmentEarly:
		if s.Scores.Early >= g.T.MaturityEarly {
			return "Solid research: good theoretical grounding and initial validation"
		}
		return "Conceptual stage: needs more theoretical development and validation"
	case scoring.SegmentMid:
		if s.Scores.Mid >= g.T.MaturityMid {
			return "Working prototype: technical validation in progress"
		}
		return "Early prototype: requires further technical development"
	default:
		if s.Scores.Late >= g.T.MaturityLate {
			return "Ready for deployment: high market readiness"
		}
		return "Almost ready: needs final adjustments before deployment"
	}
}

// Strengths lists positive findings.
func (g *Generator) Strengths(s scoring.Scored) []string {
	var out []string
	if s.Scores.Early >= g.T.StrengthEarly {
		out = append(out, "Well-founded innovation backed by solid research")
	}
	if s.Scores.Mid >= g.T.StrengthMid {
		out = append(out, "Advanced and validated technical development")
	}
	if s.Scores.Late >= g.T.StrengthLate {
		out = append(out, "High deployment and scalability potential")
	}
	if s.Submission.Mentor {
		out = append(out, "Strong academic mentoring")
	}
	if isProficient(s.Submission.Language) {
		out = append(out, "Good capacity for international documentation")
	}
	return out
}

// Weaknesses lists findings that need attention.
func (g *Generator) Weaknesses(s scoring.Scored) []string {
	var out []string
	if s.Scores.Early < g.T.WeaknessEarly {
		out = append(out, "Weak theoretical grounding: needs more research")
	}
	if s.Scores.Mid < g.T.WeaknessMid {
		out = append(out, "Insufficient technical development: requires more validation")
	}
	if s.Scores.Late < g.T.WeaknessLate {
		out = append(out, "Limited market readiness: needs further development")
	}
	if !s.Submission.Mentor {
		out = append(out, "No mentor accompaniment: mentoring is recommended")
	}
	if isBasic(s.Submission.Language) {
		out = append(out, "Limited English: affects international potential")
	}
	return out
}

// Recommendations always yields at least the segment recommendation.
func (g *Generator) Recommendations(s scoring.Scored) []string {
	var out []string
	switch s.Segment {
	case scoring.SegmentEarly:
		out = append(out, "Prioritize research and conceptual validation")
		if s.Scores.Early < g.T.FollowUpEarly {
			out = append(out, "Carry out more market and technical research")
		}
	case scoring.SegmentMid:
		out = append(out, "Focus on technical development and testing")
		if s.Scores.Mid < g.T.FollowUpMid {
			out = append(out, "Run more rigorous technical tests")
		}
	default:
		out = append(out, "Prepare an implementation and commercialization strategy")
		if s.Scores.Late < g.T.FollowUpLate {
			out = append(out, "Run pilot tests with end users")
		}
	}
	if !s.Submission.Mentor {
		out = append(out, "Seek faculty mentoring to strengthen the project")
	}
	if isBasic(s.Submission.Language) {
		out = append(out, "Improve English documentation for greater impact")
	}
	return out
}

// Potential grades the overall total.
func (g *Generator) Potential(total float64) string {
	switch {
	case total >= g.T.PotentialExcellent:
		return "Excellent potential: well developed across all areas"
	case total >= g.T.PotentialGood:
		return "Good potential: solid project with some areas to improve"
	case total >= g.T.PotentialModerate:
		return "Moderate potential: needs work in several areas"
	default:
		return "Limited potential: requires significant development"
	}
}

// Industry is the closing sector statement.
func Industry(industry string) string {
	if industry == "" {
		industry = submission.NotSpecified
	}
	return fmt.Sprintf("Sector: %s - consider related market trends", industry)
}

func isProficient(lang string) bool {
	switch lang {
	case "Advanced", "Intermediate", "Avanzado", "Intermedio":
		return true
	}
	return false
}

func isBasic(lang string) bool {
	return lang == "Basic" || lang == "Básico"
}
