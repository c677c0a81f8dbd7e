package scoring

import (
	"fmt"
	"strings"

	"github.com/aresleonardo123/dashboard-trl/pkg/submission"
)

// BonusRule adds submission-level points. Bonuses are applied to every
// scored segment, not just the submission's own.
type BonusRule interface {
	// Key returns the machine-readable rule identifier.
	Key() string
	// Name returns the human-readable rule name.
	Name() string
	// Evaluate returns the points earned by sub and a short reason.
	Evaluate(sub submission.Submission) (float64, string)
}

// LanguageBonus rewards language proficiency.
type LanguageBonus struct {
	IntermediatePoints   float64
	AdvancedPoints       float64
	IntermediateKeywords []string
	AdvancedKeywords     []string
}

func (b *LanguageBonus) Key() string  { return "language" }
func (b *LanguageBonus) Name() string { return "Language proficiency" }

func (b *LanguageBonus) Evaluate(sub submission.Submission) (float64, string) {
	lang := strings.ToLower(sub.Language)
	if kw, ok := containsAny(lang, b.IntermediateKeywords); ok {
		return b.IntermediatePoints, fmt.Sprintf("language level mentions %q", kw)
	}
	if kw, ok := containsAny(lang, b.AdvancedKeywords); ok {
		return b.AdvancedPoints, fmt.Sprintf("language level mentions %q", kw)
	}
	return 0, ""
}

// MentorBonus rewards projects accompanied by a mentor.
type MentorBonus struct {
	Points float64
}

func (b *MentorBonus) Key() string  { return "mentor" }
func (b *MentorBonus) Name() string { return "Mentor accompaniment" }

func (b *MentorBonus) Evaluate(sub submission.Submission) (float64, string) {
	if !sub.Mentor {
		return 0, ""
	}
	return b.Points, "project has an accompanying mentor"
}

func containsAny(s string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}
