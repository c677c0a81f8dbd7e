package scoring

// Weights holds the tunable constants of the scoring rules.
type Weights struct {
	ApprovalThreshold float64 `yaml:"approval_threshold" json:"approval_threshold"`

	// Language bonus: the intermediate keywords are checked first.
	IntermediateLanguageBonus float64  `yaml:"intermediate_language_bonus" json:"intermediate_language_bonus"`
	AdvancedLanguageBonus     float64  `yaml:"advanced_language_bonus" json:"advanced_language_bonus"`
	IntermediateKeywords      []string `yaml:"intermediate_keywords" json:"intermediate_keywords"`
	AdvancedKeywords          []string `yaml:"advanced_keywords" json:"advanced_keywords"`

	MentorBonus float64 `yaml:"mentor_bonus" json:"mentor_bonus"`
}

// Defaults returns the default scoring weights.
func Defaults() Weights {
	return Weights{
		ApprovalThreshold: 50,

		IntermediateLanguageBonus: 2,
		AdvancedLanguageBonus:     4,
		IntermediateKeywords:      []string{"intermediate", "intermedio"},
		AdvancedKeywords:          []string{"advanced", "avanzado"},

		MentorBonus: 10,
	}
}
