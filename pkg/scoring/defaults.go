package scoring

// BonusesFor builds the standard bonus rules from w.
func BonusesFor(w Weights) []BonusRule {
	return []BonusRule{
		&LanguageBonus{
			IntermediatePoints:   w.IntermediateLanguageBonus,
			AdvancedPoints:       w.AdvancedLanguageBonus,
			IntermediateKeywords: w.IntermediateKeywords,
			AdvancedKeywords:     w.AdvancedKeywords,
		},
		&MentorBonus{
			Points: w.MentorBonus,
		},
	}
}
