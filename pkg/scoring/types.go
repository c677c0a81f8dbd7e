// Package scoring implements the technology-readiness scoring engine.
// It maps questionnaire answers to readiness segments, accumulates points
// per segment and decides whether a project clears the approval bar.
package scoring

import "github.com/aresleonardo123/dashboard-trl/pkg/submission"

// Segment is a technology-readiness band.
type Segment string

const (
	SegmentEarly   Segment = "TRL 1-3"
	SegmentMid     Segment = "TRL 4-7"
	SegmentLate    Segment = "TRL 8-9"
	SegmentUnknown Segment = "Unknown"
)

// Segments lists the scored segments in display order. Unknown is never scored.
var Segments = []Segment{SegmentEarly, SegmentMid, SegmentLate}

// ParseSegment accepts the canonical labels, case-insensitively and with or
// without the space after "TRL".
func ParseSegment(s string) (Segment, bool) {
	switch normalizeLabel(s) {
	case "trl1-3":
		return SegmentEarly, true
	case "trl4-7":
		return SegmentMid, true
	case "trl8-9":
		return SegmentLate, true
	}
	return "", false
}

// ScoreSet holds the accumulated points for each scored segment.
type ScoreSet struct {
	Early float64 `json:"trl_1_3"`
	Mid   float64 `json:"trl_4_7"`
	Late  float64 `json:"trl_8_9"`
}

// Get returns the score for seg; Unknown always reads as 0.
func (s ScoreSet) Get(seg Segment) float64 {
	switch seg {
	case SegmentEarly:
		return s.Early
	case SegmentMid:
		return s.Mid
	case SegmentLate:
		return s.Late
	}
	return 0
}

func (s *ScoreSet) add(seg Segment, points float64) {
	switch seg {
	case SegmentEarly:
		s.Early += points
	case SegmentMid:
		s.Mid += points
	case SegmentLate:
		s.Late += points
	}
}

// addAll applies points uniformly to every scored segment.
func (s *ScoreSet) addAll(points float64) {
	s.Early += points
	s.Mid += points
	s.Late += points
}

// Total is the exact sum of the three segment scores.
func (s ScoreSet) Total() float64 {
	return s.Early + s.Mid + s.Late
}

// Max returns the highest segment score.
func (s ScoreSet) Max() float64 {
	m := s.Early
	if s.Mid > m {
		m = s.Mid
	}
	if s.Late > m {
		m = s.Late
	}
	return m
}

// BonusResult records the contribution of one bonus rule.
type BonusResult struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Reason string  `json:"reason,omitempty"`
}

// Scored is the outcome of scoring one submission. It is a fresh value; the
// input submission is never modified.
type Scored struct {
	Submission submission.Submission `json:"submission"`
	Segment    Segment               `json:"segment"`
	Scores     ScoreSet              `json:"scores"`
	Bonuses    []BonusResult         `json:"bonuses,omitempty"`
	Matches    []Match               `json:"matches,omitempty"`
	Approved   bool                  `json:"approved"`
}

// Total is shorthand for Scores.Total().
func (s Scored) Total() float64 { return s.Scores.Total() }

// Match is a single answer that was found in the dictionary.
type Match struct {
	Field   string  `json:"field"`
	Answer  string  `json:"answer"`
	Segment Segment `json:"segment"`
	Points  float64 `json:"points"`
}
