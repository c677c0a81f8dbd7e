package scoring

import (
	"errors"
	"sort"
	"strings"

	"github.com/aresleonardo123/dashboard-trl/pkg/submission"
)

// ErrNilDictionary is returned when an engine is built without a dictionary.
var ErrNilDictionary = errors.New("answer dictionary is nil")

// Engine scores submissions against an answer dictionary and a set of bonus rules.
type Engine struct {
	dict      *Dictionary
	threshold float64
	bonuses   []BonusRule
}

// NewEngine creates a scoring engine. The approval threshold is taken from w;
// bonuses are applied in the given order.
func NewEngine(dict *Dictionary, w Weights, bonuses ...BonusRule) (*Engine, error) {
	if dict == nil {
		return nil, ErrNilDictionary
	}
	return &Engine{dict: dict, threshold: w.ApprovalThreshold, bonuses: bonuses}, nil
}

// Threshold returns the approval threshold in use.
func (e *Engine) Threshold() float64 { return e.threshold }

// Score evaluates one submission. Answers missing from the dictionary are
// skipped; each match adds its points to the matched entry's segment, which
// need not be the submission's own.
func (e *Engine) Score(sub submission.Submission) Scored {
	result := Scored{
		Submission: sub,
		Segment:    SegmentFor(sub.Level),
	}

	fields := make([]string, 0, len(sub.Answers))
	for f := range sub.Answers {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		answer := strings.TrimSpace(sub.Answers[f])
		if answer == "" {
			continue
		}
		entry, ok := e.dict.Lookup(answer)
		if !ok {
			continue
		}
		result.Scores.add(entry.Segment, entry.Points)
		result.Matches = append(result.Matches, Match{
			Field:   f,
			Answer:  answer,
			Segment: entry.Segment,
			Points:  entry.Points,
		})
	}

	for _, b := range e.bonuses {
		pts, reason := b.Evaluate(sub)
		if pts == 0 {
			continue
		}
		result.Scores.addAll(pts)
		result.Bonuses = append(result.Bonuses, BonusResult{
			Key:    b.Key(),
			Name:   b.Name(),
			Points: pts,
			Reason: reason,
		})
	}

	result.Approved = e.Approve(result.Scores)
	return result
}

// ScoreAll scores every submission, preserving input order.
func (e *Engine) ScoreAll(subs []submission.Submission) []Scored {
	out := make([]Scored, 0, len(subs))
	for _, s := range subs {
		out = append(out, e.Score(s))
	}
	return out
}

// Approve reports whether any segment score reaches the threshold.
func (e *Engine) Approve(s ScoreSet) bool {
	return Approved(s, e.threshold)
}

// Approved reports whether the best segment score reaches threshold.
func Approved(s ScoreSet, threshold float64) bool {
	return s.Max() >= threshold
}
