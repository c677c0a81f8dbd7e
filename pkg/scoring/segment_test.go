package scoring_test

import (
	"testing"

	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

func TestSegmentFor(t *testing.T) {
	tests := []struct {
		level float64
		want  scoring.Segment
	}{
		{0, scoring.SegmentUnknown},
		{1, scoring.SegmentEarly},
		{3, scoring.SegmentEarly},
		{3.5, scoring.SegmentUnknown},
		{4, scoring.SegmentMid},
		{7, scoring.SegmentMid},
		{7.5, scoring.SegmentUnknown},
		{8, scoring.SegmentLate},
		{9, scoring.SegmentLate},
		{10, scoring.SegmentUnknown},
		{-1, scoring.SegmentUnknown},
	}
	for _, tt := range tests {
		if got := scoring.SegmentFor(tt.level); got != tt.want {
			t.Errorf("SegmentFor(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseSegment(t *testing.T) {
	tests := []struct {
		in   string
		want scoring.Segment
		ok   bool
	}{
		{"TRL 1-3", scoring.SegmentEarly, true},
		{"trl4-7", scoring.SegmentMid, true},
		{" TRL 8-9 ", scoring.SegmentLate, true},
		{"TRL 10", "", false},
		{"Unknown", "", false},
	}
	for _, tt := range tests {
		got, ok := scoring.ParseSegment(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseSegment(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScoreSetTotalAndMax(t *testing.T) {
	s := scoring.ScoreSet{Early: 12.5, Mid: 30, Late: 7.5}
	if s.Total() != 50 {
		t.Errorf("Total() = %v, want 50", s.Total())
	}
	if s.Max() != 30 {
		t.Errorf("Max() = %v, want 30", s.Max())
	}
	if s.Get(scoring.SegmentUnknown) != 0 {
		t.Errorf("Get(Unknown) = %v, want 0", s.Get(scoring.SegmentUnknown))
	}
}
