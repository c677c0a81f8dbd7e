package scoring_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

func TestLoadDictionaryCSV(t *testing.T) {
	in := "pregunta,respuesta,segmento,puntaje\n" +
		"q1,Idea on paper,TRL 1-3,5\n" +
		"q2,Lab prototype,TRL 4-7,12.5\n" +
		"q3,\"Sold, in market\",TRL 8-9,20\n"

	d, err := scoring.LoadDictionaryCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadDictionaryCSV() error: %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}

	e, ok := d.Lookup("Lab prototype")
	if !ok {
		t.Fatal("expected Lab prototype to resolve")
	}
	if e.Segment != scoring.SegmentMid || e.Points != 12.5 || e.Question != "q2" {
		t.Errorf("unexpected entry %+v", e)
	}
	if _, ok := d.Lookup("Sold, in market"); !ok {
		t.Error("expected quoted answer to resolve")
	}
}

func TestLoadDictionaryCSVEnglishHeaders(t *testing.T) {
	in := "Question,Answer,Segment,Points\nq,a,TRL 1-3,1\n"
	d, err := scoring.LoadDictionaryCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadDictionaryCSV() error: %v", err)
	}
	if _, ok := d.Lookup("a"); !ok {
		t.Error("expected answer a to resolve")
	}
}

func TestLoadDictionaryCSVByteOrderMark(t *testing.T) {
	in := "\uFEFFquestion,answer,segment,points\nq,Pilot plant,TRL 8-9,7\n"
	d, err := scoring.LoadDictionaryCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadDictionaryCSV() error: %v", err)
	}
	e, ok := d.Lookup("Pilot plant")
	if !ok {
		t.Fatal("expected Pilot plant to resolve")
	}
	if e.Question != "q" || e.Points != 7 {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestLoadDictionaryCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		column string
	}{
		{"missing column", "question,answer,segment\nq,a,TRL 1-3\n", "points"},
		{"bad points", "question,answer,segment,points\nq,a,TRL 1-3,lots\n", "points"},
		{"bad segment", "question,answer,segment,points\nq,a,TRL 11,3\n", "segment"},
		{"empty", "", ""},
		{"unterminated quote", "question,answer,segment,points\nq1,\"unterminated,TRL 1-3,5\n", ""},
		{"bare quote", "question,answer,segment,points\nq1,ab\"c,TRL 1-3,5\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := scoring.LoadDictionaryCSV(strings.NewReader(tt.in))
			if d != nil {
				t.Error("expected no dictionary on error")
			}
			if !errors.Is(err, scoring.ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
			var ce *scoring.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if ce.Column != tt.column {
				t.Errorf("Column = %q, want %q", ce.Column, tt.column)
			}
		})
	}
}

func TestBuildDictionaryLastWriteWins(t *testing.T) {
	d, err := scoring.BuildDictionary([]scoring.DictionaryRow{
		{Question: "q1", Answer: "Yes", Segment: scoring.SegmentEarly, Points: 5},
		{Question: "q2", Answer: "Yes", Segment: scoring.SegmentLate, Points: 8},
	})
	if err != nil {
		t.Fatalf("BuildDictionary() error: %v", err)
	}

	e, _ := d.Lookup("Yes")
	if e.Segment != scoring.SegmentLate || e.Points != 8 {
		t.Errorf("expected the later row to win, got %+v", e)
	}
	if got := d.Overwritten(); len(got) != 1 || got[0] != "Yes" {
		t.Errorf("Overwritten() = %v, want [Yes]", got)
	}
}

func TestBuildDictionaryRejectsUnknownSegment(t *testing.T) {
	_, err := scoring.BuildDictionary([]scoring.DictionaryRow{
		{Answer: "x", Segment: scoring.SegmentUnknown, Points: 1},
	})
	if !errors.Is(err, scoring.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}
