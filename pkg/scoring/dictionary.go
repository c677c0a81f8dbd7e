package scoring

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrConfig is the sentinel wrapped by every ConfigError.
var ErrConfig = errors.New("invalid scoring configuration")

// ConfigError reports a malformed answer dictionary. Line is 0 when the
// problem is with the header.
type ConfigError struct {
	Line   int
	Column string
	Reason string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("dictionary line %d, column %q: %s", e.Line, e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("dictionary line %d: %s", e.Line, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("dictionary column %q: %s", e.Column, e.Reason)
	default:
		return "dictionary: " + e.Reason
	}
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// DictionaryRow is one row of the answer table.
type DictionaryRow struct {
	Question string
	Answer   string
	Segment  Segment
	Points   float64
}

// Entry is what an answer resolves to.
type Entry struct {
	Question string  `json:"question"`
	Segment  Segment `json:"segment"`
	Points   float64 `json:"points"`
}

// Dictionary maps an answer's exact text to the segment and points it earns.
// It is immutable once built.
type Dictionary struct {
	entries     map[string]Entry
	overwritten []string
}

// BuildDictionary indexes rows by answer text. When two rows share an answer
// the later row wins; the affected answers are reported by Overwritten.
func BuildDictionary(rows []DictionaryRow) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[string]Entry, len(rows))}
	for i, r := range rows {
		if r.Segment != SegmentEarly && r.Segment != SegmentMid && r.Segment != SegmentLate {
			return nil, &ConfigError{Line: i + 1, Column: "segment", Reason: fmt.Sprintf("unknown segment %q", r.Segment)}
		}
		if _, dup := d.entries[r.Answer]; dup {
			d.overwritten = append(d.overwritten, r.Answer)
		}
		d.entries[r.Answer] = Entry{Question: r.Question, Segment: r.Segment, Points: r.Points}
	}
	return d, nil
}

// Lookup resolves an answer.
func (d *Dictionary) Lookup(answer string) (Entry, bool) {
	e, ok := d.entries[answer]
	return e, ok
}

// Len returns the number of distinct answers.
func (d *Dictionary) Len() int { return len(d.entries) }

// Overwritten lists answers that appeared more than once, in the order the
// duplicates were seen.
func (d *Dictionary) Overwritten() []string {
	out := make([]string, len(d.overwritten))
	copy(out, d.overwritten)
	return out
}

// columnAliases maps accepted header names to the canonical column.
var columnAliases = map[string]string{
	"question":  "question",
	"pregunta":  "question",
	"answer":    "answer",
	"respuesta": "answer",
	"segment":   "segment",
	"segmento":  "segment",
	"points":    "points",
	"puntaje":   "points",
}

var requiredColumns = []string{"question", "answer", "segment", "points"}

// LoadDictionaryCSV reads an answer table with question, answer, segment and
// points columns (Spanish headers are accepted). Any malformed row rejects the
// whole table.
func LoadDictionaryCSV(r io.Reader) (*Dictionary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ConfigError{Reason: "empty table"}
	}
	if err != nil {
		return nil, csvError(err, 1)
	}

	idx := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		if canon, ok := columnAliases[h]; ok {
			if _, seen := idx[canon]; !seen {
				idx[canon] = i
			}
		}
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, &ConfigError{Column: c, Reason: "required column missing"}
		}
	}

	var rows []DictionaryRow
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, csvError(err, line)
		}
		field := func(c string) string {
			if i := idx[c]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}

		seg, ok := ParseSegment(field("segment"))
		if !ok {
			return nil, &ConfigError{Line: line, Column: "segment", Reason: fmt.Sprintf("unknown segment %q", field("segment"))}
		}
		pts, err := strconv.ParseFloat(field("points"), 64)
		if err != nil {
			return nil, &ConfigError{Line: line, Column: "points", Reason: fmt.Sprintf("invalid points %q", field("points"))}
		}
		rows = append(rows, DictionaryRow{
			Question: field("question"),
			Answer:   field("answer"),
			Segment:  seg,
			Points:   pts,
		})
	}

	return BuildDictionary(rows)
}

// csvError classifies a read failure. Syntax errors make the table
// malformed; anything else is an I/O failure of the underlying reader.
func csvError(err error, line int) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		if pe.Line > 0 {
			line = pe.Line
		}
		return &ConfigError{Line: line, Reason: pe.Err.Error()}
	}
	return fmt.Errorf("reading dictionary line %d: %w", line, err)
}
