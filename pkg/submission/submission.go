// Package submission turns raw questionnaire rows into typed project submissions.
// Every field is normalised once here so downstream scoring never has to guess
// at missing or malformed values.
package submission

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NotSpecified is the placeholder used for missing profile text fields.
const NotSpecified = "Not specified"

// FieldMap names the question identifiers that carry profile data. Profile
// answers are still looked up in the answer dictionary like any other field.
type FieldMap struct {
	Name     string `yaml:"name" json:"name"`
	Level    string `yaml:"level" json:"level"`
	Mentor   string `yaml:"mentor" json:"mentor"`
	Language string `yaml:"language" json:"language"`
	Location string `yaml:"location" json:"location"`
	Industry string `yaml:"industry" json:"industry"`
}

// DefaultFields returns the question identifiers used by the intake form.
func DefaultFields() FieldMap {
	return FieldMap{
		Name:     "1",
		Level:    "14",
		Mentor:   "15",
		Language: "17",
		Location: "30",
		Industry: "3",
	}
}

// Submission is one parsed questionnaire response.
type Submission struct {
	Index    int               `json:"index"`
	Name     string            `json:"name"`
	Level    float64           `json:"level"`
	Mentor   bool              `json:"mentor"`
	Language string            `json:"language"`
	Location string            `json:"location"`
	Industry string            `json:"industry"`
	Answers  map[string]string `json:"answers"`
}

// Parse builds a Submission from one raw row. Parse never fails: malformed
// values fall back to their defaults (0 for the level, NotSpecified for text).
func Parse(index int, raw map[string]string, fields FieldMap) Submission {
	s := Submission{
		Index:    index,
		Name:     strings.TrimSpace(raw[fields.Name]),
		Level:    ParseLevel(raw[fields.Level]),
		Mentor:   ParseMentor(raw[fields.Mentor]),
		Language: orNotSpecified(Capitalize(raw[fields.Language])),
		Location: orNotSpecified(Capitalize(raw[fields.Location])),
		Industry: orNotSpecified(strings.TrimSpace(raw[fields.Industry])),
		Answers:  make(map[string]string, len(raw)),
	}
	for k, v := range raw {
		s.Answers[k] = v
	}
	return s
}

// ParseAll parses rows in order; Index reflects each row's input position.
func ParseAll(rows []map[string]string, fields FieldMap) []Submission {
	out := make([]Submission, 0, len(rows))
	for i, raw := range rows {
		out = append(out, Parse(i, raw, fields))
	}
	return out
}

// ParseLevel coerces a readiness level, returning 0 for anything non-numeric.
func ParseLevel(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseMentor reports whether the answer is an affirmative yes.
func ParseMentor(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "si", "sí", "yes", "y", "true":
		return true
	}
	return false
}

// Capitalize upper-cases the first letter and lower-cases the rest, the way
// the form's free-text levels are compared.
func Capitalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "nan") {
		return ""
	}
	r := []rune(strings.ToLower(v))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func orNotSpecified(v string) string {
	if v == "" || strings.EqualFold(v, "nan") {
		return NotSpecified
	}
	return v
}
