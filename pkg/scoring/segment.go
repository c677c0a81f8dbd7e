package scoring

import "strings"

// SegmentFor maps a declared readiness level to its segment. Bounds are
// inclusive and fractional levels between bands fall through to Unknown.
func SegmentFor(level float64) Segment {
	switch {
	case level >= 1 && level <= 3:
		return SegmentEarly
	case level >= 4 && level <= 7:
		return SegmentMid
	case level >= 8 && level <= 9:
		return SegmentLate
	default:
		return SegmentUnknown
	}
}

func normalizeLabel(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}
