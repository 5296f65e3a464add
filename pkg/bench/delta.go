package bench

import "fmt"

// SizeDelta returns the percentage size change of candidate relative to
// baseline. A missing or zero baseline yields ok=false.
func SizeDelta(baseline, candidate int64) (float64, bool) {
	if baseline <= 0 {
		return 0, false
	}
	return float64(candidate-baseline) / float64(baseline) * 100, true
}

// MetricDelta returns the absolute change of candidate relative to
// baseline. A non-positive baseline yields ok=false since a zero metric
// means measurement failed.
func MetricDelta(baseline, candidate float64) (float64, bool) {
	if baseline <= 0 {
		return 0, false
	}
	return candidate - baseline, true
}

// FormatDelta renders a delta with an explicit sign, or "N/A" when the
// baseline was unusable.
func FormatDelta(v float64, ok bool, format string) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf(format, v)
}
