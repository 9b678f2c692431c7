package temporal

import "time"

// Filter returns the records whose projected date falls within rng, plus a
// count of records excluded because their date could not be determined
// (a zero time). Bad dates never abort the pass: callers render partial
// results and surface the count.
//
// The projection is supplied by the caller since different records key off
// different fields (activity date, report submission date, member join date).
func Filter[T any](records []T, rng Range, dateOf func(T) time.Time) ([]T, int) {
	if rng.Unbounded {
		return records, 0
	}

	var invalid int
	kept := make([]T, 0, len(records))
	for _, rec := range records {
		d := dateOf(rec)
		if d.IsZero() {
			invalid++
			continue
		}
		if rng.Contains(d) {
			kept = append(kept, rec)
		}
	}
	return kept, invalid
}
