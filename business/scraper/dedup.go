package scraper

import (
	"fmt"
	"lottoLens/domain"
	"time"
)

// compositeKey is the sole identity of a stored draw: draw date plus
// the optional draw number, empty string when absent. Date-only
// matching is not sufficient; games with multiple draws per day
// collapse into one record and inflate later runs with duplicates.
func compositeKey(drawDate time.Time, drawNumber *string) string {
	n := ""
	if drawNumber != nil {
		n = *drawNumber
	}
	return fmt.Sprintf("%s|%s", drawDate.Format("2006-01-02"), n)
}

// filterNew returns the subset of parsed records whose composite key
// does not already exist in the persisted set. Duplicates within the
// parsed batch itself also collapse to their first occurrence. The
// key set is built once, so the filter is O(existing + parsed).
func filterNew(existing, parsed []domain.DrawRecord) []domain.DrawRecord {
	seen := make(map[string]bool, len(existing)+len(parsed))
	for _, rec := range existing {
		seen[compositeKey(rec.DrawDate, rec.DrawNumber)] = true
	}

	out := make([]domain.DrawRecord, 0, len(parsed))
	for _, rec := range parsed {
		key := compositeKey(rec.DrawDate, rec.DrawNumber)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}

	return out
}
