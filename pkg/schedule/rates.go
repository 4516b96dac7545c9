package schedule

import (
	"sort"
	"time"
)

// RateTimeline resolves the annual rate in effect on any date from a
// piecewise-constant set of changes. It is read-only once built.
type RateTimeline struct {
	initial float64
	changes []RateChange
}

// NewRateTimeline builds a timeline from an initial rate and a set of
// changes. Changes are ordered by date; when two changes collapse to the
// same date the later-inserted one wins.
func NewRateTimeline(initialRate float64, changes []RateChange) RateTimeline {
	sorted := make([]RateChange, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	deduped := sorted[:0]
	for _, change := range sorted {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(change.Date) {
			deduped[n-1] = change
			continue
		}
		deduped = append(deduped, change)
	}

	return RateTimeline{initial: initialRate, changes: deduped}
}

// EffectiveRate returns the annual rate in effect on the given date: the
// rate of the latest change dated on or before it, or the initial rate when
// no change qualifies. Comparison is at full day granularity.
func (t RateTimeline) EffectiveRate(date time.Time) float64 {
	rate := t.initial
	for _, change := range t.changes {
		if change.Date.After(date) {
			break
		}
		rate = change.AnnualRate
	}
	return rate
}

// Changes returns a copy of the ordered change set.
func (t RateTimeline) Changes() []RateChange {
	out := make([]RateChange, len(t.changes))
	copy(out, t.changes)
	return out
}
