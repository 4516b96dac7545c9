// Package rates ships the published housing-fund benchmark rate table and
// derives loan rate timelines from it.
package rates

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hwen6/loan-ledger/pkg/schedule"
)

// ErrUnknownBasis indicates a rate adjustment basis outside the two
// supported variants.
var ErrUnknownBasis = errors.New("unknown rate adjustment basis")

// AdjustmentBasis selects the day a published rate change takes effect on a
// running loan.
type AdjustmentBasis string

const (
	// BasisJanuaryFirst applies a published change on the first January 1
	// strictly after it.
	BasisJanuaryFirst AdjustmentBasis = "januaryFirst"

	// BasisAnniversary applies a published change on the first loan
	// anniversary strictly after it.
	BasisAnniversary AdjustmentBasis = "anniversary"
)

// ParseBasis resolves a basis tag, case-insensitively, to one of the
// supported variants. An empty tag defaults to BasisJanuaryFirst.
func ParseBasis(value string) (AdjustmentBasis, error) {
	switch {
	case value == "":
		return BasisJanuaryFirst, nil
	case strings.EqualFold(value, string(BasisJanuaryFirst)):
		return BasisJanuaryFirst, nil
	case strings.EqualFold(value, string(BasisAnniversary)):
		return BasisAnniversary, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBasis, value)
	}
}

// TableEntry is one published adjustment of the benchmark rates. Rates are
// annual percents; a zero value means the bucket was not published at that
// date.
type TableEntry struct {
	Date               time.Time
	UpToFiveFirstHome  float64
	OverFiveFirstHome  float64
	UpToFiveSecondHome float64
	OverFiveSecondHome float64
}

// ShortTermYears is the boundary between the short- and long-term rate
// buckets, inclusive on the short side.
const ShortTermYears = 5

var nationalTable = []TableEntry{
	{Date: time.Date(2015, time.March, 1, 0, 0, 0, 0, time.UTC), UpToFiveFirstHome: 3.50, OverFiveFirstHome: 4.00},
	{Date: time.Date(2015, time.October, 24, 0, 0, 0, 0, time.UTC), UpToFiveFirstHome: 2.75, OverFiveFirstHome: 3.25},
	{Date: time.Date(2022, time.October, 1, 0, 0, 0, 0, time.UTC), UpToFiveFirstHome: 2.60, OverFiveFirstHome: 3.10, UpToFiveSecondHome: 3.025, OverFiveSecondHome: 3.575},
	{Date: time.Date(2024, time.May, 18, 0, 0, 0, 0, time.UTC), UpToFiveFirstHome: 2.35, OverFiveFirstHome: 2.85, UpToFiveSecondHome: 2.775, OverFiveSecondHome: 3.325},
	{Date: time.Date(2025, time.May, 7, 0, 0, 0, 0, time.UTC), UpToFiveFirstHome: 2.10, OverFiveFirstHome: 2.60, UpToFiveSecondHome: 2.525, OverFiveSecondHome: 3.075},
}

// NationalTable returns a copy of the published benchmark rate table.
func NationalTable() []TableEntry {
	out := make([]TableEntry, len(nationalTable))
	copy(out, nationalTable)
	return out
}

// ChangesFor picks the published column matching a loan profile, skipping
// entries where that bucket was not published.
func ChangesFor(table []TableEntry, firstHome bool, termYears int) []schedule.RateChange {
	changes := make([]schedule.RateChange, 0, len(table))
	for _, entry := range table {
		var rate float64
		if firstHome {
			if termYears <= ShortTermYears {
				rate = entry.UpToFiveFirstHome
			} else {
				rate = entry.OverFiveFirstHome
			}
		} else {
			if termYears <= ShortTermYears {
				rate = entry.UpToFiveSecondHome
			} else {
				rate = entry.OverFiveSecondHome
			}
		}
		if rate == 0 {
			continue
		}
		changes = append(changes, schedule.RateChange{Date: entry.Date, AnnualRate: rate})
	}
	return changes
}

// AlignChanges maps each published change to the date it takes effect on a
// running loan under the given basis, dropping changes whose effective date
// is not strictly after the first payment date. When two changes collapse to
// the same effective date the later published one wins.
func AlignChanges(changes []schedule.RateChange, basis AdjustmentBasis, firstPaymentDate time.Time) ([]schedule.RateChange, error) {
	sorted := make([]schedule.RateChange, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	aligned := make([]schedule.RateChange, 0, len(sorted))
	for _, change := range sorted {
		var effective time.Time
		switch basis {
		case BasisJanuaryFirst:
			for year := change.Date.Year(); ; year++ {
				candidate := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
				if candidate.After(change.Date) {
					effective = candidate
					break
				}
			}
		case BasisAnniversary:
			for year := firstPaymentDate.Year(); ; year++ {
				candidate := anniversaryDate(year, firstPaymentDate.Month(), firstPaymentDate.Day())
				if candidate.After(change.Date) {
					effective = candidate
					break
				}
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownBasis, basis)
		}

		if !effective.After(firstPaymentDate) {
			continue
		}
		if n := len(aligned); n > 0 && aligned[n-1].Date.Equal(effective) {
			aligned[n-1].AnnualRate = change.AnnualRate
			continue
		}
		aligned = append(aligned, schedule.RateChange{Date: effective, AnnualRate: change.AnnualRate})
	}
	return aligned, nil
}

// TimelineFor resolves the published table into the rate changes a loan
// profile would see, aligned to the adjustment basis.
func TimelineFor(firstHome bool, termYears int, basis AdjustmentBasis, firstPaymentDate time.Time) ([]schedule.RateChange, error) {
	return AlignChanges(ChangesFor(NationalTable(), firstHome, termYears), basis, firstPaymentDate)
}

// anniversaryDate pins the loan anniversary within a year, falling back to
// day 28 when the literal day does not exist in that month.
func anniversaryDate(year int, month time.Month, day int) time.Time {
	candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if candidate.Month() != month {
		candidate = time.Date(year, month, 28, 0, 0, 0, 0, time.UTC)
	}
	return candidate
}
