// Package datetime provides date utility functions.
package datetime

import (
	"time"

	"github.com/hwen6/loan-ledger/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a date string in the standard config layout.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// FormatDate renders a date in the standard config layout.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// AddMonths advances a date by the given number of calendar months, keeping
// the day-of-month and clamping to the last day of shorter months, so
// January 31 plus one month is February 28 (or 29 in leap years). The clamp
// is not undone on later additions: iterating month by month from January 31
// lands on the 28th from February onward.
func AddMonths(date time.Time, months int) time.Time {
	day := date.Day()
	first := time.Date(date.Year(), date.Month()+time.Month(months), 1,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the whole number of days from the first date to the
// second; negative when the second date is earlier.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// SameYearMonth reports whether two dates fall in the same calendar month.
func SameYearMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// StartOfMonth returns the first day of the date's month.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
