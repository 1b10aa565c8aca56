package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// MonthStart returns midnight on the first day of t's calendar month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths shifts a month start by n calendar months. Day-of-month overflow
// cannot occur because the input is normalised to the first.
func AddMonths(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, n, 0)
}

// PreviousMonth returns the start of the calendar month before t.
func PreviousMonth(t time.Time) time.Time {
	return AddMonths(t, -1)
}

// MonthKey identifies a calendar month as a single comparable integer.
func MonthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// SameMonth reports whether a and b fall in the same calendar month once a is
// viewed in b's location.
func SameMonth(a, b time.Time) bool {
	return MonthKey(a.In(b.Location())) == MonthKey(b)
}

// InMonth reports whether t falls inside the calendar month beginning at start.
func InMonth(t, start time.Time) bool {
	begin := MonthStart(start)
	end := begin.AddDate(0, 1, 0)
	t = t.In(begin.Location())
	return !t.Before(begin) && t.Before(end)
}

// layouts accepted by ParseDate, most specific first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the ISO date and timestamp shapes the backend emits.
// Date-only values are civil dates at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// FormatShortDate renders a civil date as month/day/year without padding (6/1/2024).
func FormatShortDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// DaysUntil counts whole calendar days from `from` to `to`, ignoring clock time.
// Negative when `to` is earlier.
func DaysUntil(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
