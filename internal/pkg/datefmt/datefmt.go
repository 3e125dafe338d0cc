// Package datefmt handles the minute-granularity local datetime strings used by
// batch and ledger records ("2006-01-02T15:04").
package datefmt

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Layout is the local datetime layout stored on records.
	Layout = "2006-01-02T15:04"
	// DateLayout is the calendar-date layout.
	DateLayout = "2006-01-02"
)

// Format renders t in loc at minute granularity.
func Format(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(Layout)
}

// Parse reads a local datetime, a plain date, or an RFC3339 timestamp.
// Local forms are interpreted in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	for _, layout := range []string{Layout, "2006-01-02T15:04:05", "2006-01-02 15:04", DateLayout} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}

// AddDays moves t by n calendar days keeping the wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b in loc.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	a, b = a.In(loc), b.In(loc)
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Expand substitutes {Y} {y} {m} {d} {H} {i} with fields of t.
func Expand(pattern string, t time.Time) string {
	return strings.NewReplacer(
		"{Y}", t.Format("2006"),
		"{y}", t.Format("06"),
		"{m}", t.Format("01"),
		"{d}", t.Format("02"),
		"{H}", t.Format("15"),
		"{i}", t.Format("04"),
	).Replace(pattern)
}
