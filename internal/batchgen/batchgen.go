// Package batchgen expands a weekday / day-of-month / month pattern into
// itinerary departures.
package batchgen

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jinzhu/now"
	"github.com/tripdesk/crm-admin/internal/models"
	"github.com/tripdesk/crm-admin/internal/pkg/datefmt"
	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
)

// ErrTripRange is returned when the trip ends before it starts.
var ErrTripRange = errors.New("trip end is before trip start")

// Params selects the departures to generate. Weekdays use 0 for Sunday,
// MonthDays are 1-31 and Months are 0 (January) to 11. An empty filter
// matches every day.
type Params struct {
	TripStart time.Time
	TripEnd   time.Time
	Weekdays  []int
	MonthDays []int
	Months    []int
	Location  *time.Location
}

// Validate rejects reversed trips and out-of-range filter values.
func (p Params) Validate() error {
	if p.TripStart.IsZero() || p.TripEnd.IsZero() {
		return errors.New("trip start and end are required")
	}
	if datefmt.DaysBetween(p.TripStart, p.TripEnd, p.loc()) < 0 {
		return ErrTripRange
	}
	for _, w := range p.Weekdays {
		if w < 0 || w > 6 {
			return fmt.Errorf("weekday %d out of range 0-6", w)
		}
	}
	for _, d := range p.MonthDays {
		if d < 1 || d > 31 {
			return fmt.Errorf("day of month %d out of range 1-31", d)
		}
	}
	for _, m := range p.Months {
		if m < 0 || m > 11 {
			return fmt.Errorf("month %d out of range 0-11", m)
		}
	}
	return nil
}

func (p Params) loc() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.Local
}

// Duration is the inclusive trip length in days.
func (p Params) Duration() int {
	return datefmt.DaysBetween(p.TripStart, p.TripEnd, p.loc()) + 1
}

// Generate returns one batch per matching calendar day between the first
// selected month and the last selected month of the trip start's year.
// Without a month filter only the trip start's month is scanned.
func Generate(p Params) []models.Batch {
	loc := p.loc()
	start := p.TripStart.In(loc)
	duration := p.Duration()
	if duration < 1 {
		duration = 1
	}

	first, last := window(start, p.Months, loc)
	out := []models.Batch{}
	for d := first; !d.After(last); d = time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc) {
		if !matches(p.Weekdays, int(d.Weekday())) || !matches(p.MonthDays, d.Day()) || !matches(p.Months, int(d.Month())-1) {
			continue
		}
		batchStart := time.Date(d.Year(), d.Month(), d.Day(), start.Hour(), start.Minute(), 0, 0, loc)
		out = append(out, models.Batch{
			ID:        idgen.New(),
			StartDate: datefmt.Format(batchStart, loc),
			EndDate:   datefmt.Format(datefmt.AddDays(batchStart, duration-1), loc),
		})
	}
	return out
}

func window(start time.Time, months []int, loc *time.Location) (time.Time, time.Time) {
	minM, maxM := int(start.Month())-1, int(start.Month())-1
	if len(months) > 0 {
		minM, maxM = slices.Min(months), slices.Max(months)
	}
	year := start.Year()
	first := now.With(time.Date(year, time.Month(minM+1), 1, 0, 0, 0, 0, loc)).BeginningOfMonth()
	last := now.With(time.Date(year, time.Month(maxM+1), 1, 0, 0, 0, 0, loc)).EndOfMonth()
	return first, last
}

func matches(set []int, v int) bool {
	return len(set) == 0 || slices.Contains(set, v)
}
