package batchgen

import (
	"testing"
	"time"

	"github.com/tripdesk/crm-admin/internal/pkg/datefmt"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := datefmt.Parse(s, ist)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestFridaysInJune(t *testing.T) {
	p := Params{
		TripStart: mustParse(t, "2025-06-01"),
		TripEnd:   mustParse(t, "2025-06-03"),
		Weekdays:  []int{5},
		Months:    []int{5},
		Location:  ist,
	}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	batches := Generate(p)

	want := []string{"2025-06-06T00:00", "2025-06-13T00:00", "2025-06-20T00:00", "2025-06-27T00:00"}
	if len(batches) != len(want) {
		t.Fatalf("got %d batches, want %d: %+v", len(batches), len(want), batches)
	}
	seen := map[string]bool{}
	for i, b := range batches {
		if b.StartDate != want[i] {
			t.Errorf("batch %d start = %s, want %s", i, b.StartDate, want[i])
		}
		start := mustParse(t, b.StartDate)
		end := mustParse(t, b.EndDate)
		if start.Weekday() != time.Friday || start.Month() != time.June || start.Year() != 2025 {
			t.Errorf("batch %d starts on %v", i, start)
		}
		if !end.Equal(datefmt.AddDays(start, 2)) {
			t.Errorf("batch %d end = %s, want start + 2 days", i, b.EndDate)
		}
		if b.ExtraAmount != 0 || b.ExtraAmountReason != "" || b.SoldOut {
			t.Errorf("batch %d defaults = %+v", i, b)
		}
		if b.ID == "" || seen[b.ID] {
			t.Errorf("batch %d id %q missing or duplicated", i, b.ID)
		}
		seen[b.ID] = true
	}
}

func TestGenerateKeepsTripStartTime(t *testing.T) {
	p := Params{
		TripStart: mustParse(t, "2025-06-30T06:45"),
		TripEnd:   mustParse(t, "2025-07-04T20:00"),
		MonthDays: []int{1, 15},
		Months:    []int{6, 7},
		Location:  ist,
	}
	batches := Generate(p)
	want := [][2]string{
		{"2025-07-01T06:45", "2025-07-05T06:45"},
		{"2025-07-15T06:45", "2025-07-19T06:45"},
		{"2025-08-01T06:45", "2025-08-05T06:45"},
		{"2025-08-15T06:45", "2025-08-19T06:45"},
	}
	if len(batches) != len(want) {
		t.Fatalf("got %+v", batches)
	}
	for i, w := range want {
		if batches[i].StartDate != w[0] || batches[i].EndDate != w[1] {
			t.Errorf("batch %d = %s..%s, want %s..%s", i, batches[i].StartDate, batches[i].EndDate, w[0], w[1])
		}
	}
}

func TestGenerateWithoutMonthsScansStartMonth(t *testing.T) {
	p := Params{
		TripStart: mustParse(t, "2025-02-10"),
		TripEnd:   mustParse(t, "2025-02-10"),
		Location:  ist,
	}
	batches := Generate(p)
	if len(batches) != 28 {
		t.Fatalf("got %d batches, want every day of February 2025", len(batches))
	}
	if batches[0].StartDate != "2025-02-01T00:00" || batches[0].EndDate != batches[0].StartDate {
		t.Errorf("first batch = %+v", batches[0])
	}
}

func TestGenerateNoMatches(t *testing.T) {
	p := Params{
		TripStart: mustParse(t, "2025-02-01"),
		TripEnd:   mustParse(t, "2025-02-02"),
		MonthDays: []int{30},
		Months:    []int{1},
		Location:  ist,
	}
	if got := Generate(p); got == nil || len(got) != 0 {
		t.Errorf("Generate = %#v, want empty non-nil slice", got)
	}
}

func TestValidate(t *testing.T) {
	start := mustParse(t, "2025-06-01")
	end := mustParse(t, "2025-06-03")
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"valid", Params{TripStart: start, TripEnd: end}, true},
		{"reversed", Params{TripStart: end, TripEnd: start}, false},
		{"missing", Params{TripStart: start}, false},
		{"weekday 7", Params{TripStart: start, TripEnd: end, Weekdays: []int{7}}, false},
		{"day 0", Params{TripStart: start, TripEnd: end, MonthDays: []int{0}}, false},
		{"month 12", Params{TripStart: start, TripEnd: end, Months: []int{12}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.p.Location = ist
			if err := tt.p.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, ok %v", err, tt.ok)
			}
		})
	}
}
