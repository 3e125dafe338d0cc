package datefmt

import (
	"testing"
	"time"
)

func TestParseAndFormat(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	tests := []struct {
		in   string
		want string
	}{
		{"2025-06-01T09:30", "2025-06-01T09:30"},
		{"2025-06-01", "2025-06-01T00:00"},
		{"2025-06-01 18:05", "2025-06-01T18:05"},
		{"2025-06-01T00:00:00Z", "2025-06-01T05:30"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in, loc)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if s := Format(got, loc); s != tt.want {
			t.Errorf("Format(Parse(%q)) = %q, want %q", tt.in, s, tt.want)
		}
	}

	if _, err := Parse("next friday", loc); err == nil {
		t.Error("expected error for free text")
	}
}

func TestDaysBetween(t *testing.T) {
	loc := time.UTC
	a := time.Date(2025, 6, 1, 23, 0, 0, 0, loc)
	b := time.Date(2025, 6, 3, 1, 0, 0, 0, loc)
	if got := DaysBetween(a, b, loc); got != 2 {
		t.Errorf("DaysBetween = %d, want 2", got)
	}
}

func TestAddDaysAcrossMonth(t *testing.T) {
	start := time.Date(2025, 6, 29, 7, 15, 0, 0, time.UTC)
	got := AddDays(start, 3)
	if got.Format(Layout) != "2025-07-02T07:15" {
		t.Errorf("AddDays = %s", got.Format(Layout))
	}
}

func TestExpand(t *testing.T) {
	ts := time.Date(2025, 3, 7, 8, 9, 0, 0, time.UTC)
	if got := Expand("uploads/{Y}/{m}/{d}-{H}{i}", ts); got != "uploads/2025/03/07-0809" {
		t.Errorf("Expand = %q", got)
	}
}
