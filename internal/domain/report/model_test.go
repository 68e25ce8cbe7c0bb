package report

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func TestParseRange(t *testing.T) {
	now := time.Date(2025, 3, 17, 15, 4, 0, 0, time.UTC)

	r, err := ParseRange("", "", now)
	if err != nil {
		t.Fatalf("ParseRange() error: %v", err)
	}
	if !r.End.Equal(day("2025-03-17")) || !r.Start.Equal(day("2024-10-01")) {
		t.Errorf("unexpected default range %v..%v", r.Start, r.End)
	}

	r, err = ParseRange("2025-01-01", "2025-01-31", now)
	if err != nil || !r.Start.Equal(day("2025-01-01")) || !r.End.Equal(day("2025-01-31")) {
		t.Errorf("unexpected explicit range %v..%v (%v)", r.Start, r.End, err)
	}

	bad := []struct{ start, end string }{
		{"01/01/2025", ""},
		{"", "tomorrow"},
		{"2025-02-01", "2025-01-01"},
		{"2015-01-01", "2025-01-01"},
	}
	for _, b := range bad {
		if _, err := ParseRange(b.start, b.end, now); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseRange(%q, %q): expected ErrValidation, got %v", b.start, b.end, err)
		}
	}
}

func TestByTypePercentages(t *testing.T) {
	got := byType([]Bucket{{"cleaning", 145}, {"checkup", 98}, {"filling", 67}, {"crown", 45}, {"root-canal", 32}, {"other", 25}})
	want := []int{35, 24, 16, 11, 8, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	total := 0
	for i, row := range got {
		if row.Percentage != want[i] {
			t.Errorf("%s: expected %d%%, got %d%%", row.Type, want[i], row.Percentage)
		}
		total += row.Count
	}
	if total != 412 {
		t.Errorf("expected counts to sum to 412, got %d", total)
	}
}

func TestPercentEmpty(t *testing.T) {
	if got := byStatus(nil); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
	if p := percent(0, 0); p != 0 {
		t.Errorf("expected 0, got %d", p)
	}
}

func TestWeekSeries(t *testing.T) {
	got := weekSeries(map[int]int{1: 18, 3: 25, 7: 2})
	if len(got) != 7 {
		t.Fatalf("expected 7 days, got %d", len(got))
	}
	if got[0].Day != "Mon" || got[0].Count != 18 {
		t.Errorf("unexpected Monday %+v", got[0])
	}
	if got[1].Count != 0 || got[2].Count != 25 || got[6].Day != "Sun" || got[6].Count != 2 {
		t.Errorf("unexpected series %+v", got)
	}
}

func TestGrowthSeries(t *testing.T) {
	r := Range{Start: day("2024-11-15"), End: day("2025-02-03")}
	got := growthSeries(r, 100, map[string]int{"2024-11": 5, "2025-01": 7})

	want := []GrowthPoint{
		{Month: "2024-11", Label: "Nov", NewPatients: 5, TotalPatients: 105},
		{Month: "2024-12", Label: "Dec", NewPatients: 0, TotalPatients: 105},
		{Month: "2025-01", Label: "Jan", NewPatients: 7, TotalPatients: 112},
		{Month: "2025-02", Label: "Feb", NewPatients: 0, TotalPatients: 112},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("month %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
