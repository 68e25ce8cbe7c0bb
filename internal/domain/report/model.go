package report

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// maxSpan bounds a report range so the monthly series stays small.
const maxSpan = 3 * 366 * 24 * time.Hour

var ErrValidation = errors.New("validation failed")

// Range is an inclusive calendar-date window.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange reads YYYY-MM-DD bounds. A missing end defaults to today and a
// missing start to the first day of the month five months before end.
func ParseRange(start, end string, now time.Time) (Range, error) {
	var r Range
	var err error
	if end == "" {
		y, m, d := now.UTC().Date()
		r.End = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	} else if r.End, err = time.Parse(dateLayout, end); err != nil {
		return r, fmt.Errorf("%w: end must be YYYY-MM-DD", ErrValidation)
	}
	if start == "" {
		r.Start = time.Date(r.End.Year(), r.End.Month()-5, 1, 0, 0, 0, 0, time.UTC)
	} else if r.Start, err = time.Parse(dateLayout, start); err != nil {
		return r, fmt.Errorf("%w: start must be YYYY-MM-DD", ErrValidation)
	}
	if r.End.Before(r.Start) {
		return r, fmt.Errorf("%w: end is before start", ErrValidation)
	}
	if r.End.Sub(r.Start) > maxSpan {
		return r, fmt.Errorf("%w: range too large", ErrValidation)
	}
	return r, nil
}

// Bucket is one GROUP BY row.
type Bucket struct {
	Key   string
	Count int
}

type TypeCount struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type StatusCount struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type GrowthPoint struct {
	Month         string `json:"month"`
	Label         string `json:"label"`
	NewPatients   int    `json:"newPatients"`
	TotalPatients int    `json:"totalPatients"`
}

type Totals struct {
	Appointments          int `json:"appointments"`
	CancelledAppointments int `json:"cancelledAppointments"`
	Patients              int `json:"patients"`
	ActivePatients        int `json:"activePatients"`
	ActiveDentists        int `json:"activeDentists"`
}

type Overview struct {
	Start              string        `json:"start"`
	End                string        `json:"end"`
	AppointmentsByType []TypeCount   `json:"appointmentsByType"`
	AppointmentStatus  []StatusCount `json:"appointmentStatus"`
	WeeklyAppointments []DayCount    `json:"weeklyAppointments"`
	PatientGrowth      []GrowthPoint `json:"patientGrowth"`
	Totals             Totals        `json:"totals"`
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}

func sum(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	return n
}

func byType(buckets []Bucket) []TypeCount {
	total := sum(buckets)
	out := make([]TypeCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TypeCount{Type: b.Key, Count: b.Count, Percentage: percent(b.Count, total)})
	}
	return out
}

func byStatus(buckets []Bucket) []StatusCount {
	total := sum(buckets)
	out := make([]StatusCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, StatusCount{Status: b.Key, Count: b.Count, Percentage: percent(b.Count, total)})
	}
	return out
}

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weekSeries zero-fills ISO weekday counts (1 = Monday).
func weekSeries(counts map[int]int) []DayCount {
	out := make([]DayCount, 0, len(weekdays))
	for i, day := range weekdays {
		out = append(out, DayCount{Day: day, Count: counts[i+1]})
	}
	return out
}

// growthSeries walks every month touched by r. monthly is keyed YYYY-MM and
// baseline counts patients registered before r.Start.
func growthSeries(r Range, baseline int, monthly map[string]int) []GrowthPoint {
	var out []GrowthPoint
	total := baseline
	last := time.Date(r.End.Year(), r.End.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		total += monthly[key]
		out = append(out, GrowthPoint{
			Month:         key,
			Label:         m.Format("Jan"),
			NewPatients:   monthly[key],
			TotalPatients: total,
		})
	}
	return out
}
