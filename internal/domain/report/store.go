package report

import "context"

// Store runs the aggregate queries behind the overview.
type Store interface {
	AppointmentsByType(ctx context.Context, r Range) ([]Bucket, error)
	AppointmentsByStatus(ctx context.Context, r Range) ([]Bucket, error)
	// AppointmentsByWeekday counts non-cancelled appointments per ISO weekday.
	AppointmentsByWeekday(ctx context.Context, r Range) (map[int]int, error)
	// PatientSignups returns the count registered before r.Start and the
	// per-month counts inside r.
	PatientSignups(ctx context.Context, r Range) (int, map[string]int, error)
	Totals(ctx context.Context, r Range) (Totals, error)
}
