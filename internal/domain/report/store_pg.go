package report

import (
	"context"
	"fmt"

	"github.com/dentaldesk/dentaldesk/internal/platform/db"
)

type storePG struct{ pool db.DB }

func NewStorePG(pool db.DB) Store { return &storePG{pool: pool} }

const inRange = `date BETWEEN $1::date AND $2::date`

func bounds(r Range) []interface{} {
	return []interface{}{r.Start.Format(dateLayout), r.End.Format(dateLayout)}
}

func (s *storePG) buckets(ctx context.Context, column string, r Range) ([]Bucket, error) {
	rows, err := db.Conn(ctx, s.pool).Query(ctx, `
		SELECT `+column+`, COUNT(*) FROM appointments
		WHERE `+inRange+`
		GROUP BY `+column+`
		ORDER BY COUNT(*) DESC, `+column, bounds(r)...)
	if err != nil {
		return nil, fmt.Errorf("appointments by %s: %w", column, err)
	}
	defer rows.Close()

	out := []Bucket{}
	for rows.Next() {
		var b Bucket
		if err := rows.Scan(&b.Key, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *storePG) AppointmentsByType(ctx context.Context, r Range) ([]Bucket, error) {
	return s.buckets(ctx, "type", r)
}

func (s *storePG) AppointmentsByStatus(ctx context.Context, r Range) ([]Bucket, error) {
	return s.buckets(ctx, "status", r)
}

func (s *storePG) AppointmentsByWeekday(ctx context.Context, r Range) (map[int]int, error) {
	rows, err := db.Conn(ctx, s.pool).Query(ctx, `
		SELECT EXTRACT(ISODOW FROM date)::int, COUNT(*) FROM appointments
		WHERE `+inRange+` AND status <> 'cancelled'
		GROUP BY 1`, bounds(r)...)
	if err != nil {
		return nil, fmt.Errorf("appointments by weekday: %w", err)
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var day, n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		out[day] = n
	}
	return out, rows.Err()
}

func (s *storePG) PatientSignups(ctx context.Context, r Range) (int, map[string]int, error) {
	conn := db.Conn(ctx, s.pool)
	args := bounds(r)

	var baseline int
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM patients WHERE created_at < $1::date`, args[0]).Scan(&baseline); err != nil {
		return 0, nil, fmt.Errorf("patients before range: %w", err)
	}

	rows, err := conn.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM'), COUNT(*) FROM patients
		WHERE created_at >= $1::date AND created_at < $2::date + 1
		GROUP BY 1`, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("patients by month: %w", err)
	}
	defer rows.Close()

	monthly := make(map[string]int)
	for rows.Next() {
		var month string
		var n int
		if err := rows.Scan(&month, &n); err != nil {
			return 0, nil, err
		}
		monthly[month] = n
	}
	return baseline, monthly, rows.Err()
}

func (s *storePG) Totals(ctx context.Context, r Range) (Totals, error) {
	var t Totals
	err := db.Conn(ctx, s.pool).QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM appointments WHERE `+inRange+`),
			(SELECT COUNT(*) FROM appointments WHERE `+inRange+` AND status = 'cancelled'),
			(SELECT COUNT(*) FROM patients),
			(SELECT COUNT(*) FROM patients WHERE status = 'active'),
			(SELECT COUNT(*) FROM dentists WHERE status = 'active')`, bounds(r)...,
	).Scan(&t.Appointments, &t.CancelledAppointments, &t.Patients, &t.ActivePatients, &t.ActiveDentists)
	if err != nil {
		return t, fmt.Errorf("report totals: %w", err)
	}
	return t, nil
}
