package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentaldesk/dentaldesk/internal/platform/db"
	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

// SlotIndex is the partial unique index backing the slot rule.
const SlotIndex = "appointments_active_slot_key"

type repoPG struct{ pool db.DB }

func NewRepoPG(pool db.DB) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const apptCols = `id, patient_id, patient_name, to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'),
	duration, type, dentist_id, dentist, status, notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.PatientName, &a.Date, &a.Time,
		&a.Duration, &a.Type, &a.DentistID, &a.Dentist, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) LockSlot(ctx context.Context, slot Slot) error {
	if db.TxFromContext(ctx) == nil {
		return fmt.Errorf("lock slot: no transaction in context")
	}
	if _, err := r.conn(ctx).Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, slot.Key()); err != nil {
		return fmt.Errorf("lock slot: %w", err)
	}
	return nil
}

func (r *repoPG) FindActiveInSlot(ctx context.Context, slot Slot, excludeID *uuid.UUID) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+apptCols+` FROM appointments
		WHERE date = $1::date AND time = $2::time
			AND dentist_id IS NOT DISTINCT FROM $3
			AND status <> 'cancelled'
			AND ($4::uuid IS NULL OR id <> $4::uuid)`,
		slot.Date, slot.Time, slot.DentistID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find slot conflicts: %w", err)
	}
	return collect(rows)
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, patient_name, date, time, duration, type,
			dentist_id, dentist, status, notes)
		VALUES ($1, $2, $3, $4::date, $5::time, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.PatientName, a.Date, a.Time, a.Duration, a.Type,
		a.DentistID, a.Dentist, a.Status, a.Notes)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return translateWriteErr("insert appointment", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	row := r.conn(ctx).QueryRow(ctx, `
		UPDATE appointments SET patient_id=$2, patient_name=$3, date=$4::date, time=$5::time,
			duration=$6, type=$7, dentist_id=$8, dentist=$9, status=$10, notes=$11, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.PatientID, a.PatientName, a.Date, a.Time, a.Duration, a.Type,
		a.DentistID, a.Dentist, a.Status, a.Notes)
	if err := row.Scan(&a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return translateWriteErr("update appointment", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f ListFilter, p pagination.Params) ([]*Appointment, int, error) {
	var where []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Date != "" {
		add(`date = $%d::date`, f.Date)
	}
	if f.From != "" {
		add(`date >= $%d::date`, f.From)
	}
	if f.To != "" {
		add(`date <= $%d::date`, f.To)
	}
	if f.DentistID != nil {
		add(`dentist_id = $%d`, *f.DentistID)
	}
	if f.PatientID != nil {
		add(`patient_id = $%d`, *f.PatientID)
	}
	if f.Status != "" {
		add(`status = $%d`, f.Status)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+` FROM appointments`+clause+` ORDER BY date ASC, time ASC, created_at ASC `+p.SQL(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collect(rows pgx.Rows) ([]*Appointment, error) {
	defer rows.Close()
	items := []*Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func translateWriteErr(op string, err error) error {
	if db.IsUniqueViolation(err, SlotIndex) {
		return ErrSlotTaken
	}
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: referenced patient or dentist does not exist", ErrValidation)
	}
	return fmt.Errorf("%s: %w", op, err)
}
