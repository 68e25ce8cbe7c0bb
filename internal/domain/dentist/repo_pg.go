package dentist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentaldesk/dentaldesk/internal/platform/db"
	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

type repoPG struct{ pool db.DB }

func NewRepoPG(pool db.DB) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const dentistCols = `id, name, specialization, status, created_at, updated_at`

func scanDentist(row pgx.Row) (*Dentist, error) {
	var d Dentist
	if err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Dentist) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO dentists (id, name, specialization, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		d.ID, d.Name, d.Specialization, d.Status,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert dentist: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Dentist, error) {
	d, err := scanDentist(r.conn(ctx).QueryRow(ctx, `SELECT `+dentistCols+` FROM dentists WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get dentist: %w", err)
	}
	return d, nil
}

func (r *repoPG) Update(ctx context.Context, d *Dentist) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE dentists SET name=$2, specialization=$3, status=$4, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		d.ID, d.Name, d.Specialization, d.Status,
	).Scan(&d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update dentist: %w", err)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM dentists WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return ErrInUse
	}
	if err != nil {
		return fmt.Errorf("delete dentist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, status string, pg pagination.Params) ([]*Dentist, int, error) {
	clause := ""
	var args []interface{}
	if status != "" {
		clause = ` WHERE status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM dentists`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count dentists: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+dentistCols+` FROM dentists`+clause+` ORDER BY name ASC `+pg.SQL(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list dentists: %w", err)
	}
	defer rows.Close()

	items := []*Dentist{}
	for rows.Next() {
		d, err := scanDentist(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan dentist: %w", err)
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
