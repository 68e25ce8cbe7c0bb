package dentist

import (
	"context"

	"github.com/google/uuid"

	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, d *Dentist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Dentist, error)
	Update(ctx context.Context, d *Dentist) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List orders by name. An empty status lists every dentist.
	List(ctx context.Context, status string, pg pagination.Params) ([]*Dentist, int, error)
}
