package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter, pg pagination.Params) ([]*Patient, int, error)
	// Emails returns distinct non-empty patient e-mail addresses containing
	// query, case-insensitively.
	Emails(ctx context.Context, query string, limit int) ([]string, error)
}
