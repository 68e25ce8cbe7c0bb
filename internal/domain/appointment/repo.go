package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

type Repository interface {
	SlotFinder
	// LockSlot serialises writers of slot until the surrounding transaction ends.
	LockSlot(ctx context.Context, slot Slot) error
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter, p pagination.Params) ([]*Appointment, int, error)
}
