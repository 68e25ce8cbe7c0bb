package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentaldesk/dentaldesk/internal/platform/db"
	"github.com/dentaldesk/dentaldesk/internal/platform/metrics"
	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

// DentistDirectory resolves a dentist id to the display name stored on the
// appointment. It returns ok=false for an unknown id.
type DentistDirectory interface {
	LookupDentist(ctx context.Context, id uuid.UUID) (name string, active, ok bool, err error)
}

type Service struct {
	repo     Repository
	tx       db.TxFunc
	dentists DentistDirectory
	metrics  *metrics.Metrics
}

// NewService wires the store. dentists and m may be nil.
func NewService(repo Repository, tx db.TxFunc, dentists DentistDirectory, m *metrics.Metrics) *Service {
	return &Service{repo: repo, tx: tx, dentists: dentists, metrics: m}
}

// Create books a new appointment. The slot check and the insert run in one
// transaction holding the slot's advisory lock.
func (s *Service) Create(ctx context.Context, in Input) (*Appointment, error) {
	a := &Appointment{
		ID:       uuid.New(),
		Duration: DefaultDuration,
		Type:     DefaultType,
		Status:   StatusScheduled,
	}
	if err := in.ApplyTo(a); err != nil {
		return nil, err
	}
	// Explicit empty strings fall back to the defaults too.
	if a.Type == "" {
		a.Type = DefaultType
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if err := s.prepare(ctx, a, true); err != nil {
		return nil, err
	}

	err := s.tx(ctx, func(ctx context.Context) error {
		if err := s.claimSlot(ctx, a, nil); err != nil {
			return err
		}
		return s.repo.Create(ctx, a)
	})
	if err != nil {
		s.observeFailure(ctx, "create", a, err)
		return nil, err
	}
	s.metrics.ObserveAppointmentWrite("create")
	return a, nil
}

// Get returns nil without error when id does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return a, err
}

func (s *Service) List(ctx context.Context, f ListFilter, p pagination.Params) ([]*Appointment, int, error) {
	return s.repo.List(ctx, f, p)
}

// Update merges in onto the stored appointment and re-checks the slot,
// excluding the appointment itself.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Appointment, error) {
	var updated, candidate *Appointment
	err := s.tx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		candidate = a
		prev := a.DentistID
		if err := in.ApplyTo(a); err != nil {
			return err
		}
		moved := prev == nil || a.DentistID == nil || *prev != *a.DentistID
		if err := s.prepare(ctx, a, moved); err != nil {
			return err
		}
		if err := s.claimSlot(ctx, a, &a.ID); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		s.observeFailure(ctx, "update", candidate, err)
		return nil, err
	}
	s.metrics.ObserveAppointmentWrite("update")
	return updated, nil
}

// Delete removes the appointment or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.ObserveAppointmentWrite("delete")
	return nil
}

// prepare validates the merged record and copies the dentist's name from the
// directory. Inactive dentists keep their existing bookings but take no new
// ones, so the check only runs when assigning is set.
func (s *Service) prepare(ctx context.Context, a *Appointment, assigning bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if s.dentists == nil {
		return nil
	}
	name, active, ok, err := s.dentists.LookupDentist(ctx, *a.DentistID)
	if err != nil {
		return fmt.Errorf("resolve dentist: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: unknown dentist %s", ErrValidation, a.DentistID)
	}
	if assigning && !active {
		return fmt.Errorf("%w: dentist %s is inactive", ErrValidation, a.DentistID)
	}
	a.Dentist = name
	return nil
}

// claimSlot locks and checks a's slot. Cancelled appointments hold no slot.
func (s *Service) claimSlot(ctx context.Context, a *Appointment, excludeID *uuid.UUID) error {
	if !a.Active() {
		return nil
	}
	if err := s.repo.LockSlot(ctx, a.Slot()); err != nil {
		return err
	}
	return CheckSlot(ctx, s.repo, a.Slot(), excludeID)
}

func (s *Service) observeFailure(ctx context.Context, op string, a *Appointment, err error) {
	if !errors.Is(err, ErrSlotTaken) {
		return
	}
	s.metrics.ObserveSlotConflict(op)
	evt := zerolog.Ctx(ctx).Info().Str("operation", op)
	if a != nil {
		evt = evt.Str("date", a.Date).Str("time", a.Time)
		if a.DentistID != nil {
			evt = evt.Str("dentist_id", a.DentistID.String())
		}
	}
	evt.Msg("appointment slot already booked")
}
