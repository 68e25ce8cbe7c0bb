package dentist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in Input) (*Dentist, error) {
	d := &Dentist{ID: uuid.New(), Status: StatusActive}
	in.ApplyTo(d)
	if d.Status == "" {
		d.Status = StatusActive
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns nil without error when id does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Dentist, error) {
	d, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return d, err
}

// List returns active dentists unless all is set.
func (s *Service) List(ctx context.Context, all bool, pg pagination.Params) ([]*Dentist, int, error) {
	status := StatusActive
	if all {
		status = ""
	}
	return s.repo.List(ctx, status, pg)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Dentist, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ApplyTo(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrInUse) {
		zerolog.Ctx(ctx).Warn().Str("dentist_id", id.String()).Msg("dentist delete blocked by appointments")
	}
	return err
}

// LookupDentist resolves the display name copied onto appointments and
// whether the dentist still takes bookings.
func (s *Service) LookupDentist(ctx context.Context, id uuid.UUID) (name string, active, ok bool, err error) {
	d, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", false, false, nil
	}
	if err != nil {
		return "", false, false, err
	}
	return d.Name, d.Status == StatusActive, true, nil
}
