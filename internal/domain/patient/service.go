package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

const maxSuggestions = 20

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in Input) (*Patient, error) {
	p := &Patient{ID: uuid.New(), Status: StatusActive}
	if err := in.ApplyTo(p); err != nil {
		return nil, err
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns nil without error when id does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *Service) List(ctx context.Context, f ListFilter, pg pagination.Params) ([]*Patient, int, error) {
	return s.repo.List(ctx, f, pg)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.ApplyTo(p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// EmailSuggestions feeds the mailbox recipient picker.
func (s *Service) EmailSuggestions(ctx context.Context, query string) ([]string, error) {
	return s.repo.Emails(ctx, query, maxSuggestions)
}
