package dentist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("dentist not found")
	// ErrInUse is returned when appointments still reference the dentist.
	ErrInUse = errors.New("dentist has appointments")
)

type Dentist struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Input struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Status         *string `json:"status"`
}

func (in Input) ApplyTo(d *Dentist) {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Specialization != nil {
		d.Specialization = strings.TrimSpace(*in.Specialization)
	}
	if in.Status != nil {
		d.Status = strings.TrimSpace(*in.Status)
	}
}

func (d *Dentist) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if d.Status != StatusActive && d.Status != StatusInactive {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, d.Status)
	}
	return nil
}
