package patient

import (
	"errors"
	"fmt"
	"net/mail"
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
	ErrNotFound   = errors.New("patient not found")
)

type Patient struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	DateOfBirth       *string   `json:"date_of_birth"`
	Address           string    `json:"address"`
	InsuranceProvider string    `json:"insurance_provider"`
	InsuranceID       string    `json:"insurance_id"`
	MedicalHistory    string    `json:"medical_history"`
	Allergies         string    `json:"allergies"`
	Status            string    `json:"status"`
	LastVisit         *string   `json:"last_visit"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Input is the camelCase request body. Nil fields are left as they are.
type Input struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	DateOfBirth       *string `json:"dateOfBirth"`
	Address           *string `json:"address"`
	InsuranceProvider *string `json:"insuranceProvider"`
	InsuranceID       *string `json:"insuranceId"`
	MedicalHistory    *string `json:"medicalHistory"`
	Allergies         *string `json:"allergies"`
	Status            *string `json:"status"`
	LastVisit         *string `json:"lastVisit"`
}

func (in Input) ApplyTo(p *Patient) error {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.Name, in.Name)
	set(&p.Email, in.Email)
	set(&p.Phone, in.Phone)
	set(&p.Address, in.Address)
	set(&p.InsuranceProvider, in.InsuranceProvider)
	set(&p.InsuranceID, in.InsuranceID)
	set(&p.MedicalHistory, in.MedicalHistory)
	set(&p.Allergies, in.Allergies)
	set(&p.Status, in.Status)

	var err error
	if in.DateOfBirth != nil {
		if p.DateOfBirth, err = optionalDate("dateOfBirth", *in.DateOfBirth); err != nil {
			return err
		}
	}
	if in.LastVisit != nil {
		if p.LastVisit, err = optionalDate("lastVisit", *in.LastVisit); err != nil {
			return err
		}
	}
	return nil
}

func optionalDate(field, s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	// Accept full timestamps by keeping the calendar date.
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
	}
	out := d.Format("2006-01-02")
	return &out, nil
}

func (p *Patient) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return fmt.Errorf("%w: invalid email", ErrValidation)
		}
	}
	if p.Status != StatusActive && p.Status != StatusInactive {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, p.Status)
	}
	return nil
}

type ListFilter struct {
	Status string
	// Search matches name, email or phone, case-insensitively.
	Search string
}
