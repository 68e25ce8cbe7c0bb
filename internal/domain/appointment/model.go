package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no-show"
)

var validStatuses = map[string]bool{
	StatusScheduled:  true,
	StatusConfirmed:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
	StatusNoShow:     true,
}

var validTypes = map[string]bool{
	"checkup":    true,
	"cleaning":   true,
	"filling":    true,
	"extraction": true,
	"root-canal": true,
	"crown":      true,
	"other":      true,
}

const (
	DefaultDuration = 30
	DefaultType     = "checkup"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("appointment not found")
	ErrSlotTaken  = errors.New("slot already booked")
)

// ConflictMessage is what clients see when ErrSlotTaken rejects a write.
const ConflictMessage = "Please choose another time/slot - this is already booked"

// Appointment is a stored booking. JSON uses the column names.
type Appointment struct {
	ID          uuid.UUID  `json:"id"`
	PatientID   *uuid.UUID `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Duration    int        `json:"duration"`
	Type        string     `json:"type"`
	DentistID   *uuid.UUID `json:"dentist_id"`
	Dentist     string     `json:"dentist"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Slot is the (date, time, dentist) tuple that may hold at most one active
// appointment. A nil DentistID is its own bucket.
type Slot struct {
	Date      string
	Time      string
	DentistID *uuid.UUID
}

func (a *Appointment) Slot() Slot {
	return Slot{Date: a.Date, Time: a.Time, DentistID: a.DentistID}
}

// Active reports whether the appointment occupies its slot. Only the exact
// lowercase status "cancelled" frees it.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// Key identifies the slot for advisory locking.
func (s Slot) Key() string {
	dentist := "none"
	if s.DentistID != nil {
		dentist = s.DentistID.String()
	}
	return "appointment-slot:" + s.Date + "|" + s.Time + "|" + dentist
}

// Input is the request body for create and update. Field names are the
// camelCase names clients send; nil fields are left untouched on update.
type Input struct {
	PatientID   *string `json:"patientId"`
	PatientName *string `json:"patientName"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Duration    *int    `json:"duration"`
	Type        *string `json:"type"`
	DentistID   *string `json:"dentistId"`
	Dentist     *string `json:"dentist"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

// ApplyTo copies the provided fields onto a, renaming camelCase input to the
// stored columns. Malformed ids, dates and times are validation errors.
func (in Input) ApplyTo(a *Appointment) error {
	if in.PatientID != nil {
		id, err := parseOptionalUUID(*in.PatientID)
		if err != nil {
			return fmt.Errorf("%w: invalid patientId", ErrValidation)
		}
		a.PatientID = id
	}
	if in.DentistID != nil {
		id, err := parseOptionalUUID(*in.DentistID)
		if err != nil {
			return fmt.Errorf("%w: invalid dentistId", ErrValidation)
		}
		a.DentistID = id
	}
	if in.PatientName != nil {
		a.PatientName = strings.TrimSpace(*in.PatientName)
	}
	if in.Date != nil {
		d, err := NormalizeDate(*in.Date)
		if err != nil {
			return err
		}
		a.Date = d
	}
	if in.Time != nil {
		t, err := NormalizeTime(*in.Time)
		if err != nil {
			return err
		}
		a.Time = t
	}
	if in.Duration != nil {
		a.Duration = *in.Duration
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Dentist != nil {
		a.Dentist = strings.TrimSpace(*in.Dentist)
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	return nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// NormalizeDate validates an ISO calendar date. Empty input stays empty so
// the required-field check can report it.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return d.Format(dateLayout), nil
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range []string{timeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(timeLayout), nil
		}
	}
	return "", fmt.Errorf("%w: time must be HH:MM", ErrValidation)
}

// Validate checks the merged record before it is written.
func (a *Appointment) Validate() error {
	var missing []string
	if a.PatientName == "" {
		missing = append(missing, "patientName")
	}
	if a.Date == "" {
		missing = append(missing, "date")
	}
	if a.Time == "" {
		missing = append(missing, "time")
	}
	if a.DentistID == nil {
		missing = append(missing, "dentistId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}
	if a.Duration <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of minutes", ErrValidation)
	}
	if !validTypes[a.Type] {
		return fmt.Errorf("%w: invalid type %q", ErrValidation, a.Type)
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, a.Status)
	}
	return nil
}

// ListFilter narrows a list query. Zero values match everything.
type ListFilter struct {
	Date      string
	From      string
	To        string
	DentistID *uuid.UUID
	PatientID *uuid.UUID
	Status    string
}
