package appointment

import (
	"context"

	"github.com/google/uuid"
)

// SlotFinder returns the active appointments holding slot, ignoring
// excludeID when it is non-nil.
type SlotFinder interface {
	FindActiveInSlot(ctx context.Context, slot Slot, excludeID *uuid.UUID) ([]*Appointment, error)
}

// CheckSlot returns ErrSlotTaken when another active appointment already
// holds slot.
func CheckSlot(ctx context.Context, f SlotFinder, slot Slot, excludeID *uuid.UUID) error {
	existing, err := f.FindActiveInSlot(ctx, slot, excludeID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ErrSlotTaken
	}
	return nil
}

// Occupies reports whether a holds slot for the purpose of a write to
// excludeID. It is the in-memory form of the storage query.
func Occupies(a *Appointment, slot Slot, excludeID *uuid.UUID) bool {
	if excludeID != nil && a.ID == *excludeID {
		return false
	}
	if !a.Active() {
		return false
	}
	return a.Date == slot.Date && a.Time == slot.Time && sameDentist(a.DentistID, slot.DentistID)
}

func sameDentist(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
