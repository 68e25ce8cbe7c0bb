package dentist

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

var ctx = context.Background()

func TestService_Create(t *testing.T) {
	svc := NewService(newMockRepo())

	d, err := svc.Create(ctx, Input{Name: strp("Dr. Lee"), Specialization: strp("Orthodontics")})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if d.Status != StatusActive {
		t.Errorf("expected default status active, got %q", d.Status)
	}

	if _, err := svc.Create(ctx, Input{Specialization: strp("Endo")}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation without name, got %v", err)
	}
	if _, err := svc.Create(ctx, Input{Name: strp("Dr. X"), Status: strp("retired")}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for status, got %v", err)
	}
}

func TestService_ListActiveByName(t *testing.T) {
	svc := NewService(newMockRepo())
	svc.Create(ctx, Input{Name: strp("Dr. Zhang")})
	svc.Create(ctx, Input{Name: strp("Dr. Adams")})
	svc.Create(ctx, Input{Name: strp("Dr. Moore"), Status: strp(StatusInactive)})

	items, total, err := svc.List(ctx, false, pagination.Params{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 2 || items[0].Name != "Dr. Adams" || items[1].Name != "Dr. Zhang" {
		t.Errorf("expected active dentists by name, got %d %v", total, items)
	}

	_, total, _ = svc.List(ctx, true, pagination.Params{})
	if total != 3 {
		t.Errorf("expected 3 dentists with all, got %d", total)
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	d, _ := svc.Create(ctx, Input{Name: strp("Dr. Lee"), Specialization: strp("General")})

	got, err := svc.Update(ctx, d.ID, Input{Status: strp(StatusInactive)})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if got.Specialization != "General" || got.Status != StatusInactive {
		t.Errorf("expected merged update, got %+v", got)
	}

	repo.inUse[d.ID] = true
	if err := svc.Delete(ctx, d.ID); !errors.Is(err, ErrInUse) {
		t.Errorf("expected ErrInUse, got %v", err)
	}
	repo.inUse[d.ID] = false
	if err := svc.Delete(ctx, d.ID); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := svc.Delete(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_LookupDentist(t *testing.T) {
	svc := NewService(newMockRepo())
	d, _ := svc.Create(ctx, Input{Name: strp("Dr. Lee")})

	name, active, ok, err := svc.LookupDentist(ctx, d.ID)
	if err != nil || !ok || !active || name != "Dr. Lee" {
		t.Errorf("LookupDentist() = %q, %v, %v, %v", name, active, ok, err)
	}

	retired, _ := svc.Create(ctx, Input{Name: strp("Dr. Moss"), Status: strp(StatusInactive)})
	name, active, ok, err = svc.LookupDentist(ctx, retired.ID)
	if err != nil || !ok || active || name != "Dr. Moss" {
		t.Errorf("expected inactive Dr. Moss, got %q, %v, %v, %v", name, active, ok, err)
	}

	_, _, ok, err = svc.LookupDentist(ctx, uuid.New())
	if err != nil || ok {
		t.Errorf("expected unknown dentist, got ok=%v err=%v", ok, err)
	}
}
