package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dentaldesk/dentaldesk/pkg/pagination"
)

type mockRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]*Appointment
	locks []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) LockSlot(_ context.Context, slot Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks = append(m.locks, slot.Key())
	return nil
}

func (m *mockRepo) FindActiveInSlot(_ context.Context, slot Slot, excludeID *uuid.UUID) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Appointment
	for _, a := range m.store {
		if Occupies(a, slot, excludeID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[a.ID]; !ok {
		return ErrNotFound
	}
	a.UpdatedAt = time.Now()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, f ListFilter, p pagination.Params) ([]*Appointment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Appointment
	for _, a := range m.store {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Date != "" && a.Date != f.Date {
			continue
		}
		if f.DentistID != nil && (a.DentistID == nil || *a.DentistID != *f.DentistID) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	total := len(out)
	if p.Offset < len(out) {
		out = out[p.Offset:]
	} else {
		out = nil
	}
	if p.Bounded() && p.Limit < len(out) {
		out = out[:p.Limit]
	}
	return out, total, nil
}

// serialTx runs fn under one mutex, standing in for the slot lock plus
// transaction of the real store.
func serialTx() func(ctx context.Context, fn func(ctx context.Context) error) error {
	var mu sync.Mutex
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		mu.Lock()
		defer mu.Unlock()
		return fn(ctx)
	}
}

type fakeDirectory struct {
	names    map[uuid.UUID]string
	inactive map[uuid.UUID]bool
}

func (d fakeDirectory) LookupDentist(_ context.Context, id uuid.UUID) (string, bool, bool, error) {
	name, ok := d.names[id]
	return name, ok && !d.inactive[id], ok, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, serialTx(), nil, nil), repo
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func bookingInput(date, tm string, dentist uuid.UUID) Input {
	return Input{
		PatientName: strp("Ana Souza"),
		Date:        strp(date),
		Time:        strp(tm),
		DentistID:   strp(dentist.String()),
		Dentist:     strp("Dr. Lee"),
	}
}

func paramsAll() pagination.Params { return pagination.Params{} }
