package dentist

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
	store map[uuid.UUID]*Dentist
	inUse map[uuid.UUID]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[uuid.UUID]*Dentist), inUse: make(map[uuid.UUID]bool)}
}

func (m *mockRepo) Create(_ context.Context, d *Dentist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.store[d.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Dentist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, d *Dentist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[d.ID]; !ok {
		return ErrNotFound
	}
	d.UpdatedAt = time.Now()
	cp := *d
	m.store[d.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	if m.inUse[id] {
		return ErrInUse
	}
	delete(m.store, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, status string, pg pagination.Params) ([]*Dentist, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []*Dentist{}
	for _, d := range m.store {
		if status != "" && d.Status != status {
			continue
		}
		cp := *d
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if pg.Offset < len(all) {
		all = all[pg.Offset:]
	} else {
		all = []*Dentist{}
	}
	if pg.Limit > 0 && pg.Limit < len(all) {
		all = all[:pg.Limit]
	}
	return all, total, nil
}

func strp(s string) *string { return &s }
