package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tripdesk/crm-admin/internal/pkg/idgen"
	"github.com/tripdesk/crm-admin/internal/pkg/pagination"
	"github.com/tripdesk/crm-admin/internal/pkg/response"
)

// Memory is a Repository kept in process memory. Lists return the newest
// record first, like the gorm repository.
type Memory[T any, PT interface {
	*T
	Entity
}] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	now   func() time.Time
}

// NewMemory creates an empty in-memory repository.
func NewMemory[T any, PT interface {
	*T
	Entity
}]() *Memory[T, PT] {
	return &Memory[T, PT]{items: make(map[string]T), now: time.Now}
}

func (m *Memory[T, PT]) List(_ context.Context, q pagination.Query) ([]T, response.Pagination, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.newestFirst()
	start, end := pagination.Window(len(all), q)
	return all[start:end], pagination.Meta(int64(len(all)), q), nil
}

func (m *Memory[T, PT]) All(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.newestFirst(), nil
}

func (m *Memory[T, PT]) Get(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (m *Memory[T, PT]) Create(_ context.Context, item *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := PT(item)
	if p.GetID() == "" {
		p.SetID(idgen.New())
	}
	stamp(item, m.now())
	m.items[p.GetID()] = *item
	m.order = append(m.order, p.GetID())
	return nil
}

func (m *Memory[T, PT]) Save(ctx context.Context, item *T) error {
	m.mu.Lock()
	id := PT(item).GetID()
	_, exists := m.items[id]
	if exists {
		stamp(item, m.now())
		m.items[id] = *item
	}
	m.mu.Unlock()

	if !exists {
		return m.Create(ctx, item)
	}
	return nil
}

func (m *Memory[T, PT]) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	m.order = slices.DeleteFunc(m.order, func(v string) bool { return v == id })
	return true, nil
}

func (m *Memory[T, PT]) newestFirst() []T {
	out := make([]T, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.items[m.order[i]])
	}
	return out
}

type toucher interface{ Touch(time.Time) }

func stamp(item any, now time.Time) {
	if t, ok := item.(toucher); ok {
		t.Touch(now)
	}
}
