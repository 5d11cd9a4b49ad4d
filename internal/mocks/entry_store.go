package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/store"
	"github.com/shopspring/decimal"
)

// MockEntryStore implements store.EntryStore in memory.
type MockEntryStore struct {
	CreateFn    func(ctx context.Context, entry *domain.Entry) error
	UpdateFn    func(ctx context.Context, entry *domain.Entry) error
	DeleteFn    func(ctx context.Context, id int64) error
	GetByIDFn   func(ctx context.Context, id int64) (*domain.Entry, error)
	FindFn      func(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error)
	SumByTypeFn func(ctx context.Context, accountID int64, t domain.EntryType, s domain.EntryStatus) (decimal.Decimal, error)

	mu      sync.Mutex
	Entries map[int64]*domain.Entry
	nextID  int64
}

var _ store.EntryStore = (*MockEntryStore)(nil)

// NewMockEntryStore creates an empty store.
func NewMockEntryStore() *MockEntryStore {
	return &MockEntryStore{Entries: make(map[int64]*domain.Entry)}
}

// Create implements store.EntryStore.
func (m *MockEntryStore) Create(ctx context.Context, entry *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	entry.ID = m.nextID
	entry.CreatedAt = time.Now().UTC()
	c := *entry
	m.Entries[entry.ID] = &c
	return nil
}

// Update implements store.EntryStore.
func (m *MockEntryStore) Update(ctx context.Context, entry *domain.Entry) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Entries[entry.ID]
	if !ok {
		return store.ErrEntryNotFound
	}
	c := *entry
	c.CreatedAt = existing.CreatedAt
	m.Entries[entry.ID] = &c
	return nil
}

// Delete implements store.EntryStore.
func (m *MockEntryStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Entries[id]; !ok {
		return store.ErrEntryNotFound
	}
	delete(m.Entries, id)
	return nil
}

// GetByID implements store.EntryStore.
func (m *MockEntryStore) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Entries[id]
	if !ok {
		return nil, store.ErrEntryNotFound
	}
	c := *e
	return &c, nil
}

// Find implements store.EntryStore.
func (m *MockEntryStore) Find(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Entry, 0)
	for _, e := range m.Entries {
		if filter.Matches(e) {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// SumByType implements store.EntryStore.
func (m *MockEntryStore) SumByType(
	ctx context.Context,
	accountID int64,
	entryType domain.EntryType,
	status domain.EntryStatus,
) (decimal.Decimal, error) {
	if m.SumByTypeFn != nil {
		return m.SumByTypeFn(ctx, accountID, entryType, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, e := range m.Entries {
		if e.AccountID == accountID && e.Type == entryType && e.Status == status {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}
