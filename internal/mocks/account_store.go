package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/store"
)

// MockAccountStore implements store.AccountStore in memory.
type MockAccountStore struct {
	FindByIDFn      func(ctx context.Context, id int64) (*domain.Account, error)
	FindByEmailFn   func(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)
	SaveFn          func(ctx context.Context, account *domain.Account) error
	DeleteFn        func(ctx context.Context, id int64) error

	mu        sync.Mutex
	Accounts  map[int64]*domain.Account
	nextID    int64
	SaveCalls int
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// NewMockAccountStore creates an empty store.
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{Accounts: make(map[int64]*domain.Account)}
}

func clone(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

// FindByID implements store.AccountStore.
func (m *MockAccountStore) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Accounts[id]; ok {
		return clone(a), nil
	}
	return nil, store.ErrAccountNotFound
}

// FindByEmail implements store.AccountStore.
func (m *MockAccountStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Accounts {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// ExistsByEmail implements store.AccountStore.
func (m *MockAccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}
	_, err := m.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Save implements store.AccountStore, including the email uniqueness check.
func (m *MockAccountStore) Save(ctx context.Context, account *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++

	for id, a := range m.Accounts {
		if a.Email == account.Email && id != account.ID {
			return store.ErrEmailExists
		}
	}

	now := time.Now().UTC()
	if account.IsNew() {
		m.nextID++
		account.ID = m.nextID
		account.CreatedAt = now
	} else if _, ok := m.Accounts[account.ID]; !ok {
		return store.ErrAccountNotFound
	}
	account.UpdatedAt = now
	m.Accounts[account.ID] = clone(account)
	return nil
}

// Delete implements store.AccountStore.
func (m *MockAccountStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Accounts[id]; !ok {
		return store.ErrAccountNotFound
	}
	delete(m.Accounts, id)
	return nil
}
