package store

import (
	"context"

	"github.com/reino/financas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// EntryStore defines persistence for ledger entries.
type EntryStore interface {
	// Create inserts a new entry and assigns its ID and CreatedAt.
	// Returns ErrInvalidEntity when the owning account does not exist.
	Create(ctx context.Context, entry *domain.Entry) error

	// Update overwrites an existing entry. Returns ErrEntryNotFound if missing.
	Update(ctx context.Context, entry *domain.Entry) error

	// Delete removes an entry. Returns ErrEntryNotFound if missing.
	Delete(ctx context.Context, id int64) error

	// GetByID returns ErrEntryNotFound when no entry has the given ID.
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)

	// Find returns every entry matching the filter, newest first.
	// It returns an empty slice, never nil, when nothing matches.
	Find(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error)

	// SumByType totals the amounts of an account's entries with the given
	// type and status. Zero when there are none.
	SumByType(
		ctx context.Context,
		accountID int64,
		entryType domain.EntryType,
		status domain.EntryStatus,
	) (decimal.Decimal, error)
}
