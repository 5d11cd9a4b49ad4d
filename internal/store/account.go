package store

import (
	"context"

	"github.com/reino/financas-api/internal/domain"
)

// AccountStore defines persistence for accounts. It does not check email
// availability itself; implementations must however back Email with a unique
// index and report its violation as ErrEmailExists.
type AccountStore interface {
	// FindByID returns ErrAccountNotFound when no account has the given ID.
	FindByID(ctx context.Context, id int64) (*domain.Account, error)

	// FindByEmail returns ErrAccountNotFound when no account has the given email.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)

	// ExistsByEmail reports whether an account with the given email is stored.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save inserts the account when its ID is zero, assigning a new ID and
	// timestamps on the passed value, and updates it otherwise.
	// Returns ErrEmailExists on a uniqueness violation and ErrAccountNotFound
	// when updating a missing account.
	Save(ctx context.Context, account *domain.Account) error

	// Delete removes the account together with all of its entries.
	// Returns ErrAccountNotFound if the account does not exist.
	Delete(ctx context.Context, id int64) error
}
