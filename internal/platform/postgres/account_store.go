package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/platform/logger"
	"github.com/reino/financas-api/internal/store"
)

// PostgresAccountStore implements store.AccountStore on PostgreSQL.
type PostgresAccountStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL account store.
// If logger is nil, slog.Default() is used.
func NewPostgresAccountStore(db *sql.DB, logger *slog.Logger) *PostgresAccountStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*PostgresAccountStore)(nil)

const accountColumns = `id, name, email, password_hash, created_at, updated_at`

func scanAccount(row interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.HashedPassword, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByID implements store.AccountStore.
func (s *PostgresAccountStore) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.Int64("account_id", id))
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by ID",
			slog.Int64("account_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get account by ID: %w", MapError(err))
	}
	return account, nil
}

// FindByEmail implements store.AccountStore.
func (s *PostgresAccountStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found by email")
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by email", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get account by email: %w", MapError(err))
	}
	return account, nil
}

// ExistsByEmail implements store.AccountStore.
func (s *PostgresAccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check email existence",
			slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to check email existence: %w", MapError(err))
	}
	return exists, nil
}

// Save implements store.AccountStore.
func (s *PostgresAccountStore) Save(ctx context.Context, account *domain.Account) error {
	if account.IsNew() {
		return s.insert(ctx, account)
	}
	return s.update(ctx, account)
}

func (s *PostgresAccountStore) insert(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO accounts (name, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		account.Name, account.Email, account.HashedPassword, now, now,
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("attempted to create account with existing email")
			return store.ErrEmailExists
		}
		log.Error("failed to insert account", slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert account: %w", MapError(err))
	}

	account.ID = id
	account.CreatedAt = now
	account.UpdatedAt = now

	log.Debug("account created", slog.Int64("account_id", id))
	return nil
}

func (s *PostgresAccountStore) update(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts
		 SET name = $1, email = $2, password_hash = $3, updated_at = $4
		 WHERE id = $5`,
		account.Name, account.Email, account.HashedPassword, now, account.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("attempted to update account to existing email",
				slog.Int64("account_id", account.ID))
			return store.ErrEmailExists
		}
		log.Error("failed to update account",
			slog.Int64("account_id", account.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update account: %w", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrAccountNotFound); err != nil {
		return err
	}

	account.UpdatedAt = now
	log.Debug("account updated", slog.Int64("account_id", account.ID))
	return nil
}

// Delete implements store.AccountStore. Entries are removed first in the
// same transaction.
func (s *PostgresAccountStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx = logger.WithLogger(ctx, log)

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE account_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete account entries: %w", MapError(err))
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", MapError(err))
		}
		if err := CheckRowsAffected(result, store.ErrAccountNotFound); err != nil {
			return err
		}

		log.Debug("account deleted", slog.Int64("account_id", id))
		return nil
	})
}
