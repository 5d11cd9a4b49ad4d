package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/platform/logger"
	"github.com/reino/financas-api/internal/store"
	"gorm.io/gorm"
)

// AccountStore implements store.AccountStore with gorm.
type AccountStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewAccountStore creates an account store over db.
func NewAccountStore(db *gorm.DB, logger *slog.Logger) *AccountStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*AccountStore)(nil)

func (s *AccountStore) find(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var rec accountRecord
	err := s.db.WithContext(ctx).Where(query, arg).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrAccountNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load account",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return rec.toDomain(), nil
}

// FindByID implements store.AccountStore.
func (s *AccountStore) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.find(ctx, "id = ?", id)
}

// FindByEmail implements store.AccountStore.
func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.find(ctx, "email = ?", email)
}

// ExistsByEmail implements store.AccountStore.
func (s *AccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&accountRecord{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// Save implements store.AccountStore.
func (s *AccountStore) Save(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := time.Now().UTC()

	if account.IsNew() {
		rec := accountRecord{
			Name:         account.Name,
			Email:        account.Email,
			PasswordHash: account.HashedPassword,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Warn("attempted to create account with existing email")
				return store.ErrEmailExists
			}
			return fmt.Errorf("failed to insert account: %w", err)
		}
		account.ID = rec.ID
		account.CreatedAt = now
		account.UpdatedAt = now
		log.Debug("account created", slog.Int64("account_id", rec.ID))
		return nil
	}

	result := s.db.WithContext(ctx).Model(&accountRecord{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"name":          account.Name,
			"email":         account.Email,
			"password_hash": account.HashedPassword,
			"updated_at":    now,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return store.ErrEmailExists
		}
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrAccountNotFound
	}
	account.UpdatedAt = now
	return nil
}

// Delete implements store.AccountStore.
func (s *AccountStore) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&entryRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete account entries: %w", err)
		}
		result := tx.Delete(&accountRecord{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete account: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return store.ErrAccountNotFound
		}
		return nil
	})
}
