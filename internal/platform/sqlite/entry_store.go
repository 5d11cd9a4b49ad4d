package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/platform/logger"
	"github.com/reino/financas-api/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryStore implements store.EntryStore with gorm.
type EntryStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewEntryStore creates an entry store over db.
func NewEntryStore(db *gorm.DB, logger *slog.Logger) *EntryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "entry_store")),
	}
}

var _ store.EntryStore = (*EntryStore)(nil)

// Create implements store.EntryStore. SQLite does not enforce foreign keys
// by default, so the owner is checked inside the insert transaction.
func (s *EntryStore) Create(ctx context.Context, entry *domain.Entry) error {
	rec := newEntryRecord(entry)
	rec.ID = 0
	rec.CreatedAt = time.Now().UTC()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&accountRecord{}).Where("id = ?", entry.AccountID).Count(&owners).Error; err != nil {
			return err
		}
		if owners == 0 {
			return fmt.Errorf("%w: account %d", store.ErrMissingReference, entry.AccountID)
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to insert entry",
			slog.Int64("account_id", entry.AccountID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	entry.ID = rec.ID
	entry.CreatedAt = rec.CreatedAt
	return nil
}

// Update implements store.EntryStore.
func (s *EntryStore) Update(ctx context.Context, entry *domain.Entry) error {
	result := s.db.WithContext(ctx).Model(&entryRecord{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"account_id":  entry.AccountID,
			"description": entry.Description,
			"month":       entry.Month,
			"year":        entry.Year,
			"amount":      entry.Amount,
			"type":        string(entry.Type),
			"status":      string(entry.Status),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrEntryNotFound
	}
	return nil
}

// Delete implements store.EntryStore.
func (s *EntryStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&entryRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrEntryNotFound
	}
	return nil
}

// GetByID implements store.EntryStore.
func (s *EntryStore) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	var rec entryRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return rec.toDomain(), nil
}

func applyFilter(q *gorm.DB, filter domain.EntryFilter) *gorm.DB {
	if filter.AccountID != 0 {
		q = q.Where("account_id = ?", filter.AccountID)
	}
	if filter.Description != "" {
		pattern := "%" + store.EscapeLike(strings.ToLower(filter.Description)) + "%"
		q = q.Where(`LOWER(description) LIKE ? ESCAPE '\'`, pattern)
	}
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	return q
}

// Find implements store.EntryStore.
func (s *EntryStore) Find(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	var recs []entryRecord
	err := applyFilter(s.db.WithContext(ctx).Model(&entryRecord{}), filter).
		Order("created_at DESC").Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	entries := make([]*domain.Entry, 0, len(recs))
	for i := range recs {
		entries = append(entries, recs[i].toDomain())
	}
	return entries, nil
}

// SumByType implements store.EntryStore.
func (s *EntryStore) SumByType(
	ctx context.Context,
	accountID int64,
	entryType domain.EntryType,
	status domain.EntryStatus,
) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := s.db.WithContext(ctx).Model(&entryRecord{}).
		Where("account_id = ? AND type = ? AND status = ?", accountID, string(entryType), string(status)).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries: %w", err)
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}
