package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/platform/logger"
	"github.com/reino/financas-api/internal/store"
	"github.com/shopspring/decimal"
)

// PostgresEntryStore implements store.EntryStore on PostgreSQL.
type PostgresEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEntryStore creates a new PostgreSQL entry store.
// If logger is nil, slog.Default() is used.
func NewPostgresEntryStore(db store.DBTX, logger *slog.Logger) *PostgresEntryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "entry_store")),
	}
}

var _ store.EntryStore = (*PostgresEntryStore)(nil)

const entryColumns = `id, account_id, description, month, year, amount, type, status, created_at`

func scanEntry(row interface{ Scan(dest ...any) error }) (*domain.Entry, error) {
	var (
		e         domain.Entry
		entryType string
		status    string
	)
	err := row.Scan(&e.ID, &e.AccountID, &e.Description, &e.Month, &e.Year,
		&e.Amount, &entryType, &status, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Type = domain.EntryType(entryType)
	e.Status = domain.EntryStatus(status)
	return &e, nil
}

// Create implements store.EntryStore.
func (s *PostgresEntryStore) Create(ctx context.Context, entry *domain.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO entries (account_id, description, month, year, amount, type, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		entry.AccountID, entry.Description, entry.Month, entry.Year,
		entry.Amount, string(entry.Type), string(entry.Status), now,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert entry",
			slog.Int64("account_id", entry.AccountID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert entry: %w", MapError(err))
	}

	entry.ID = id
	entry.CreatedAt = now

	log.Debug("entry created",
		slog.Int64("entry_id", id),
		slog.Int64("account_id", entry.AccountID))
	return nil
}

// Update implements store.EntryStore.
func (s *PostgresEntryStore) Update(ctx context.Context, entry *domain.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE entries
		 SET account_id = $1, description = $2, month = $3, year = $4,
		     amount = $5, type = $6, status = $7
		 WHERE id = $8`,
		entry.AccountID, entry.Description, entry.Month, entry.Year,
		entry.Amount, string(entry.Type), string(entry.Status), entry.ID,
	)
	if err != nil {
		log.Error("failed to update entry",
			slog.Int64("entry_id", entry.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update entry: %w", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrEntryNotFound); err != nil {
		log.Debug("entry not found for update", slog.Int64("entry_id", entry.ID))
		return err
	}
	return nil
}

// Delete implements store.EntryStore.
func (s *PostgresEntryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete entry",
			slog.Int64("entry_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete entry: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrEntryNotFound)
}

// GetByID implements store.EntryStore.
func (s *PostgresEntryStore) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = $1`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEntryNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get entry",
			slog.Int64("entry_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get entry: %w", MapError(err))
	}
	return entry, nil
}

// buildFindQuery turns a filter into a WHERE clause with positional args.
func buildFindQuery(filter domain.EntryFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.AccountID != 0 {
		add("account_id = $%d", filter.AccountID)
	}
	if filter.Description != "" {
		add(`description ILIKE '%%' || $%d || '%%' ESCAPE '\'`, store.EscapeLike(filter.Description))
	}
	if filter.Month != 0 {
		add("month = $%d", filter.Month)
	}
	if filter.Year != 0 {
		add("year = $%d", filter.Year)
	}
	if filter.Type != "" {
		add("type = $%d", string(filter.Type))
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	return query, args
}

// Find implements store.EntryStore.
func (s *PostgresEntryStore) Find(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildFindQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query entries: %w", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error("failed to scan entry row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	log.Debug("entries found", slog.Int("count", len(entries)))
	return entries, nil
}

// SumByType implements store.EntryStore.
func (s *PostgresEntryStore) SumByType(
	ctx context.Context,
	accountID int64,
	entryType domain.EntryType,
	status domain.EntryStatus,
) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM entries
		 WHERE account_id = $1 AND type = $2 AND status = $3`,
		accountID, string(entryType), string(status),
	).Scan(&total)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to sum entries",
			slog.Int64("account_id", accountID),
			slog.String("type", string(entryType)),
			slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to sum entries: %w", MapError(err))
	}
	return total, nil
}
