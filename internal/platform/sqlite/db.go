package sqlite

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/reino/financas-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type accountRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (accountRecord) TableName() string { return "accounts" }

func (r *accountRecord) toDomain() *domain.Account {
	return &domain.Account{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		HashedPassword: r.PasswordHash,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Amount is kept as text so that sums are done in decimal, not REAL.
type entryRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	AccountID   int64           `gorm:"index;not null"`
	Description string          `gorm:"not null"`
	Month       int             `gorm:"not null"`
	Year        int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:text;not null"`
	Type        string          `gorm:"not null"`
	Status      string          `gorm:"not null"`
	CreatedAt   time.Time
}

func (entryRecord) TableName() string { return "entries" }

func newEntryRecord(e *domain.Entry) *entryRecord {
	return &entryRecord{
		ID:          e.ID,
		AccountID:   e.AccountID,
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		Amount:      e.Amount,
		Type:        string(e.Type),
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

func (r *entryRecord) toDomain() *domain.Entry {
	return &domain.Entry{
		ID:          r.ID,
		AccountID:   r.AccountID,
		Description: r.Description,
		Month:       r.Month,
		Year:        r.Year,
		Amount:      r.Amount,
		Type:        domain.EntryType(r.Type),
		Status:      domain.EntryStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

// Open connects to the SQLite database at dsn and migrates the schema.
func Open(dsn string, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&accountRecord{}, &entryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("sqlite database ready", slog.String("component", "sqlite"))
	return db, nil
}
