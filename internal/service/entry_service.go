package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/events"
	"github.com/reino/financas-api/internal/platform/logger"
	"github.com/reino/financas-api/internal/store"
	"github.com/shopspring/decimal"
)

// EntryService manages ledger entries.
type EntryService interface {
	// Save validates a new entry, marks it pending and stores it.
	Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Update validates and overwrites a stored entry.
	Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Delete removes a stored entry.
	Delete(ctx context.Context, entry *domain.Entry) error

	// Search returns the entries matching filter, newest first.
	Search(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error)

	// UpdateStatus sets the entry status and stores the entry.
	UpdateStatus(ctx context.Context, entry *domain.Entry, status domain.EntryStatus) (*domain.Entry, error)

	// Validate checks the entry fields and returns a *BusinessRuleError
	// naming the first invalid one.
	Validate(entry *domain.Entry) error

	// GetByID returns (nil, false, nil) when no entry has the ID.
	GetByID(ctx context.Context, id int64) (*domain.Entry, bool, error)

	// Balance is settled income minus settled expense for the account.
	Balance(ctx context.Context, accountID int64) (decimal.Decimal, error)
}

// EntryServiceImpl implements EntryService.
type EntryServiceImpl struct {
	entries   store.EntryStore
	publisher events.Publisher
	logger    *slog.Logger
}

var _ EntryService = (*EntryServiceImpl)(nil)

// NewEntryService creates an EntryService. publisher may be nil.
func NewEntryService(entries store.EntryStore, publisher events.Publisher, logger *slog.Logger) (*EntryServiceImpl, error) {
	if entries == nil {
		return nil, fmt.Errorf("entry store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &EntryServiceImpl{
		entries:   entries,
		publisher: publisher,
		logger:    logger.With("component", "entry_service"),
	}, nil
}

func entryChanged(e *domain.Entry) events.EntryChanged {
	return events.EntryChanged{
		EntryID:   e.ID,
		AccountID: e.AccountID,
		Status:    string(e.Status),
		Amount:    e.Amount.String(),
	}
}

// Stored amounts are NUMERIC(16,2); descriptions are VARCHAR(100).
const (
	amountScale       = 2
	maxDescriptionLen = 100
)

var maxAmount = decimal.New(1, 14)

// Validate implements EntryService.
func (s *EntryServiceImpl) Validate(entry *domain.Entry) error {
	invalid := func(msg string) error {
		return NewBusinessRuleError(msg, domain.ErrValidation)
	}

	switch {
	case entry == nil || strings.TrimSpace(entry.Description) == "",
		utf8.RuneCountInString(entry.Description) > maxDescriptionLen:
		return invalid(MsgInvalidDescription)
	case entry.Month < 1 || entry.Month > 12:
		return invalid(MsgInvalidMonth)
	case entry.Year < 1000 || entry.Year > 9999:
		return invalid(MsgInvalidYear)
	case entry.AccountID <= 0:
		return invalid(MsgMissingAccount)
	case !entry.Amount.IsPositive(),
		!entry.Amount.Equal(entry.Amount.Round(amountScale)),
		entry.Amount.GreaterThanOrEqual(maxAmount):
		return invalid(MsgInvalidAmount)
	case !entry.Type.IsValid():
		return invalid(MsgMissingEntryType)
	}
	return nil
}

// Save implements EntryService.
func (s *EntryServiceImpl) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.Validate(entry); err != nil {
		return nil, err
	}
	if entry.ID != 0 {
		return nil, NewBusinessRuleError("entry is already saved", domain.ErrInvalidID)
	}

	entry.Status = domain.EntryStatusPending
	if err := s.entries.Create(ctx, entry); err != nil {
		if errors.Is(err, store.ErrMissingReference) {
			return nil, NewBusinessRuleError(MsgMissingAccount, err)
		}
		log.Error("failed to create entry", "error", err, "account_id", entry.AccountID)
		return nil, NewServiceError("entry", "save", "failed to create entry", err)
	}

	log.Debug("entry created", "entry_id", entry.ID, "account_id", entry.AccountID)
	publish(ctx, s.logger, s.publisher, events.TypeEntryCreated, entryChanged(entry))
	return entry, nil
}

// Update implements EntryService.
func (s *EntryServiceImpl) Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if err := s.update(ctx, entry); err != nil {
		return nil, err
	}
	publish(ctx, s.logger, s.publisher, events.TypeEntryUpdated, entryChanged(entry))
	return entry, nil
}

func (s *EntryServiceImpl) update(ctx context.Context, entry *domain.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if entry == nil || entry.ID == 0 {
		return NewBusinessRuleError("entry must be saved before it can be changed", domain.ErrInvalidID)
	}
	if err := s.Validate(entry); err != nil {
		return err
	}
	if !entry.Status.IsValid() {
		return NewBusinessRuleError("enter a valid status", domain.ErrInvalidEntryStatus)
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		if errors.Is(err, store.ErrMissingReference) {
			return NewBusinessRuleError(MsgMissingAccount, err)
		}
		if !errors.Is(err, store.ErrEntryNotFound) {
			log.Error("failed to update entry", "error", err, "entry_id", entry.ID)
		}
		return NewServiceError("entry", "update", "failed to update entry", err)
	}
	return nil
}

// Delete implements EntryService.
func (s *EntryServiceImpl) Delete(ctx context.Context, entry *domain.Entry) error {
	if entry == nil || entry.ID == 0 {
		return NewBusinessRuleError("entry must be saved before it can be deleted", domain.ErrInvalidID)
	}

	if err := s.entries.Delete(ctx, entry.ID); err != nil {
		if !errors.Is(err, store.ErrEntryNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete entry",
				"error", err,
				"entry_id", entry.ID)
		}
		return NewServiceError("entry", "delete", "failed to delete entry", err)
	}

	publish(ctx, s.logger, s.publisher, events.TypeEntryDeleted, entryChanged(entry))
	return nil
}

// Search implements EntryService.
func (s *EntryServiceImpl) Search(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	found, err := s.entries.Find(ctx, filter)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to search entries", "error", err)
		return nil, NewServiceError("entry", "search", "failed to search entries", err)
	}
	return found, nil
}

// UpdateStatus implements EntryService.
func (s *EntryServiceImpl) UpdateStatus(
	ctx context.Context,
	entry *domain.Entry,
	status domain.EntryStatus,
) (*domain.Entry, error) {
	if !status.IsValid() {
		return nil, NewBusinessRuleError("enter a valid status", domain.ErrInvalidEntryStatus)
	}
	if entry == nil {
		return nil, NewBusinessRuleError("entry must be saved before it can be changed", domain.ErrInvalidID)
	}

	previous := entry.Status
	entry.Status = status
	if err := s.update(ctx, entry); err != nil {
		entry.Status = previous
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("entry status changed",
		"entry_id", entry.ID,
		"from", previous,
		"to", status)
	publish(ctx, s.logger, s.publisher, events.TypeEntryStatusChanged, entryChanged(entry))
	return entry, nil
}

// GetByID implements EntryService.
func (s *EntryServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Entry, bool, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, NewServiceError("entry", "get", "failed to load entry", err)
	}
	return entry, true, nil
}

// Balance implements EntryService.
func (s *EntryServiceImpl) Balance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	income, err := s.entries.SumByType(ctx, accountID, domain.EntryTypeIncome, domain.EntryStatusSettled)
	if err != nil {
		return decimal.Zero, NewServiceError("entry", "balance", "failed to sum income", err)
	}
	expense, err := s.entries.SumByType(ctx, accountID, domain.EntryTypeExpense, domain.EntryStatusSettled)
	if err != nil {
		return decimal.Zero, NewServiceError("entry", "balance", "failed to sum expense", err)
	}
	return income.Sub(expense), nil
}
