package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tells whether an entry credits or debits the account.
type EntryType string

// Entry types.
const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// EntryStatus is the settlement state of an entry.
type EntryStatus string

// Entry statuses.
const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusSettled   EntryStatus = "settled"
	EntryStatusCancelled EntryStatus = "cancelled"
)

var (
	ErrInvalidEntryType   = errors.New("invalid entry type")
	ErrInvalidEntryStatus = errors.New("invalid entry status")
)

// Entry is a single financial movement (a "lancamento") owned by an account.
type Entry struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	Type        EntryType       `json:"type"`
	Status      EntryStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFilter is a search-by-example template. Zero-valued fields do not
// constrain the result; Description matches as a case-insensitive substring.
type EntryFilter struct {
	AccountID   int64
	Description string
	Month       int
	Year        int
	Type        EntryType
	Status      EntryStatus
}

// Matches reports whether e satisfies every non-zero field of f.
func (f EntryFilter) Matches(e *Entry) bool {
	if f.AccountID != 0 && e.AccountID != f.AccountID {
		return false
	}
	if f.Description != "" &&
		!strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Description)) {
		return false
	}
	if f.Month != 0 && e.Month != f.Month {
		return false
	}
	if f.Year != 0 && e.Year != f.Year {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// IsValid reports whether s is a known entry status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPending, EntryStatusSettled, EntryStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseEntryType converts user input into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidEntryType
	}
	return t, nil
}

// ParseEntryStatus converts user input into an EntryStatus.
func ParseEntryStatus(s string) (EntryStatus, error) {
	st := EntryStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrInvalidEntryStatus
	}
	return st, nil
}
