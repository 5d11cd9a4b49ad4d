package api

import (
	"time"

	"github.com/reino/financas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=150"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Account AccountResponse `json:"account"`
	Token   string          `json:"token"`
}

// EntryRequest is the payload for creating or replacing an entry. The owner
// is always the authenticated account.
type EntryRequest struct {
	Description string          `json:"description" validate:"required,max=100"`
	Month       int             `json:"month"       validate:"required,gte=1,lte=12"`
	Year        int             `json:"year"        validate:"required,gte=1000,lte=9999"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"        validate:"required,oneof=income expense"`
	Status      string          `json:"status"      validate:"omitempty,oneof=pending settled cancelled"`
}

// StatusRequest is the payload for PATCH /api/entries/{id}/status.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending settled cancelled"`
}

// EntryResponse is the public view of an entry.
type EntryResponse struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BalanceResponse is returned by GET /api/accounts/{id}/balance.
type BalanceResponse struct {
	AccountID int64           `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

func accountToResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

func entryToResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
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
