package domain

import (
	"errors"
	"strings"
	"time"
)

// Validation errors for Account.
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrLongPassword  = errors.New("password is too long")
)

// MaxPasswordBytes is the longest password bcrypt accepts, counted in bytes.
const MaxPasswordBytes = 72

// Account is a registered user. ID is assigned by the store on first save;
// zero means the account has not been persisted yet.
type Account struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // plaintext, only set on input
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAccount builds an unsaved account candidate and validates it.
func NewAccount(name, email, password string) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// IsNew reports whether the account has not been stored yet.
func (a *Account) IsNew() bool {
	return a.ID == 0
}

// Validate checks the account fields. A plaintext password is required only
// while no hash is present.
func (a *Account) Validate() error {
	if a.Name == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyName)
	}
	if a.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrEmptyEmail)
	}
	if !validateEmailFormat(a.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	if a.Password == "" && a.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty", ErrEmptyPassword)
	}
	if len(a.Password) > MaxPasswordBytes {
		return NewValidationError("password", "must be at most 72 bytes", ErrLongPassword)
	}
	return nil
}

// validateEmailFormat is a shallow shape check: one '@', a non-empty local
// part and a dotted domain. Full RFC 5322 checking happens at the API edge.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}

	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
