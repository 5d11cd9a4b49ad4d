package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/events"
	"github.com/reino/financas-api/internal/platform/logger"
	"github.com/reino/financas-api/internal/service/auth"
	"github.com/reino/financas-api/internal/store"
)

// AccountService covers authentication, registration and account lookup.
type AccountService interface {
	// Authenticate returns the account whose email and password match.
	// Fails with *AuthenticationError when the email is unknown or the
	// password does not match.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)

	// ValidateEmailAvailable fails with *BusinessRuleError when the email is
	// already registered.
	ValidateEmailAvailable(ctx context.Context, email string) error

	// RegisterAccount stores a new account and returns it with its assigned
	// ID. The candidate must not have an ID yet. Nothing is written when the
	// email is taken.
	RegisterAccount(ctx context.Context, candidate *domain.Account) (*domain.Account, error)

	// LookupByID returns (nil, false, nil) when no account has the ID.
	LookupByID(ctx context.Context, id int64) (*domain.Account, bool, error)
}

// AccountServiceImpl implements AccountService.
type AccountServiceImpl struct {
	accounts  store.AccountStore
	hasher    auth.PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
}

var _ AccountService = (*AccountServiceImpl)(nil)

// NewAccountService creates an AccountService. publisher may be nil.
func NewAccountService(
	accounts store.AccountStore,
	hasher auth.PasswordHasher,
	publisher events.Publisher,
	logger *slog.Logger,
) (*AccountServiceImpl, error) {
	if accounts == nil {
		return nil, fmt.Errorf("account store cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &AccountServiceImpl{
		accounts:  accounts,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger.With("component", "account_service"),
	}, nil
}

// Authenticate implements AccountService.
func (s *AccountServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug("authentication failed: unknown email")
			return nil, NewAuthenticationError(MsgAccountNotFound)
		}
		log.Error("failed to load account for authentication", "error", err)
		return nil, NewServiceError("account", "authenticate", "failed to load account", err)
	}

	if !s.hasher.Verify(password, account.HashedPassword) {
		log.Debug("authentication failed: password mismatch", "account_id", account.ID)
		return nil, NewAuthenticationError(MsgInvalidPassword)
	}

	log.Debug("account authenticated", "account_id", account.ID)
	return account, nil
}

// ValidateEmailAvailable implements AccountService.
func (s *AccountServiceImpl) ValidateEmailAvailable(ctx context.Context, email string) error {
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check email", "error", err)
		return NewServiceError("account", "validate email", "failed to check email", err)
	}
	if exists {
		return NewBusinessRuleError(MsgEmailTaken, ErrEmailTaken)
	}
	return nil
}

// RegisterAccount implements AccountService.
func (s *AccountServiceImpl) RegisterAccount(
	ctx context.Context,
	candidate *domain.Account,
) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if candidate == nil {
		return nil, NewBusinessRuleError("account data is required", domain.ErrValidation)
	}
	if !candidate.IsNew() {
		return nil, NewBusinessRuleError("account is already registered", domain.ErrInvalidID)
	}
	if err := candidate.Validate(); err != nil {
		return nil, NewBusinessRuleError(err.Error(), err)
	}

	if err := s.ValidateEmailAvailable(ctx, candidate.Email); err != nil {
		log.Debug("registration rejected", "error", err)
		return nil, err
	}

	// The caller's candidate keeps its plaintext; only the copy is stored.
	account := *candidate
	if account.Password != "" {
		digest, err := s.hasher.Hash(account.Password)
		if err != nil {
			log.Error("failed to hash password", "error", err)
			return nil, NewServiceError("account", "register", "failed to hash password", err)
		}
		account.HashedPassword = digest
		account.Password = ""
	}

	if err := s.accounts.Save(ctx, &account); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration lost race on email")
			return nil, NewBusinessRuleError(MsgEmailTaken, ErrEmailTaken)
		}
		log.Error("failed to save account", "error", err)
		return nil, NewServiceError("account", "register", "failed to save account", err)
	}

	log.Info("account registered", "account_id", account.ID)
	publish(ctx, s.logger, s.publisher, events.TypeAccountRegistered, events.AccountRegistered{
		AccountID: account.ID,
		Email:     account.Email,
	})
	return &account, nil
}

// LookupByID implements AccountService.
func (s *AccountServiceImpl) LookupByID(ctx context.Context, id int64) (*domain.Account, bool, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, false, nil
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load account",
			"error", err,
			"account_id", id)
		return nil, false, NewServiceError("account", "lookup", "failed to load account", err)
	}
	return account, true, nil
}
