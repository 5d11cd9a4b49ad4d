package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reino/financas-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestAuthenticationError(t *testing.T) {
	err := NewAuthenticationError(MsgInvalidPassword)
	assert.Equal(t, MsgInvalidPassword, err.Error())
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.NotErrorIs(t, err, ErrBusinessRule)

	wrapped := fmt.Errorf("login: %w", err)
	var authErr *AuthenticationError
	assert.True(t, errors.As(wrapped, &authErr))
}

func TestBusinessRuleError(t *testing.T) {
	plain := NewBusinessRuleError("rule", nil)
	assert.Equal(t, "rule", plain.Error())
	assert.ErrorIs(t, plain, ErrBusinessRule)

	caused := NewBusinessRuleError(MsgEmailTaken, ErrEmailTaken)
	assert.ErrorIs(t, caused, ErrBusinessRule)
	assert.ErrorIs(t, caused, ErrEmailTaken)
}

func TestServiceError(t *testing.T) {
	err := NewServiceError("entry", "update", "failed to update entry", store.ErrEntryNotFound)
	assert.Equal(t, "entry service update failed: failed to update entry: entity not found: entry", err.Error())
	assert.ErrorIs(t, err, store.ErrNotFound)

	bare := NewServiceError("account", "register", "boom", nil)
	assert.Equal(t, "account service register failed: boom", bare.Error())
}
