package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrAccountNotFound", ErrAccountNotFound, true},
		{"wrapped ErrEntryNotFound", fmt.Errorf("failed to load entry: %w", ErrEntryNotFound), true},
		{"ErrEmailExists", ErrEmailExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("save: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrAccountNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewStoreError("account", "create", "insert failed", inner)

	assert.Equal(t, "create operation on account failed: insert failed: connection reset", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewStoreError("entry", "delete", "no rows", nil)
	assert.Equal(t, "delete operation on entry failed: no rows", bare.Error())
}
