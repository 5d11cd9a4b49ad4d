package mocks

import (
	"errors"

	"github.com/reino/financas-api/internal/service/auth"
)

// MockPasswordHasher is a reversible, fast PasswordHasher. Digests are the
// password prefixed with "hashed:".
type MockPasswordHasher struct {
	HashErr error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

const hashPrefix = "hashed:"

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	if password == "" {
		return "", errors.New("empty password")
	}
	return hashPrefix + password, nil
}

// Verify implements auth.PasswordHasher.
func (m *MockPasswordHasher) Verify(password, digest string) bool {
	return digest == hashPrefix+password
}
