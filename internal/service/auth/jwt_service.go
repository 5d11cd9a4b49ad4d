package auth

import (
	"context"
	"time"
)

// JWTService issues and validates signed access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the account.
	GenerateToken(ctx context.Context, accountID int64) (string, error)

	// ValidateToken checks signature and lifetime and returns the claims.
	// Fails with ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	AccountID int64
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
