// Package auth verifies the bearer tokens that authorize calendar requests.
// Tokens are issued by an external identity service sharing the HS256 secret.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService validates JWT access tokens.
type JWTService interface {
	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims holds the validated contents of an access token.
type Claims struct {
	// UserID is parsed from the subject claim.
	UserID    uuid.UUID
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
