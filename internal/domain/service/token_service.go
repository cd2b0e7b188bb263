package service

import (
	"time"

	"campus/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims embedded in access tokens. The identity
// fields mirror what the frontend needs to render without extra round trips.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for the session issuer's token primitives.
// Access tokens are signed and stateless; refresh tokens are opaque random
// secrets persisted by hash.
type TokenService interface {
	// GenerateAccessToken creates a signed, short-lived access token for a user.
	GenerateAccessToken(user *entity.User) (string, error)

	// ValidateAccessToken checks a token string and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// NewOpaqueToken generates a cryptographically random opaque secret,
	// used for refresh and password-reset tokens.
	NewOpaqueToken() (string, error)

	// HashToken returns the SHA-256 hex digest of a raw opaque token for
	// secure storage and lookup.
	HashToken(raw string) string

	// RefreshTokenDuration returns the configured lifetime of refresh tokens.
	RefreshTokenDuration() time.Duration
}
