// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"campus/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for refresh token persistence.
var (
	// ErrRefreshTokenNotFound is returned when a refresh token is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenExpired is returned when a refresh token has expired.
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
	// ErrRefreshTokenRevoked is returned when a refresh token was already revoked.
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
)

// RefreshTokenRepository defines the interface for refresh token session management.
type RefreshTokenRepository interface {
	// Create persists a new refresh token, representing a user session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindActiveByHash retrieves an unrevoked, unexpired refresh token by its
	// securely stored hash. Revoked or expired matches surface as
	// ErrRefreshTokenRevoked / ErrRefreshTokenExpired.
	FindActiveByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// Revoke marks a single token revoked. Revoking an already-revoked token
	// is a no-op success.
	Revoke(ctx context.Context, id uuid.UUID) error

	// RevokeByHash marks the token with the given hash revoked. Idempotent:
	// unknown or already-revoked hashes are a no-op success.
	RevokeByHash(ctx context.Context, tokenHash string) error

	// RevokeAllByUserID marks every unrevoked token of a user revoked.
	// Used on login (single active session policy) and logout-everywhere.
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID) error
}
