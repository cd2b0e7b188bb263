// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a long-lived, authorized user session. It is used to
// obtain a new access token after the old one expires, without requiring
// credentials. The raw opaque secret is never persisted, only its SHA-256 hash.
type RefreshToken struct {
	ID        uuid.UUID  // The unique ID for this specific refresh token record.
	UserID    uuid.UUID  // Links this session to the User it belongs to.
	TokenHash string     // SHA-256 hash of the raw token for secure comparison in the database.
	ExpiresAt time.Time  // The exact time when this refresh token becomes invalid.
	RevokedAt *time.Time // Set when the token is revoked by rotation or logout, nil while active.
	CreatedAt time.Time  // Timestamp of when this session was created.
}

// Active reports whether the token is neither revoked nor expired at the given time.
func (t *RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}
