// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. A user is either a student or an
// instructor; the role is fixed at registration and drives authorization.
type User struct {
	ID               uuid.UUID  // The unique identifier for the user.
	Email            string     // The user's login identifier, unique across the system.
	Name             string     // The user's display name.
	Role             Role       // STUDENT or INSTRUCTOR.
	PasswordHash     string     // bcrypt hash of the user's password.
	ResetTokenHash   *string    // SHA-256 hash of the outstanding password-reset token, nil when none.
	ResetTokenExpiry *time.Time // Expiry of the outstanding reset token, nil when none.
	CreatedAt        time.Time  // Timestamp of when this account was created.
	UpdatedAt        time.Time  // Timestamp of the last modification to this account.
}

// IsInstructor reports whether the user holds the instructor role.
func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// Owns reports whether the user is the owning instructor of the given course.
func (u *User) Owns(course *Course) bool {
	return course != nil && course.InstructorID == u.ID
}
