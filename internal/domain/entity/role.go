// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleStudent indicates a learner who enrolls in courses.
	RoleStudent Role = "STUDENT"
	// RoleInstructor indicates a course author who owns and publishes courses.
	RoleInstructor Role = "INSTRUCTOR"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleInstructor:
		return true
	default:
		return false
	}
}
