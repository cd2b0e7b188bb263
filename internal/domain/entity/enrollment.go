package entity

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus tracks a student's standing in a course.
type EnrollmentStatus string

const (
	EnrollmentInProgress EnrollmentStatus = "IN_PROGRESS"
	EnrollmentCompleted  EnrollmentStatus = "COMPLETED"
)

// String returns the string representation of the EnrollmentStatus.
func (s EnrollmentStatus) String() string {
	return string(s)
}

// Enrollment records a student's registered participation in a course.
// The (UserID, CourseID) pair is unique; re-enrollment is rejected.
type Enrollment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CourseID  uuid.UUID
	Status    EnrollmentStatus
	Progress  float64 // Aggregate course completion percentage, 0-100.
	Course    *Course // Course summary, populated on list reads.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Progress is a per-lesson completion record. The (UserID, LessonID) pair is
// unique; completion events upsert the row.
type Progress struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	LessonID  uuid.UUID
	Completed bool
	UpdatedAt time.Time
}
