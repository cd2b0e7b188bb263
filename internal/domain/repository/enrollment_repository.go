package repository

import (
	"context"

	"campus/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for enrollment persistence.
var (
	// ErrEnrollmentNotFound is returned when no enrollment exists for a pair.
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	// ErrEnrollmentExists is returned when the (user, course) pair is already enrolled.
	ErrEnrollmentExists = errors.New("enrollment already exists")
)

// EnrollmentRepository defines the operations for enrollment persistence.
type EnrollmentRepository interface {
	// Create persists a new enrollment. The (UserID, CourseID) pair is
	// guarded by a unique constraint; violations surface as ErrEnrollmentExists.
	Create(ctx context.Context, enrollment *entity.Enrollment) error

	// FindByUserAndCourse retrieves the enrollment for a (user, course) pair.
	FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*entity.Enrollment, error)

	// ListByUserID retrieves all enrollments of a user with course summaries.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error)

	// Update modifies an existing enrollment (progress and status).
	Update(ctx context.Context, enrollment *entity.Enrollment) error

	// DeleteByCourseID removes every enrollment of a course.
	DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error
}

// ProgressRepository defines the operations for per-lesson progress persistence.
type ProgressRepository interface {
	// Upsert creates or updates the progress row for the (user, lesson) pair.
	Upsert(ctx context.Context, progress *entity.Progress) error

	// CountCompletedByUserAndCourse counts the user's completed lessons
	// under a course, across all its sections.
	CountCompletedByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (int64, error)

	// DeleteByCourseID removes every progress row for lessons under a course.
	DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error
}
