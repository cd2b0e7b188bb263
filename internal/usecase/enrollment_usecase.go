// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"campus/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Output DTOs ---

// ProgressOutput returns the updated per-lesson record and the recomputed
// course aggregate after a progress event.
type ProgressOutput struct {
	Lesson     *entity.Progress
	Enrollment *entity.Enrollment
}

// EnrollmentUsecase defines the interface for enrollment, progress tracking
// and gated content delivery.
type EnrollmentUsecase interface {
	// Enroll registers a student in a published course.
	Enroll(ctx context.Context, student *entity.User, courseID uuid.UUID) (*entity.Enrollment, error)

	// ListEnrollments retrieves the student's enrollments with course summaries.
	ListEnrollments(ctx context.Context, student *entity.User) ([]*entity.Enrollment, error)

	// RecordProgress marks a lesson completed or not for an enrolled student
	// and recomputes the course aggregate.
	RecordProgress(ctx context.Context, student *entity.User, lessonID uuid.UUID, completed bool) (*ProgressOutput, error)

	// GetLessonContent returns a lesson's content for users who own the
	// course or are enrolled in it.
	GetLessonContent(ctx context.Context, actor *entity.User, lessonID uuid.UUID) (*entity.Lesson, error)
}
