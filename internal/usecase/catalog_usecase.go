// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"campus/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateCourseInput defines the data required to create a course.
type CreateCourseInput struct {
	Instructor  *entity.User
	Title       string
	Description string
	Category    entity.Category
}

// UpdateCourseInput defines the mutable fields of a course. Nil pointers leave
// the current value untouched.
type UpdateCourseInput struct {
	Actor       *entity.User
	CourseID    uuid.UUID
	Title       *string
	Description *string
	Category    *entity.Category
}

// CatalogUsecase defines the interface for course catalog operations.
type CatalogUsecase interface {
	// CreateCourse creates an unpublished course owned by the instructor.
	CreateCourse(ctx context.Context, input CreateCourseInput) (*entity.Course, error)

	// GetCourse retrieves a course with its full section and lesson tree.
	// Unpublished courses are visible to their owner only; actor may be nil
	// for anonymous reads.
	GetCourse(ctx context.Context, actor *entity.User, courseID uuid.UUID) (*entity.Course, error)

	// ListPublishedCourses retrieves every published course.
	ListPublishedCourses(ctx context.Context) ([]*entity.Course, error)

	// ListOwnCourses retrieves every course owned by the instructor.
	ListOwnCourses(ctx context.Context, instructor *entity.User) ([]*entity.Course, error)

	// UpdateCourse modifies a course's metadata. Owner only; ownership and
	// publication state are never changed here.
	UpdateCourse(ctx context.Context, input UpdateCourseInput) (*entity.Course, error)

	// DeleteCourse removes a course and all of its dependent records. Owner only.
	DeleteCourse(ctx context.Context, actor *entity.User, courseID uuid.UUID) error

	// SetPublished publishes or unpublishes a course. Owner only.
	SetPublished(ctx context.Context, actor *entity.User, courseID uuid.UUID, published bool) (*entity.Course, error)
}
