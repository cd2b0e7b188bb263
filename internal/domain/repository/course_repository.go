package repository

import (
	"context"
	"errors"

	"campus/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCourseNotFound is returned when a course is not found.
var ErrCourseNotFound = errors.New("course not found")

// CourseRepository defines the operations for course persistence.
type CourseRepository interface {
	// Create persists a new course.
	Create(ctx context.Context, course *entity.Course) error

	// FindByID retrieves a course without its child tree.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error)

	// FindByIDWithTree retrieves a course with its sections and lessons,
	// both ordered by their order column.
	FindByIDWithTree(ctx context.Context, id uuid.UUID) (*entity.Course, error)

	// ListPublished retrieves all published courses.
	ListPublished(ctx context.Context) ([]*entity.Course, error)

	// ListByInstructorID retrieves every course owned by an instructor,
	// published or not.
	ListByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error)

	// Update modifies an existing course.
	Update(ctx context.Context, course *entity.Course) error

	// Delete removes a course row. Child rows are removed explicitly by the
	// caller beforehand; the store is not trusted to cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
