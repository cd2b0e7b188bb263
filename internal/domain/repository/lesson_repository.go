package repository

import (
	"context"
	"errors"

	"campus/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLessonNotFound is returned when a lesson is not found.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonRepository defines the operations for lesson persistence.
type LessonRepository interface {
	// Create persists a new lesson.
	Create(ctx context.Context, lesson *entity.Lesson) error

	// FindByID retrieves a single lesson.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error)

	// ListBySectionID retrieves all lessons of a section ordered by their
	// order column.
	ListBySectionID(ctx context.Context, sectionID uuid.UUID) ([]*entity.Lesson, error)

	// MaxOrder returns the highest order value among a section's lessons,
	// or -1 when the section has none.
	MaxOrder(ctx context.Context, sectionID uuid.UUID) (int, error)

	// CountByCourseID counts every lesson under a course, across all its
	// sections. Used to derive aggregate course progress.
	CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error)

	// Update modifies an existing lesson.
	Update(ctx context.Context, lesson *entity.Lesson) error

	// UpdateOrder sets the order column of a single lesson.
	UpdateOrder(ctx context.Context, id uuid.UUID, order int) error

	// Delete removes a lesson row.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteBySectionID removes every lesson of a section.
	DeleteBySectionID(ctx context.Context, sectionID uuid.UUID) error

	// DeleteByCourseID removes every lesson under a course.
	DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error
}
