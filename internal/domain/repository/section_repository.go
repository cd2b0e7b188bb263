package repository

import (
	"context"
	"errors"

	"campus/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSectionNotFound is returned when a section is not found.
var ErrSectionNotFound = errors.New("section not found")

// SectionRepository defines the operations for section persistence.
type SectionRepository interface {
	// Create persists a new section.
	Create(ctx context.Context, section *entity.Section) error

	// FindByID retrieves a section without its lessons.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Section, error)

	// ListByCourseID retrieves all sections of a course ordered by their
	// order column, each with its lessons ordered likewise.
	ListByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Section, error)

	// MaxOrder returns the highest order value among a course's sections,
	// or -1 when the course has none.
	MaxOrder(ctx context.Context, courseID uuid.UUID) (int, error)

	// Update modifies an existing section.
	Update(ctx context.Context, section *entity.Section) error

	// UpdateOrder sets the order column of a single section.
	UpdateOrder(ctx context.Context, id uuid.UUID, order int) error

	// Delete removes a section row.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCourseID removes every section of a course.
	DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error
}
