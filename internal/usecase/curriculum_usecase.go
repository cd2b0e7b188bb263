// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"encoding/json"

	"campus/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateSectionInput defines the data required to append a section to a course.
type CreateSectionInput struct {
	Actor       *entity.User
	CourseID    uuid.UUID
	Title       string
	Description string
}

// UpdateSectionInput defines the mutable fields of a section. Nil pointers
// leave the current value untouched.
type UpdateSectionInput struct {
	Actor       *entity.User
	SectionID   uuid.UUID
	Title       *string
	Description *string
}

// CreateLessonInput defines the data required to append a lesson to a section.
// Content arrives as raw JSON and is decoded against the lesson type.
type CreateLessonInput struct {
	Actor     *entity.User
	SectionID uuid.UUID
	Title     string
	Type      entity.LessonType
	Content   json.RawMessage
}

// UpdateLessonInput defines the mutable fields of a lesson. Nil pointers leave
// the current value untouched.
type UpdateLessonInput struct {
	Actor    *entity.User
	LessonID uuid.UUID
	Title    *string
	Type     *entity.LessonType
	Content  json.RawMessage
}

// ReorderInput carries the complete desired ordering of sibling items. The ID
// list must be a permutation of the current siblings.
type ReorderInput struct {
	Actor    *entity.User
	ParentID uuid.UUID
	IDs      []uuid.UUID
}

// --- Output DTOs ---

// LessonDetailOutput returns a lesson together with its parent section and
// course, so readers can render breadcrumb navigation from a single fetch.
type LessonDetailOutput struct {
	Lesson  *entity.Lesson
	Section *entity.Section
	Course  *entity.Course
}

// CurriculumUsecase defines the interface for section and lesson authoring.
// All mutations are owner-only and keep sibling order values contiguous.
type CurriculumUsecase interface {
	// CreateSection appends a section at the end of a course.
	CreateSection(ctx context.Context, input CreateSectionInput) (*entity.Section, error)

	// ListSections retrieves a course's sections with their lessons, in order.
	// Visibility follows the course: unpublished courses are owner-only.
	ListSections(ctx context.Context, actor *entity.User, courseID uuid.UUID) ([]*entity.Section, error)

	// UpdateSection modifies a section's metadata.
	UpdateSection(ctx context.Context, input UpdateSectionInput) (*entity.Section, error)

	// DeleteSection removes a section and its lessons, then renumbers the
	// remaining siblings to a contiguous zero-based sequence.
	DeleteSection(ctx context.Context, actor *entity.User, sectionID uuid.UUID) error

	// ReorderSections applies a complete new ordering to a course's sections.
	ReorderSections(ctx context.Context, input ReorderInput) ([]*entity.Section, error)

	// CreateLesson appends a lesson at the end of a section.
	CreateLesson(ctx context.Context, input CreateLessonInput) (*entity.Lesson, error)

	// GetLesson retrieves a single lesson with its section and course
	// breadcrumbs. Visibility follows the course.
	GetLesson(ctx context.Context, actor *entity.User, lessonID uuid.UUID) (*LessonDetailOutput, error)

	// UpdateLesson modifies a lesson's metadata and content.
	UpdateLesson(ctx context.Context, input UpdateLessonInput) (*entity.Lesson, error)

	// DeleteLesson removes a lesson, then renumbers the remaining siblings to
	// a contiguous zero-based sequence.
	DeleteLesson(ctx context.Context, actor *entity.User, lessonID uuid.UUID) error

	// ReorderLessons applies a complete new ordering to a section's lessons.
	ReorderLessons(ctx context.Context, input ReorderInput) ([]*entity.Lesson, error)
}
