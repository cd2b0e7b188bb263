package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a course for browsing.
type Category string

const (
	CategoryWebDev    Category = "WEB_DEV"
	CategoryMobileDev Category = "MOBILE_DEV"
	CategoryDevOps    Category = "DEVOPS"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWebDev, CategoryMobileDev, CategoryDevOps:
		return true
	default:
		return false
	}
}

// Course is the root of the content hierarchy. It is owned by exactly one
// instructor; InstructorID never changes after creation. A course starts
// unpublished and is invisible to non-owners until published.
type Course struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Category     Category
	InstructorID uuid.UUID // Owning instructor. Immutable after creation.
	Instructor   *User     // Owning instructor record, populated on reads.
	Published    bool
	Sections     []*Section // Ordered child sections, populated on detail reads.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Section is an ordered grouping of lessons within a course. Order values of
// sibling sections form a contiguous zero-based sequence.
type Section struct {
	ID          uuid.UUID
	CourseID    uuid.UUID
	Title       string
	Description string
	Order       int
	Lessons     []*Lesson // Ordered child lessons, populated on detail reads.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
