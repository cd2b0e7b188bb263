package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentModel mirrors the 'enrollments' table. A user can enroll in a
// course at most once.
type EnrollmentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_course"`
	Status    string    `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`
	Progress  float64   `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Course *CourseModel `gorm:"foreignKey:CourseID"`
}

// TableName explicitly sets the table name for GORM.
func (EnrollmentModel) TableName() string {
	return "enrollments"
}

// ProgressModel mirrors the 'lesson_progress' table. One row per user and lesson.
type ProgressModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_lesson"`
	Completed bool      `gorm:"not null;default:false"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProgressModel) TableName() string {
	return "lesson_progress"
}
