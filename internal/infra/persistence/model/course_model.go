package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CourseModel mirrors the 'courses' table.
type CourseModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	Category     string    `gorm:"type:varchar(50);not null"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Published    bool      `gorm:"not null;default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Instructor *UserModel     `gorm:"foreignKey:InstructorID"`
	Sections   []SectionModel `gorm:"foreignKey:CourseID"`
}

// TableName explicitly sets the table name for GORM.
func (CourseModel) TableName() string {
	return "courses"
}

// SectionModel mirrors the 'sections' table. Position is the zero-based
// ordinal within a course; siblings always hold a contiguous 0..n-1 run.
type SectionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Position    int       `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lessons []LessonModel `gorm:"foreignKey:SectionID"`
}

// TableName explicitly sets the table name for GORM.
func (SectionModel) TableName() string {
	return "sections"
}

// LessonModel mirrors the 'lessons' table. Content holds the type-specific
// payload as jsonb.
type LessonModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SectionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(255);not null"`
	Type      string          `gorm:"type:varchar(20);not null"`
	Content   json.RawMessage `gorm:"type:jsonb;not null"`
	Position  int             `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LessonModel) TableName() string {
	return "lessons"
}
