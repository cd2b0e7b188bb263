package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LessonType discriminates how a lesson's content is shaped and rendered.
type LessonType string

const (
	LessonTypeText     LessonType = "TEXT"
	LessonTypeVideo    LessonType = "VIDEO"
	LessonTypeQuiz     LessonType = "QUIZ"
	LessonTypeExercise LessonType = "EXERCISE"
	LessonTypeCode     LessonType = "CODE"
)

// String returns the string representation of the LessonType.
func (t LessonType) String() string {
	return string(t)
}

// IsValid checks if the LessonType is a valid value.
func (t LessonType) IsValid() bool {
	switch t {
	case LessonTypeText, LessonTypeVideo, LessonTypeQuiz, LessonTypeExercise, LessonTypeCode:
		return true
	default:
		return false
	}
}

// Lesson is a single unit of content within a section. Order values of
// sibling lessons form a contiguous zero-based sequence.
type Lesson struct {
	ID        uuid.UUID
	SectionID uuid.UUID
	Title     string
	Type      LessonType
	Content   LessonContent
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuizQuestion is a single multiple-choice question in a QUIZ lesson.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// LessonContent is the typed content payload of a lesson. Exactly the fields
// belonging to the lesson's declared type must be populated; Validate enforces
// the shape. It serializes to a single JSON object so the frontend can
// discriminate rendering on the lesson type alone.
type LessonContent struct {
	// TEXT
	Text string `json:"text,omitempty"`

	// VIDEO
	VideoURL string `json:"videoUrl,omitempty"`

	// QUIZ
	Questions []QuizQuestion `json:"questions,omitempty"`

	// EXERCISE
	Instructions []string `json:"instructions,omitempty"`
	StarterCode  string   `json:"starterCode,omitempty"`
	Solution     string   `json:"solution,omitempty"`
	Hints        []string `json:"hints,omitempty"`

	// CODE
	Language string `json:"language,omitempty"`
	Code     string `json:"code,omitempty"`
}

// DecodeLessonContent parses a raw JSON content payload. A bare JSON string is
// wrapped as {"text": value} so legacy plain-text lessons keep working.
func DecodeLessonContent(raw json.RawMessage) (LessonContent, error) {
	var content LessonContent
	if len(raw) == 0 {
		return content, nil
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		content.Text = plain

		return content, nil
	}

	if err := json.Unmarshal(raw, &content); err != nil {
		return LessonContent{}, errors.Wrap(err, "failed to decode lesson content")
	}

	return content, nil
}

// Validate checks that the content shape matches the declared lesson type.
func (c LessonContent) Validate(lessonType LessonType) error {
	switch lessonType {
	case LessonTypeText:
		if c.Text == "" {
			return errors.New("text lesson requires a text body")
		}
	case LessonTypeVideo:
		if c.VideoURL == "" {
			return errors.New("video lesson requires a video url")
		}
	case LessonTypeQuiz:
		if len(c.Questions) == 0 {
			return errors.New("quiz lesson requires at least one question")
		}
		for i, q := range c.Questions {
			if q.Question == "" {
				return errors.Errorf("quiz question %d is missing its prompt", i)
			}
			if len(q.Options) < 2 {
				return errors.Errorf("quiz question %d requires at least two options", i)
			}
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
				return errors.Errorf("quiz question %d has correctAnswer out of range", i)
			}
		}
	case LessonTypeExercise:
		if len(c.Instructions) == 0 {
			return errors.New("exercise lesson requires instructions")
		}
	case LessonTypeCode:
		if c.Code == "" {
			return errors.New("code lesson requires a code body")
		}
	default:
		return errors.Errorf("unknown lesson type %q", lessonType)
	}

	return nil
}
