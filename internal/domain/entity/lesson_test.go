package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLessonContent_BareStringBecomesText(t *testing.T) {
	content, err := DecodeLessonContent(json.RawMessage(`"just a plain body"`))
	require.NoError(t, err)
	assert.Equal(t, "just a plain body", content.Text)
}

func TestDecodeLessonContent_ObjectPayload(t *testing.T) {
	raw := json.RawMessage(`{"videoUrl":"https://videos.example.com/intro.mp4"}`)

	content, err := DecodeLessonContent(raw)
	require.NoError(t, err)
	assert.Equal(t, "https://videos.example.com/intro.mp4", content.VideoURL)
	assert.Empty(t, content.Text)
}

func TestDecodeLessonContent_EmptyPayload(t *testing.T) {
	content, err := DecodeLessonContent(nil)
	require.NoError(t, err)
	assert.Equal(t, LessonContent{}, content)
}

func TestDecodeLessonContent_MalformedPayload(t *testing.T) {
	_, err := DecodeLessonContent(json.RawMessage(`{broken`))
	assert.Error(t, err)
}

func TestLessonContent_ValidatePerType(t *testing.T) {
	tests := []struct {
		name    string
		content LessonContent
		typ     LessonType
		wantErr bool
	}{
		{"text with body", LessonContent{Text: "body"}, LessonTypeText, false},
		{"text without body", LessonContent{}, LessonTypeText, true},
		{"video with url", LessonContent{VideoURL: "https://v.example.com/1"}, LessonTypeVideo, false},
		{"video without url", LessonContent{Text: "nope"}, LessonTypeVideo, true},
		{"exercise with instructions", LessonContent{Instructions: []string{"do it"}}, LessonTypeExercise, false},
		{"exercise without instructions", LessonContent{StarterCode: "x := 1"}, LessonTypeExercise, true},
		{"code with body", LessonContent{Language: "go", Code: "package main"}, LessonTypeCode, false},
		{"code without body", LessonContent{Language: "go"}, LessonTypeCode, true},
		{"unknown type", LessonContent{Text: "body"}, LessonType("PODCAST"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.content.Validate(tt.typ)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLessonContent_ValidateQuiz(t *testing.T) {
	valid := LessonContent{Questions: []QuizQuestion{{
		Question:      "What does := do?",
		Options:       []string{"declares and assigns", "compares"},
		CorrectAnswer: 0,
	}}}
	assert.NoError(t, valid.Validate(LessonTypeQuiz))

	empty := LessonContent{}
	assert.Error(t, empty.Validate(LessonTypeQuiz))

	missingPrompt := LessonContent{Questions: []QuizQuestion{{
		Options:       []string{"a", "b"},
		CorrectAnswer: 0,
	}}}
	assert.Error(t, missingPrompt.Validate(LessonTypeQuiz))

	tooFewOptions := LessonContent{Questions: []QuizQuestion{{
		Question:      "Pick one",
		Options:       []string{"only"},
		CorrectAnswer: 0,
	}}}
	assert.Error(t, tooFewOptions.Validate(LessonTypeQuiz))

	answerOutOfRange := LessonContent{Questions: []QuizQuestion{{
		Question:      "Pick one",
		Options:       []string{"a", "b"},
		CorrectAnswer: 2,
	}}}
	assert.Error(t, answerOutOfRange.Validate(LessonTypeQuiz))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleStudent.IsValid())
	assert.True(t, RoleInstructor.IsValid())
	assert.False(t, Role("ADMIN").IsValid())
}

func TestUser_Owns(t *testing.T) {
	owner := &User{ID: uuid.New(), Role: RoleInstructor}

	course := &Course{InstructorID: owner.ID}
	assert.True(t, owner.Owns(course))
	assert.False(t, owner.Owns(&Course{}))
	assert.False(t, owner.Owns(nil))
}
