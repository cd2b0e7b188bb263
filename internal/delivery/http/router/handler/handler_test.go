package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpvalidator "campus/internal/delivery/http/validator"
	"campus/internal/domain/entity"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestCourseHandler_Get_InvalidCourseID(t *testing.T) {
	handler := &CourseHandler{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/courses/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	handler := &AuthHandler{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{broken"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

// stubAccount overrides only Register; the embedded interface panics on
// anything else, which would mark the test as broken.
type stubAccount struct {
	usecase.AccountUsecase
	output *usecase.RegisterOutput
}

func (s *stubAccount) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return s.output, nil
}

func TestAuthHandler_Register_ReturnsTokenPair(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "ada@example.com", Name: "Ada", Role: entity.RoleStudent}
	handler := &AuthHandler{uc: &stubAccount{output: &usecase.RegisterOutput{
		User:         user,
		AccessToken:  "signed.jwt",
		RefreshToken: "raw-refresh",
	}}}

	e := echo.New()
	e.Validator = httpvalidator.New()
	body := `{"name":"Ada","email":"ada@example.com","password":"secret-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "accessToken")
	assert.Contains(t, rec.Body.String(), "refreshToken")
	assert.Contains(t, rec.Body.String(), "raw-refresh")
	assert.Contains(t, rec.Body.String(), user.ID.String())
}

// stubCatalog overrides only the listing method; the embedded interface
// panics on anything else, which would mark the test as broken.
type stubCatalog struct {
	usecase.CatalogUsecase
	courses []*entity.Course
}

func (s *stubCatalog) ListPublishedCourses(ctx context.Context) ([]*entity.Course, error) {
	return s.courses, nil
}

func TestCourseHandler_ListPublic(t *testing.T) {
	teacher := &entity.User{ID: uuid.New(), Name: "Grace", Role: entity.RoleInstructor}
	course := &entity.Course{
		ID:           uuid.New(),
		Title:        "Go from scratch",
		Category:     entity.CategoryWebDev,
		InstructorID: teacher.ID,
		Instructor:   teacher,
		Published:    true,
	}
	handler := &CourseHandler{catalogUC: &stubCatalog{courses: []*entity.Course{course}}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/courses/public", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.ListPublic(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go from scratch")
	assert.Contains(t, rec.Body.String(), course.ID.String())
	assert.Contains(t, rec.Body.String(), `"instructor":{"id":"`+teacher.ID.String()+`","name":"Grace"}`)
	assert.NotContains(t, rec.Body.String(), "PasswordHash")
}

// stubCurriculum overrides only the single-lesson read.
type stubCurriculum struct {
	usecase.CurriculumUsecase
	detail *usecase.LessonDetailOutput
}

func (s *stubCurriculum) GetLesson(ctx context.Context, actor *entity.User, lessonID uuid.UUID) (*usecase.LessonDetailOutput, error) {
	return s.detail, nil
}

func TestLessonHandler_Get_IncludesBreadcrumbs(t *testing.T) {
	course := &entity.Course{ID: uuid.New(), Title: "Go from scratch", Published: true}
	section := &entity.Section{ID: uuid.New(), CourseID: course.ID, Title: "Basics"}
	lesson := &entity.Lesson{
		ID:        uuid.New(),
		SectionID: section.ID,
		Title:     "Variables",
		Type:      entity.LessonTypeText,
		Content:   entity.LessonContent{Text: "body"},
	}
	handler := &LessonHandler{curriculumUC: &stubCurriculum{detail: &usecase.LessonDetailOutput{
		Lesson:  lesson,
		Section: section,
		Course:  course,
	}}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/lessons/lesson/"+lesson.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("lessonId")
	c.SetParamValues(lesson.ID.String())

	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"section":{"id":"`+section.ID.String()+`","title":"Basics"}`)
	assert.Contains(t, rec.Body.String(), `"course":{"id":"`+course.ID.String()+`","title":"Go from scratch"}`)
}

func TestLessonHandler_RecordProgress_InvalidLessonID(t *testing.T) {
	handler := &LessonHandler{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/lessons/lesson/nope/progress", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("lessonId")
	c.SetParamValues("nope")

	require.NoError(t, handler.RecordProgress(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
