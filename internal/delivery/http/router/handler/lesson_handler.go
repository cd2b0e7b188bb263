package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"campus/internal/delivery/http/middleware"
	"campus/internal/delivery/http/response"
	"campus/internal/domain/entity"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LessonHandler holds dependencies for lesson authoring, progress tracking
// and content delivery handlers.
type LessonHandler struct {
	curriculumUC usecase.CurriculumUsecase
	enrollmentUC usecase.EnrollmentUsecase
	logger       *slog.Logger
}

// NewLessonHandler is the constructor for LessonHandler, injected by Fx.
func NewLessonHandler(curriculumUC usecase.CurriculumUsecase, enrollmentUC usecase.EnrollmentUsecase, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		curriculumUC: curriculumUC,
		enrollmentUC: enrollmentUC,
		logger:       logger,
	}
}

type createLessonRequest struct {
	Title   string          `json:"title" validate:"required"`
	Type    string          `json:"type" validate:"required,oneof=TEXT VIDEO QUIZ EXERCISE CODE"`
	Content json.RawMessage `json:"content" validate:"required"`
}

type updateLessonRequest struct {
	Title   *string         `json:"title" validate:"omitempty,min=1"`
	Type    *string         `json:"type" validate:"omitempty,oneof=TEXT VIDEO QUIZ EXERCISE CODE"`
	Content json.RawMessage `json:"content"`
}

type recordProgressRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type progressOutputResponse struct {
	Progress   progressResponse   `json:"progress"`
	Enrollment enrollmentResponse `json:"enrollment"`
}

// Create appends a lesson at the end of a section.
func (h *LessonHandler) Create(c echo.Context) error {
	sectionID, err := uuid.Parse(c.Param("sectionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid section ID")
	}

	var req createLessonRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lesson input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	lesson, err := h.curriculumUC.CreateLesson(c.Request().Context(), usecase.CreateLessonInput{
		Actor:     middleware.CurrentUser(c),
		SectionID: sectionID,
		Title:     req.Title,
		Type:      entity.LessonType(req.Type),
		Content:   req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toLessonResponse(lesson), "Lesson created successfully")
}

// Reorder applies a complete new ordering to a section's lessons.
func (h *LessonHandler) Reorder(c echo.Context) error {
	sectionID, err := uuid.Parse(c.Param("sectionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid section ID")
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reorder input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	lessons, err := h.curriculumUC.ReorderLessons(c.Request().Context(), usecase.ReorderInput{
		Actor:    middleware.CurrentUser(c),
		ParentID: sectionID,
		IDs:      req.IDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLessonResponses(lessons), "Lessons reordered successfully")
}

// Get retrieves a single lesson with its section and course breadcrumbs.
func (h *LessonHandler) Get(c echo.Context) error {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lesson ID")
	}

	detail, err := h.curriculumUC.GetLesson(c.Request().Context(), middleware.CurrentUser(c), lessonID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLessonDetailResponse(detail), "Lesson retrieved successfully")
}

// Update modifies a lesson's metadata and content.
func (h *LessonHandler) Update(c echo.Context) error {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lesson ID")
	}

	var req updateLessonRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lesson input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := usecase.UpdateLessonInput{
		Actor:    middleware.CurrentUser(c),
		LessonID: lessonID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if req.Type != nil {
		lessonType := entity.LessonType(*req.Type)
		input.Type = &lessonType
	}

	lesson, err := h.curriculumUC.UpdateLesson(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLessonResponse(lesson), "Lesson updated successfully")
}

// Delete removes a lesson, renumbering the remaining siblings.
func (h *LessonHandler) Delete(c echo.Context) error {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lesson ID")
	}

	if err := h.curriculumUC.DeleteLesson(c.Request().Context(), middleware.CurrentUser(c), lessonID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Lesson deleted"}, "Lesson deleted successfully")
}

// RecordProgress marks a lesson completed or not for the authenticated user.
func (h *LessonHandler) RecordProgress(c echo.Context) error {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lesson ID")
	}

	var req recordProgressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid progress input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.enrollmentUC.RecordProgress(c.Request().Context(), middleware.CurrentUser(c), lessonID, *req.Completed)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, progressOutputResponse{
		Progress:   toProgressResponse(output.Lesson),
		Enrollment: toEnrollmentResponse(output.Enrollment),
	}, "Progress recorded successfully")
}

// GetContent returns a lesson's typed content for the owner or an enrolled user.
func (h *LessonHandler) GetContent(c echo.Context) error {
	lessonID, err := uuid.Parse(c.Param("lessonId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lesson ID")
	}

	lesson, err := h.enrollmentUC.GetLessonContent(c.Request().Context(), middleware.CurrentUser(c), lessonID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLessonResponse(lesson), "Lesson content retrieved successfully")
}
