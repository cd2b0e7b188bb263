package handler

import (
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

// CourseHandler holds dependencies for course catalog and enrollment handlers.
type CourseHandler struct {
	catalogUC    usecase.CatalogUsecase
	enrollmentUC usecase.EnrollmentUsecase
	logger       *slog.Logger
}

// NewCourseHandler is the constructor for CourseHandler, injected by Fx.
func NewCourseHandler(catalogUC usecase.CatalogUsecase, enrollmentUC usecase.EnrollmentUsecase, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		catalogUC:    catalogUC,
		enrollmentUC: enrollmentUC,
		logger:       logger,
	}
}

type createCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=WEB_DEV MOBILE_DEV DEVOPS"`
}

type updateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,oneof=WEB_DEV MOBILE_DEV DEVOPS"`
}

type publishCourseRequest struct {
	Published *bool `json:"published" validate:"required"`
}

// ListPublic lists published courses without requiring authentication.
func (h *CourseHandler) ListPublic(c echo.Context) error {
	courses, err := h.catalogUC.ListPublishedCourses(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCourseResponses(courses), "Courses retrieved successfully")
}

// ListPublished lists published courses for an authenticated user.
func (h *CourseHandler) ListPublished(c echo.Context) error {
	courses, err := h.catalogUC.ListPublishedCourses(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCourseResponses(courses), "Courses retrieved successfully")
}

// ListOwn lists every course owned by the authenticated instructor.
func (h *CourseHandler) ListOwn(c echo.Context) error {
	courses, err := h.catalogUC.ListOwnCourses(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCourseResponses(courses), "Courses retrieved successfully")
}

// Create handles course creation by an instructor.
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	course, err := h.catalogUC.CreateCourse(c.Request().Context(), usecase.CreateCourseInput{
		Instructor:  middleware.CurrentUser(c),
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.Category(req.Category),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCourseResponse(course), "Course created successfully")
}

// Get retrieves a course with its full section and lesson tree.
func (h *CourseHandler) Get(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid course ID")
	}

	course, err := h.catalogUC.GetCourse(c.Request().Context(), middleware.CurrentUser(c), courseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCourseResponse(course), "Course retrieved successfully")
}

// Update modifies a course's metadata.
func (h *CourseHandler) Update(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid course ID")
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid course input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := usecase.UpdateCourseInput{
		Actor:       middleware.CurrentUser(c),
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Category != nil {
		category := entity.Category(*req.Category)
		input.Category = &category
	}

	course, err := h.catalogUC.UpdateCourse(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCourseResponse(course), "Course updated successfully")
}

// Delete removes a course and everything beneath it.
func (h *CourseHandler) Delete(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid course ID")
	}

	if err := h.catalogUC.DeleteCourse(c.Request().Context(), middleware.CurrentUser(c), courseID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Course deleted"}, "Course deleted successfully")
}

// SetPublished publishes or unpublishes a course.
func (h *CourseHandler) SetPublished(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid course ID")
	}

	var req publishCourseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid publish input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	course, err := h.catalogUC.SetPublished(c.Request().Context(), middleware.CurrentUser(c), courseID, *req.Published)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCourseResponse(course), "Course publication updated successfully")
}

// Enroll registers the authenticated user in a published course.
func (h *CourseHandler) Enroll(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid course ID")
	}

	enrollment, err := h.enrollmentUC.Enroll(c.Request().Context(), middleware.CurrentUser(c), courseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toEnrollmentResponse(enrollment), "Enrolled successfully")
}

// ListEnrollments lists the authenticated user's enrollments with course summaries.
func (h *CourseHandler) ListEnrollments(c echo.Context) error {
	enrollments, err := h.enrollmentUC.ListEnrollments(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toEnrollmentResponses(enrollments), "Enrollments retrieved successfully")
}
