package handler

import (
	"log/slog"
	"net/http"

	"campus/internal/delivery/http/middleware"
	"campus/internal/delivery/http/response"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SectionHandler holds dependencies for section authoring handlers.
type SectionHandler struct {
	uc     usecase.CurriculumUsecase
	logger *slog.Logger
}

// NewSectionHandler is the constructor for SectionHandler, injected by Fx.
func NewSectionHandler(uc usecase.CurriculumUsecase, logger *slog.Logger) *SectionHandler {
	return &SectionHandler{
		uc:     uc,
		logger: logger,
	}
}

type createSectionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type updateSectionRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

type reorderRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// Create appends a section at the end of a course.
func (h *SectionHandler) Create(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid course ID")
	}

	var req createSectionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid section input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	section, err := h.uc.CreateSection(c.Request().Context(), usecase.CreateSectionInput{
		Actor:       middleware.CurrentUser(c),
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSectionResponse(section), "Section created successfully")
}

// List retrieves a course's sections with their lessons, in order.
func (h *SectionHandler) List(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid course ID")
	}

	sections, err := h.uc.ListSections(c.Request().Context(), middleware.CurrentUser(c), courseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSectionResponses(sections), "Sections retrieved successfully")
}

// Reorder applies a complete new ordering to a course's sections.
func (h *SectionHandler) Reorder(c echo.Context) error {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid course ID")
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reorder input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	sections, err := h.uc.ReorderSections(c.Request().Context(), usecase.ReorderInput{
		Actor:    middleware.CurrentUser(c),
		ParentID: courseID,
		IDs:      req.IDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSectionResponses(sections), "Sections reordered successfully")
}

// Update modifies a section's metadata.
func (h *SectionHandler) Update(c echo.Context) error {
	sectionID, err := uuid.Parse(c.Param("sectionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid section ID")
	}

	var req updateSectionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid section input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	section, err := h.uc.UpdateSection(c.Request().Context(), usecase.UpdateSectionInput{
		Actor:       middleware.CurrentUser(c),
		SectionID:   sectionID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSectionResponse(section), "Section updated successfully")
}

// Delete removes a section and its lessons, renumbering the remaining siblings.
func (h *SectionHandler) Delete(c echo.Context) error {
	sectionID, err := uuid.Parse(c.Param("sectionId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid section ID")
	}

	if err := h.uc.DeleteSection(c.Request().Context(), middleware.CurrentUser(c), sectionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Section deleted"}, "Section deleted successfully")
}
