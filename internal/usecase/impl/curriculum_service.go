package impl

import (
	"context"
	"log/slog"

	deliverycontext "campus/internal/delivery/context"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// curriculumService implements the CurriculumUsecase interface. Every mutation
// preserves the sibling ordering invariant: order values within a parent stay
// a contiguous zero-based sequence.
type curriculumService struct {
	txManager   repository.TransactionManager
	courseRepo  repository.CourseRepository
	sectionRepo repository.SectionRepository
	lessonRepo  repository.LessonRepository
	logger      *slog.Logger
}

// CurriculumServiceParams holds dependencies for curriculumService, injected by Fx.
type CurriculumServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CourseRepo  repository.CourseRepository
	SectionRepo repository.SectionRepository
	LessonRepo  repository.LessonRepository
	Logger      *slog.Logger
}

// NewCurriculumService is the constructor for curriculumService.
func NewCurriculumService(params CurriculumServiceParams) usecase.CurriculumUsecase {
	return &curriculumService{
		txManager:   params.TxManager,
		courseRepo:  params.CourseRepo,
		sectionRepo: params.SectionRepo,
		lessonRepo:  params.LessonRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *curriculumService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// --- Sections ---

// CreateSection appends a section at the end of a course.
func (srv *curriculumService) CreateSection(ctx context.Context, input usecase.CreateSectionInput) (*entity.Section, error) {
	if _, err := srv.loadOwnedCourse(ctx, input.Actor, input.CourseID); err != nil {
		return nil, err
	}

	var section *entity.Section
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sectionRepo := repoFactory.SectionRepo()

		maxOrder, err := sectionRepo.MaxOrder(ctx, input.CourseID)
		if err != nil {
			return errors.Wrap(err, "failed to determine section order")
		}

		section = &entity.Section{
			CourseID:    input.CourseID,
			Title:       input.Title,
			Description: input.Description,
			Order:       maxOrder + 1,
		}

		return sectionRepo.Create(ctx, section)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create section", slog.Any("courseID", input.CourseID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute section creation transaction")
	}

	return section, nil
}

// ListSections retrieves a course's sections with their lessons, in order.
func (srv *curriculumService) ListSections(ctx context.Context, actor *entity.User, courseID uuid.UUID) ([]*entity.Section, error) {
	course, err := srv.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCourseNotFound, "course not found")
		}

		return nil, errors.Wrap(err, "failed to load course")
	}

	if !course.Published && (actor == nil || !actor.Owns(course)) {
		return nil, errors.Wrap(domainerrors.ErrCourseNotFound, "course not found")
	}

	sections, err := srv.sectionRepo.ListByCourseID(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sections")
	}

	return sections, nil
}

// UpdateSection modifies a section's metadata.
func (srv *curriculumService) UpdateSection(ctx context.Context, input usecase.UpdateSectionInput) (*entity.Section, error) {
	section, _, err := srv.loadOwnedSection(ctx, input.Actor, input.SectionID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		section.Title = *input.Title
	}
	if input.Description != nil {
		section.Description = *input.Description
	}

	if err := srv.sectionRepo.Update(ctx, section); err != nil {
		srv.log(ctx).Error("Failed to update section", slog.Any("sectionID", section.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update section")
	}

	return section, nil
}

// DeleteSection removes a section and its lessons, then closes the gap by
// renumbering the remaining siblings to 0..n-1. All in one transaction.
func (srv *curriculumService) DeleteSection(ctx context.Context, actor *entity.User, sectionID uuid.UUID) error {
	section, _, err := srv.loadOwnedSection(ctx, actor, sectionID)
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Deleting section", slog.Any("sectionID", sectionID), slog.Any("courseID", section.CourseID))

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sectionRepo := repoFactory.SectionRepo()
		lessonRepo := repoFactory.LessonRepo()

		if err := lessonRepo.DeleteBySectionID(ctx, sectionID); err != nil {
			return errors.Wrap(err, "failed to delete section lessons")
		}
		if err := sectionRepo.Delete(ctx, sectionID); err != nil {
			return errors.Wrap(err, "failed to delete section")
		}

		remaining, err := sectionRepo.ListByCourseID(ctx, section.CourseID)
		if err != nil {
			return errors.Wrap(err, "failed to list remaining sections")
		}
		for i, sibling := range remaining {
			if sibling.Order == i {
				continue
			}
			if err := sectionRepo.UpdateOrder(ctx, sibling.ID, i); err != nil {
				return errors.Wrap(err, "failed to renumber sections")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute section deletion transaction", slog.Any("sectionID", sectionID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute section deletion transaction")
	}

	return nil
}

// ReorderSections applies a complete new ordering to a course's sections. The
// submitted IDs must be exactly the current siblings; anything else rejects
// the whole request.
func (srv *curriculumService) ReorderSections(ctx context.Context, input usecase.ReorderInput) ([]*entity.Section, error) {
	if _, err := srv.loadOwnedCourse(ctx, input.Actor, input.ParentID); err != nil {
		return nil, err
	}

	var reordered []*entity.Section
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sectionRepo := repoFactory.SectionRepo()

		current, err := sectionRepo.ListByCourseID(ctx, input.ParentID)
		if err != nil {
			return errors.Wrap(err, "failed to list sections for reorder")
		}

		currentIDs := make([]uuid.UUID, 0, len(current))
		for _, section := range current {
			currentIDs = append(currentIDs, section.ID)
		}
		if err := validatePermutation(currentIDs, input.IDs); err != nil {
			return err
		}

		for i, id := range input.IDs {
			if err := sectionRepo.UpdateOrder(ctx, id, i); err != nil {
				return errors.Wrap(err, "failed to apply section order")
			}
		}

		reordered, err = sectionRepo.ListByCourseID(ctx, input.ParentID)

		return errors.Wrap(err, "failed to reload reordered sections")
	})
	if err != nil {
		srv.log(ctx).Warn("Section reorder rejected", slog.Any("courseID", input.ParentID), slog.Any("error", err))

		return nil, err
	}

	return reordered, nil
}

// --- Lessons ---

// CreateLesson appends a lesson at the end of a section. Content is decoded
// and validated against the declared lesson type.
func (srv *curriculumService) CreateLesson(ctx context.Context, input usecase.CreateLessonInput) (*entity.Lesson, error) {
	if _, _, err := srv.loadOwnedSection(ctx, input.Actor, input.SectionID); err != nil {
		return nil, err
	}

	if !input.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown lesson type")
	}

	content, err := entity.DecodeLessonContent(input.Content)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("malformed lesson content")
	}
	if err := content.Validate(input.Type); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	var lesson *entity.Lesson
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lessonRepo := repoFactory.LessonRepo()

		maxOrder, err := lessonRepo.MaxOrder(ctx, input.SectionID)
		if err != nil {
			return errors.Wrap(err, "failed to determine lesson order")
		}

		lesson = &entity.Lesson{
			SectionID: input.SectionID,
			Title:     input.Title,
			Type:      input.Type,
			Content:   content,
			Order:     maxOrder + 1,
		}

		return lessonRepo.Create(ctx, lesson)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create lesson", slog.Any("sectionID", input.SectionID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute lesson creation transaction")
	}

	return lesson, nil
}

// GetLesson retrieves a single lesson with its section and course breadcrumbs.
// Visibility follows the course.
func (srv *curriculumService) GetLesson(ctx context.Context, actor *entity.User, lessonID uuid.UUID) (*usecase.LessonDetailOutput, error) {
	lesson, section, course, err := srv.loadLessonChain(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if !course.Published && (actor == nil || !actor.Owns(course)) {
		return nil, errors.Wrap(domainerrors.ErrLessonNotFound, "lesson not found")
	}

	return &usecase.LessonDetailOutput{
		Lesson:  lesson,
		Section: section,
		Course:  course,
	}, nil
}

// UpdateLesson modifies a lesson's metadata and content. A type change without
// new content revalidates the stored content against the new type.
func (srv *curriculumService) UpdateLesson(ctx context.Context, input usecase.UpdateLessonInput) (*entity.Lesson, error) {
	lesson, _, course, err := srv.loadLessonChain(ctx, input.LessonID)
	if err != nil {
		return nil, err
	}
	if err := srv.requireOwnership(input.Actor, course); err != nil {
		return nil, err
	}

	if input.Title != nil {
		lesson.Title = *input.Title
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown lesson type")
		}
		lesson.Type = *input.Type
	}
	if input.Content != nil {
		content, err := entity.DecodeLessonContent(input.Content)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("malformed lesson content")
		}
		lesson.Content = content
	}

	if err := lesson.Content.Validate(lesson.Type); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := srv.lessonRepo.Update(ctx, lesson); err != nil {
		srv.log(ctx).Error("Failed to update lesson", slog.Any("lessonID", lesson.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update lesson")
	}

	return lesson, nil
}

// DeleteLesson removes a lesson, then closes the gap by renumbering the
// remaining siblings to 0..n-1. All in one transaction.
func (srv *curriculumService) DeleteLesson(ctx context.Context, actor *entity.User, lessonID uuid.UUID) error {
	lesson, _, course, err := srv.loadLessonChain(ctx, lessonID)
	if err != nil {
		return err
	}
	if err := srv.requireOwnership(actor, course); err != nil {
		return err
	}

	srv.log(ctx).Info("Deleting lesson", slog.Any("lessonID", lessonID), slog.Any("sectionID", lesson.SectionID))

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lessonRepo := repoFactory.LessonRepo()

		if err := lessonRepo.Delete(ctx, lessonID); err != nil {
			return errors.Wrap(err, "failed to delete lesson")
		}

		remaining, err := lessonRepo.ListBySectionID(ctx, lesson.SectionID)
		if err != nil {
			return errors.Wrap(err, "failed to list remaining lessons")
		}
		for i, sibling := range remaining {
			if sibling.Order == i {
				continue
			}
			if err := lessonRepo.UpdateOrder(ctx, sibling.ID, i); err != nil {
				return errors.Wrap(err, "failed to renumber lessons")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute lesson deletion transaction", slog.Any("lessonID", lessonID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute lesson deletion transaction")
	}

	return nil
}

// ReorderLessons applies a complete new ordering to a section's lessons.
func (srv *curriculumService) ReorderLessons(ctx context.Context, input usecase.ReorderInput) ([]*entity.Lesson, error) {
	if _, _, err := srv.loadOwnedSection(ctx, input.Actor, input.ParentID); err != nil {
		return nil, err
	}

	var reordered []*entity.Lesson
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lessonRepo := repoFactory.LessonRepo()

		current, err := lessonRepo.ListBySectionID(ctx, input.ParentID)
		if err != nil {
			return errors.Wrap(err, "failed to list lessons for reorder")
		}

		currentIDs := make([]uuid.UUID, 0, len(current))
		for _, lesson := range current {
			currentIDs = append(currentIDs, lesson.ID)
		}
		if err := validatePermutation(currentIDs, input.IDs); err != nil {
			return err
		}

		for i, id := range input.IDs {
			if err := lessonRepo.UpdateOrder(ctx, id, i); err != nil {
				return errors.Wrap(err, "failed to apply lesson order")
			}
		}

		reordered, err = lessonRepo.ListBySectionID(ctx, input.ParentID)

		return errors.Wrap(err, "failed to reload reordered lessons")
	})
	if err != nil {
		srv.log(ctx).Warn("Lesson reorder rejected", slog.Any("sectionID", input.ParentID), slog.Any("error", err))

		return nil, err
	}

	return reordered, nil
}

// --- Helpers ---

// validatePermutation checks that submitted is exactly the set of current IDs,
// each appearing once.
func validatePermutation(current, submitted []uuid.UUID) error {
	if len(submitted) != len(current) {
		return domainerrors.ErrValidationFailed.WrapMessage("reorder list must contain every sibling exactly once")
	}

	known := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		known[id] = false
	}
	for _, id := range submitted {
		seen, ok := known[id]
		if !ok {
			return domainerrors.ErrValidationFailed.WrapMessage("reorder list references an unknown item")
		}
		if seen {
			return domainerrors.ErrValidationFailed.WrapMessage("reorder list repeats an item")
		}
		known[id] = true
	}

	return nil
}

// requireOwnership enforces that the actor owns the course.
func (srv *curriculumService) requireOwnership(actor *entity.User, course *entity.Course) error {
	if actor == nil {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "missing authenticated user")
	}
	if !actor.Owns(course) {
		return errors.Wrap(domainerrors.ErrForbidden, "course is owned by another instructor")
	}

	return nil
}

// loadOwnedCourse fetches a course and enforces ownership.
func (srv *curriculumService) loadOwnedCourse(ctx context.Context, actor *entity.User, courseID uuid.UUID) (*entity.Course, error) {
	course, err := srv.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCourseNotFound, "course not found")
		}

		return nil, errors.Wrap(err, "failed to load course")
	}

	if err := srv.requireOwnership(actor, course); err != nil {
		return nil, err
	}

	return course, nil
}

// loadOwnedSection fetches a section with its course and enforces ownership.
func (srv *curriculumService) loadOwnedSection(ctx context.Context, actor *entity.User, sectionID uuid.UUID) (*entity.Section, *entity.Course, error) {
	section, err := srv.sectionRepo.FindByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, repository.ErrSectionNotFound) {
			return nil, nil, errors.Wrap(domainerrors.ErrSectionNotFound, "section not found")
		}

		return nil, nil, errors.Wrap(err, "failed to load section")
	}

	course, err := srv.loadOwnedCourse(ctx, actor, section.CourseID)
	if err != nil {
		return nil, nil, err
	}

	return section, course, nil
}

// loadLessonChain fetches a lesson together with its section and course.
func (srv *curriculumService) loadLessonChain(ctx context.Context, lessonID uuid.UUID) (*entity.Lesson, *entity.Section, *entity.Course, error) {
	lesson, err := srv.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return nil, nil, nil, errors.Wrap(domainerrors.ErrLessonNotFound, "lesson not found")
		}

		return nil, nil, nil, errors.Wrap(err, "failed to load lesson")
	}

	section, err := srv.sectionRepo.FindByID(ctx, lesson.SectionID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to load lesson section")
	}

	course, err := srv.courseRepo.FindByID(ctx, section.CourseID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to load lesson course")
	}

	return lesson, section, course, nil
}
