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

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager  repository.TransactionManager
	courseRepo repository.CourseRepository
	logger     *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	CourseRepo repository.CourseRepository
	Logger     *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:  params.TxManager,
		courseRepo: params.CourseRepo,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCourse creates an unpublished course owned by the instructor.
func (srv *catalogService) CreateCourse(ctx context.Context, input usecase.CreateCourseInput) (*entity.Course, error) {
	if input.Instructor == nil || !input.Instructor.IsInstructor() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only instructors can create courses")
	}
	if !input.Category.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown course category")
	}

	srv.log(ctx).Info("Creating course", slog.Any("instructorID", input.Instructor.ID), slog.String("title", input.Title))

	course := &entity.Course{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		InstructorID: input.Instructor.ID,
		Published:    false,
	}

	if err := srv.courseRepo.Create(ctx, course); err != nil {
		srv.log(ctx).Error("Failed to create course", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create course")
	}

	return course, nil
}

// GetCourse retrieves a course with its full section and lesson tree.
// Unpublished courses are reported as not found to everyone but their owner,
// so their existence is not leaked.
func (srv *catalogService) GetCourse(ctx context.Context, actor *entity.User, courseID uuid.UUID) (*entity.Course, error) {
	course, err := srv.courseRepo.FindByIDWithTree(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCourseNotFound, "course not found")
		}

		return nil, errors.Wrap(err, "failed to load course")
	}

	if !course.Published && (actor == nil || !actor.Owns(course)) {
		return nil, errors.Wrap(domainerrors.ErrCourseNotFound, "course not found")
	}

	return course, nil
}

// ListPublishedCourses retrieves every published course.
func (srv *catalogService) ListPublishedCourses(ctx context.Context) ([]*entity.Course, error) {
	courses, err := srv.courseRepo.ListPublished(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list published courses")
	}

	return courses, nil
}

// ListOwnCourses retrieves every course owned by the instructor, published or not.
func (srv *catalogService) ListOwnCourses(ctx context.Context, instructor *entity.User) ([]*entity.Course, error) {
	if instructor == nil || !instructor.IsInstructor() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only instructors have a course list")
	}

	courses, err := srv.courseRepo.ListByInstructorID(ctx, instructor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list instructor courses")
	}

	return courses, nil
}

// UpdateCourse modifies a course's metadata. Ownership and publication state
// never change here.
func (srv *catalogService) UpdateCourse(ctx context.Context, input usecase.UpdateCourseInput) (*entity.Course, error) {
	course, err := srv.loadOwnedCourse(ctx, input.Actor, input.CourseID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown course category")
		}
		course.Category = *input.Category
	}

	if err := srv.courseRepo.Update(ctx, course); err != nil {
		srv.log(ctx).Error("Failed to update course", slog.Any("courseID", course.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update course")
	}

	return course, nil
}

// DeleteCourse removes a course and every dependent record in one transaction:
// progress, enrollments, lessons, sections, then the course itself.
func (srv *catalogService) DeleteCourse(ctx context.Context, actor *entity.User, courseID uuid.UUID) error {
	if _, err := srv.loadOwnedCourse(ctx, actor, courseID); err != nil {
		return err
	}

	srv.log(ctx).Info("Deleting course", slog.Any("courseID", courseID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProgressRepo().DeleteByCourseID(ctx, courseID); err != nil {
			return errors.Wrap(err, "failed to delete course progress")
		}
		if err := repoFactory.EnrollmentRepo().DeleteByCourseID(ctx, courseID); err != nil {
			return errors.Wrap(err, "failed to delete course enrollments")
		}
		if err := repoFactory.LessonRepo().DeleteByCourseID(ctx, courseID); err != nil {
			return errors.Wrap(err, "failed to delete course lessons")
		}
		if err := repoFactory.SectionRepo().DeleteByCourseID(ctx, courseID); err != nil {
			return errors.Wrap(err, "failed to delete course sections")
		}

		return repoFactory.CourseRepo().Delete(ctx, courseID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute course deletion transaction", slog.Any("courseID", courseID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute course deletion transaction")
	}

	return nil
}

// SetPublished publishes or unpublishes a course.
func (srv *catalogService) SetPublished(ctx context.Context, actor *entity.User, courseID uuid.UUID, published bool) (*entity.Course, error) {
	course, err := srv.loadOwnedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}

	course.Published = published

	if err := srv.courseRepo.Update(ctx, course); err != nil {
		srv.log(ctx).Error("Failed to change course publication", slog.Any("courseID", course.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to change course publication")
	}

	srv.log(ctx).Info("Course publication changed", slog.Any("courseID", course.ID), slog.Bool("published", published))

	return course, nil
}

// loadOwnedCourse fetches a course and enforces that the actor owns it.
func (srv *catalogService) loadOwnedCourse(ctx context.Context, actor *entity.User, courseID uuid.UUID) (*entity.Course, error) {
	if actor == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "missing authenticated user")
	}

	course, err := srv.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCourseNotFound, "course not found")
		}

		return nil, errors.Wrap(err, "failed to load course")
	}

	if !actor.Owns(course) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "course is owned by another instructor")
	}

	return course, nil
}
