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

// enrollmentService implements the EnrollmentUsecase interface.
type enrollmentService struct {
	txManager      repository.TransactionManager
	courseRepo     repository.CourseRepository
	sectionRepo    repository.SectionRepository
	lessonRepo     repository.LessonRepository
	enrollmentRepo repository.EnrollmentRepository
	logger         *slog.Logger
}

// EnrollmentServiceParams holds dependencies for enrollmentService, injected by Fx.
type EnrollmentServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CourseRepo     repository.CourseRepository
	SectionRepo    repository.SectionRepository
	LessonRepo     repository.LessonRepository
	EnrollmentRepo repository.EnrollmentRepository
	Logger         *slog.Logger
}

// NewEnrollmentService is the constructor for enrollmentService.
func NewEnrollmentService(params EnrollmentServiceParams) usecase.EnrollmentUsecase {
	return &enrollmentService{
		txManager:      params.TxManager,
		courseRepo:     params.CourseRepo,
		sectionRepo:    params.SectionRepo,
		lessonRepo:     params.LessonRepo,
		enrollmentRepo: params.EnrollmentRepo,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *enrollmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Enroll registers a student in a published course. Instructors cannot enroll
// in their own courses, and a (user, course) pair enrolls at most once.
func (srv *enrollmentService) Enroll(ctx context.Context, student *entity.User, courseID uuid.UUID) (*entity.Enrollment, error) {
	if student == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "missing authenticated user")
	}

	course, err := srv.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCourseNotFound, "course not found")
		}

		return nil, errors.Wrap(err, "failed to load course for enrollment")
	}

	if student.Owns(course) {
		return nil, errors.Wrap(domainerrors.ErrConflict, "instructors cannot enroll in their own course")
	}
	if !course.Published {
		return nil, errors.Wrap(domainerrors.ErrCourseNotFound, "course not found")
	}

	enrollment := &entity.Enrollment{
		UserID:   student.ID,
		CourseID: courseID,
		Status:   entity.EnrollmentInProgress,
		Progress: 0,
	}

	if err := srv.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repository.ErrEnrollmentExists) {
			return nil, errors.Wrap(domainerrors.ErrAlreadyEnrolled, "enrollment already exists")
		}

		srv.log(ctx).Error("Failed to create enrollment", slog.Any("courseID", courseID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create enrollment")
	}

	srv.log(ctx).Info("Student enrolled", slog.Any("userID", student.ID), slog.Any("courseID", courseID))

	return enrollment, nil
}

// ListEnrollments retrieves the student's enrollments with course summaries.
func (srv *enrollmentService) ListEnrollments(ctx context.Context, student *entity.User) ([]*entity.Enrollment, error) {
	if student == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "missing authenticated user")
	}

	enrollments, err := srv.enrollmentRepo.ListByUserID(ctx, student.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list enrollments")
	}

	return enrollments, nil
}

// RecordProgress marks a lesson completed or not and recomputes the aggregate
// course percentage in the same transaction. At 100% the enrollment flips to
// COMPLETED; un-completing a lesson flips it back.
func (srv *enrollmentService) RecordProgress(ctx context.Context, student *entity.User, lessonID uuid.UUID, completed bool) (*usecase.ProgressOutput, error) {
	if student == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "missing authenticated user")
	}

	courseID, err := srv.resolveCourseID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	enrollment, err := srv.enrollmentRepo.FindByUserAndCourse(ctx, student.ID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotEnrolled, "progress requires enrollment")
		}

		return nil, errors.Wrap(err, "failed to load enrollment")
	}

	progress := &entity.Progress{
		UserID:    student.ID,
		LessonID:  lessonID,
		Completed: completed,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		progressRepo := repoFactory.ProgressRepo()
		lessonRepo := repoFactory.LessonRepo()
		enrollmentRepo := repoFactory.EnrollmentRepo()

		if err := progressRepo.Upsert(ctx, progress); err != nil {
			return errors.Wrap(err, "failed to record lesson progress")
		}

		totalLessons, err := lessonRepo.CountByCourseID(ctx, courseID)
		if err != nil {
			return errors.Wrap(err, "failed to count course lessons")
		}
		completedLessons, err := progressRepo.CountCompletedByUserAndCourse(ctx, student.ID, courseID)
		if err != nil {
			return errors.Wrap(err, "failed to count completed lessons")
		}

		// A course without lessons cannot make progress.
		percent := float64(0)
		if totalLessons > 0 {
			percent = 100 * float64(completedLessons) / float64(totalLessons)
		}

		enrollment.Progress = percent
		if percent == 100 {
			enrollment.Status = entity.EnrollmentCompleted
		} else {
			enrollment.Status = entity.EnrollmentInProgress
		}

		return enrollmentRepo.Update(ctx, enrollment)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute progress transaction", slog.Any("lessonID", lessonID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute progress transaction")
	}

	return &usecase.ProgressOutput{
		Lesson:     progress,
		Enrollment: enrollment,
	}, nil
}

// GetLessonContent returns a lesson for users who own its course or are
// enrolled in it. Everyone else is rejected regardless of publication state.
func (srv *enrollmentService) GetLessonContent(ctx context.Context, actor *entity.User, lessonID uuid.UUID) (*entity.Lesson, error) {
	if actor == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "missing authenticated user")
	}

	lesson, err := srv.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return nil, errors.Wrap(domainerrors.ErrLessonNotFound, "lesson not found")
		}

		return nil, errors.Wrap(err, "failed to load lesson")
	}

	section, err := srv.sectionRepo.FindByID(ctx, lesson.SectionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load lesson section")
	}

	course, err := srv.courseRepo.FindByID(ctx, section.CourseID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load lesson course")
	}

	if actor.Owns(course) {
		return lesson, nil
	}

	if _, err := srv.enrollmentRepo.FindByUserAndCourse(ctx, actor.ID, course.ID); err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotEnrolled, "content requires enrollment")
		}

		return nil, errors.Wrap(err, "failed to check enrollment")
	}

	return lesson, nil
}

// resolveCourseID walks lesson -> section -> course.
func (srv *enrollmentService) resolveCourseID(ctx context.Context, lessonID uuid.UUID) (uuid.UUID, error) {
	lesson, err := srv.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return uuid.Nil, errors.Wrap(domainerrors.ErrLessonNotFound, "lesson not found")
		}

		return uuid.Nil, errors.Wrap(err, "failed to load lesson")
	}

	section, err := srv.sectionRepo.FindByID(ctx, lesson.SectionID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to load lesson section")
	}

	return section.CourseID, nil
}
