package postgres

import (
	"context"
	"time"

	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// enrollmentRepository implements the domain.EnrollmentRepository interface.
type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository is the constructor for enrollmentRepository.
func NewEnrollmentRepository(db *gorm.DB) repository.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Create persists a new enrollment record. The (user, course) unique constraint
// surfaces re-enrollment as ErrEnrollmentExists.
func (repo *enrollmentRepository) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	enrollmentM := fromEnrollmentDomain(enrollment)

	if err := repo.db.WithContext(ctx).Create(enrollmentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEnrollmentExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCourseNotFound.WrapMessage("invalid course reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create enrollment")
	}

	// Update the entity with generated values
	enrollment.ID = enrollmentM.ID
	enrollment.CreatedAt = enrollmentM.CreatedAt
	enrollment.UpdatedAt = enrollmentM.UpdatedAt

	return nil
}

// FindByUserAndCourse retrieves the enrollment for a (user, course) pair.
func (repo *enrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*entity.Enrollment, error) {
	var enrollmentM model.EnrollmentModel
	err := repo.db.WithContext(ctx).
		First(&enrollmentM, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEnrollmentNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toEnrollmentDomain(&enrollmentM), nil
}

// ListByUserID retrieves all enrollments of a user with their course
// summaries, newest first.
func (repo *enrollmentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error) {
	var enrollmentModels []*model.EnrollmentModel
	err := repo.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&enrollmentModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	enrollments := make([]*entity.Enrollment, 0, len(enrollmentModels))
	for _, enrollmentM := range enrollmentModels {
		enrollments = append(enrollments, toEnrollmentDomain(enrollmentM))
	}

	return enrollments, nil
}

// Update persists progress and status changes to an existing enrollment.
func (repo *enrollmentRepository) Update(ctx context.Context, enrollment *entity.Enrollment) error {
	result := repo.db.WithContext(ctx).Model(&model.EnrollmentModel{}).
		Where("id = ?", enrollment.ID).
		Updates(map[string]any{
			"status":   enrollment.Status.String(),
			"progress": enrollment.Progress,
		})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update enrollment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEnrollmentNotFound
	}

	return nil
}

// DeleteByCourseID removes every enrollment of a course.
func (repo *enrollmentRepository) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.EnrollmentModel{}, "course_id = ?", courseID).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// progressRepository implements the domain.ProgressRepository interface.
type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository is the constructor for progressRepository.
func NewProgressRepository(db *gorm.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert creates or updates the progress row for the (user, lesson) pair.
func (repo *progressRepository) Upsert(ctx context.Context, progress *entity.Progress) error {
	progressM := fromProgressDomain(progress)
	progressM.UpdatedAt = time.Now()

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "updated_at"}),
		}).
		Create(progressM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrLessonNotFound.WrapMessage("invalid lesson reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert lesson progress")
	}

	progress.ID = progressM.ID
	progress.UpdatedAt = progressM.UpdatedAt

	return nil
}

// CountCompletedByUserAndCourse counts the user's completed lessons under a course.
func (repo *progressRepository) CountCompletedByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.ProgressModel{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("lesson_progress.user_id = ? AND sections.course_id = ? AND lesson_progress.completed = ?",
			userID, courseID, true).
		Count(&count).Error
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// DeleteByCourseID removes every progress row for lessons under a course.
func (repo *progressRepository) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("lesson_id IN (?)",
			repo.db.Model(&model.LessonModel{}).
				Select("lessons.id").
				Joins("JOIN sections ON sections.id = lessons.section_id").
				Where("sections.course_id = ?", courseID)).
		Delete(&model.ProgressModel{}).Error
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// --- Mapper Functions ---

// toEnrollmentDomain converts a GORM EnrollmentModel to a domain Enrollment entity.
func toEnrollmentDomain(data *model.EnrollmentModel) *entity.Enrollment {
	if data == nil {
		return nil
	}

	return &entity.Enrollment{
		ID:        data.ID,
		UserID:    data.UserID,
		CourseID:  data.CourseID,
		Status:    entity.EnrollmentStatus(data.Status),
		Progress:  data.Progress,
		Course:    toCourseDomain(data.Course),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromEnrollmentDomain converts a domain Enrollment entity to a GORM EnrollmentModel.
func fromEnrollmentDomain(data *entity.Enrollment) *model.EnrollmentModel {
	if data == nil {
		return nil
	}

	return &model.EnrollmentModel{
		ID:        data.ID,
		UserID:    data.UserID,
		CourseID:  data.CourseID,
		Status:    data.Status.String(),
		Progress:  data.Progress,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromProgressDomain converts a domain Progress entity to a GORM ProgressModel.
func fromProgressDomain(data *entity.Progress) *model.ProgressModel {
	if data == nil {
		return nil
	}

	return &model.ProgressModel{
		ID:        data.ID,
		UserID:    data.UserID,
		LessonID:  data.LessonID,
		Completed: data.Completed,
		UpdatedAt: data.UpdatedAt,
	}
}
