package postgres

import (
	"context"

	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// courseRepository implements the domain.CourseRepository interface.
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository is the constructor for courseRepository.
func NewCourseRepository(db *gorm.DB) repository.CourseRepository {
	return &courseRepository{db: db}
}

// Create persists a new course record.
func (repo *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	courseM := fromCourseDomain(course)

	if err := repo.db.WithContext(ctx).Create(courseM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid instructor reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid course data")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create course")
	}

	// Update the entity with generated values
	course.ID = courseM.ID
	course.CreatedAt = courseM.CreatedAt
	course.UpdatedAt = courseM.UpdatedAt

	return nil
}

// FindByID retrieves a course by its unique ID, without nested content.
func (repo *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	var courseM model.CourseModel
	if err := repo.db.WithContext(ctx).Preload("Instructor").First(&courseM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCourseNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCourseDomain(&courseM), nil
}

// FindByIDWithTree retrieves a course with its sections and lessons,
// ordered by their positions.
func (repo *courseRepository) FindByIDWithTree(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	var courseM model.CourseModel
	err := repo.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.position ASC")
		}).
		Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		First(&courseM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCourseNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCourseDomain(&courseM), nil
}

// ListPublished retrieves all published courses, newest first.
func (repo *courseRepository) ListPublished(ctx context.Context) ([]*entity.Course, error) {
	var courseModels []*model.CourseModel
	err := repo.db.WithContext(ctx).
		Preload("Instructor").
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&courseModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	courses := make([]*entity.Course, 0, len(courseModels))
	for _, courseM := range courseModels {
		courses = append(courses, toCourseDomain(courseM))
	}

	return courses, nil
}

// ListByInstructorID retrieves all courses owned by an instructor, newest first.
func (repo *courseRepository) ListByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error) {
	var courseModels []*model.CourseModel
	err := repo.db.WithContext(ctx).
		Preload("Instructor").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courseModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	courses := make([]*entity.Course, 0, len(courseModels))
	for _, courseM := range courseModels {
		courses = append(courses, toCourseDomain(courseM))
	}

	return courses, nil
}

// Update persists changes to an existing course record.
func (repo *courseRepository) Update(ctx context.Context, course *entity.Course) error {
	result := repo.db.WithContext(ctx).Model(&model.CourseModel{}).
		Where("id = ?", course.ID).
		Updates(map[string]any{
			"title":       course.Title,
			"description": course.Description,
			"category":    course.Category.String(),
			"published":   course.Published,
		})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update course")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course record. Sections, lessons, enrollments and progress
// must be removed by the caller beforehand, within the same transaction.
func (repo *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CourseModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		return errors.WithStack(err)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCourseNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCourseDomain converts a GORM CourseModel to a domain Course entity.
func toCourseDomain(data *model.CourseModel) *entity.Course {
	if data == nil {
		return nil
	}

	sections := make([]*entity.Section, 0, len(data.Sections))
	for i := range data.Sections {
		sections = append(sections, toSectionDomain(&data.Sections[i]))
	}

	return &entity.Course{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		Category:     entity.Category(data.Category),
		InstructorID: data.InstructorID,
		Instructor:   toUserDomain(data.Instructor),
		Published:    data.Published,
		Sections:     sections,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromCourseDomain converts a domain Course entity to a GORM CourseModel.
func fromCourseDomain(data *entity.Course) *model.CourseModel {
	if data == nil {
		return nil
	}

	return &model.CourseModel{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		Category:     data.Category.String(),
		InstructorID: data.InstructorID,
		Published:    data.Published,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
