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

// sectionRepository implements the domain.SectionRepository interface.
type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository is the constructor for sectionRepository.
func NewSectionRepository(db *gorm.DB) repository.SectionRepository {
	return &sectionRepository{db: db}
}

// Create persists a new section record.
func (repo *sectionRepository) Create(ctx context.Context, section *entity.Section) error {
	sectionM := fromSectionDomain(section)

	if err := repo.db.WithContext(ctx).Create(sectionM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCourseNotFound.WrapMessage("invalid course reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create section")
	}

	// Update the entity with generated values
	section.ID = sectionM.ID
	section.CreatedAt = sectionM.CreatedAt
	section.UpdatedAt = sectionM.UpdatedAt

	return nil
}

// FindByID retrieves a section by its unique ID, without its lessons.
func (repo *sectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Section, error) {
	var sectionM model.SectionModel
	if err := repo.db.WithContext(ctx).First(&sectionM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSectionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toSectionDomain(&sectionM), nil
}

// ListByCourseID retrieves all sections of a course in display order, each
// with its lessons in display order.
func (repo *sectionRepository) ListByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Section, error) {
	var sectionModels []*model.SectionModel
	err := repo.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&sectionModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sections := make([]*entity.Section, 0, len(sectionModels))
	for _, sectionM := range sectionModels {
		sections = append(sections, toSectionDomain(sectionM))
	}

	return sections, nil
}

// MaxOrder returns the highest position among a course's sections, or -1 when
// the course has none.
func (repo *sectionRepository) MaxOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	var maxOrder int
	err := repo.db.WithContext(ctx).Model(&model.SectionModel{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return maxOrder, nil
}

// Update persists changes to an existing section record.
func (repo *sectionRepository) Update(ctx context.Context, section *entity.Section) error {
	result := repo.db.WithContext(ctx).Model(&model.SectionModel{}).
		Where("id = ?", section.ID).
		Updates(map[string]any{
			"title":       section.Title,
			"description": section.Description,
		})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update section")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSectionNotFound
	}

	return nil
}

// UpdateOrder sets the position of a single section.
func (repo *sectionRepository) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	result := repo.db.WithContext(ctx).Model(&model.SectionModel{}).
		Where("id = ?", id).
		Update("position", order)
	if err := result.Error; err != nil {
		return errors.WithStack(err)
	}
	if result.RowsAffected == 0 {
		return repository.ErrSectionNotFound
	}

	return nil
}

// Delete removes a section record. Its lessons must be removed by the caller
// beforehand, within the same transaction.
func (repo *sectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.SectionModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		return errors.WithStack(err)
	}
	if result.RowsAffected == 0 {
		return repository.ErrSectionNotFound
	}

	return nil
}

// DeleteByCourseID removes every section of a course.
func (repo *sectionRepository) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.SectionModel{}, "course_id = ?", courseID).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// --- Mapper Functions ---

// toSectionDomain converts a GORM SectionModel to a domain Section entity.
func toSectionDomain(data *model.SectionModel) *entity.Section {
	if data == nil {
		return nil
	}

	lessons := make([]*entity.Lesson, 0, len(data.Lessons))
	for i := range data.Lessons {
		lessons = append(lessons, toLessonDomain(&data.Lessons[i]))
	}

	return &entity.Section{
		ID:          data.ID,
		CourseID:    data.CourseID,
		Title:       data.Title,
		Description: data.Description,
		Order:       data.Position,
		Lessons:     lessons,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromSectionDomain converts a domain Section entity to a GORM SectionModel.
func fromSectionDomain(data *entity.Section) *model.SectionModel {
	if data == nil {
		return nil
	}

	return &model.SectionModel{
		ID:          data.ID,
		CourseID:    data.CourseID,
		Title:       data.Title,
		Description: data.Description,
		Position:    data.Order,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
