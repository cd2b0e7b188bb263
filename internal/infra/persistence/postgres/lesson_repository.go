package postgres

import (
	"context"
	"encoding/json"

	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// lessonRepository implements the domain.LessonRepository interface.
type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository is the constructor for lessonRepository.
func NewLessonRepository(db *gorm.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

// Create persists a new lesson record.
func (repo *lessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	lessonM, err := fromLessonDomain(lesson)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(lessonM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrSectionNotFound.WrapMessage("invalid section reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required lesson information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create lesson")
	}

	// Update the entity with generated values
	lesson.ID = lessonM.ID
	lesson.CreatedAt = lessonM.CreatedAt
	lesson.UpdatedAt = lessonM.UpdatedAt

	return nil
}

// FindByID retrieves a lesson by its unique ID.
func (repo *lessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	var lessonM model.LessonModel
	if err := repo.db.WithContext(ctx).First(&lessonM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLessonNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toLessonDomain(&lessonM), nil
}

// ListBySectionID retrieves all lessons of a section in display order.
func (repo *lessonRepository) ListBySectionID(ctx context.Context, sectionID uuid.UUID) ([]*entity.Lesson, error) {
	var lessonModels []*model.LessonModel
	err := repo.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("position ASC").
		Find(&lessonModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	lessons := make([]*entity.Lesson, 0, len(lessonModels))
	for _, lessonM := range lessonModels {
		lessons = append(lessons, toLessonDomain(lessonM))
	}

	return lessons, nil
}

// MaxOrder returns the highest position among a section's lessons, or -1 when
// the section has none.
func (repo *lessonRepository) MaxOrder(ctx context.Context, sectionID uuid.UUID) (int, error) {
	var maxOrder int
	err := repo.db.WithContext(ctx).Model(&model.LessonModel{}).
		Where("section_id = ?", sectionID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return maxOrder, nil
}

// CountByCourseID counts every lesson under a course, across all its sections.
func (repo *lessonRepository) CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.LessonModel{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// Update persists changes to an existing lesson record.
func (repo *lessonRepository) Update(ctx context.Context, lesson *entity.Lesson) error {
	content, err := json.Marshal(lesson.Content)
	if err != nil {
		return errors.Wrap(err, "failed to encode lesson content")
	}

	result := repo.db.WithContext(ctx).Model(&model.LessonModel{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]any{
			"title":   lesson.Title,
			"type":    lesson.Type.String(),
			"content": json.RawMessage(content),
		})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update lesson")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLessonNotFound
	}

	return nil
}

// UpdateOrder sets the position of a single lesson.
func (repo *lessonRepository) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	result := repo.db.WithContext(ctx).Model(&model.LessonModel{}).
		Where("id = ?", id).
		Update("position", order)
	if err := result.Error; err != nil {
		return errors.WithStack(err)
	}
	if result.RowsAffected == 0 {
		return repository.ErrLessonNotFound
	}

	return nil
}

// Delete removes a lesson record.
func (repo *lessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.LessonModel{}, "id = ?", id)
	if err := result.Error; err != nil {
		return errors.WithStack(err)
	}
	if result.RowsAffected == 0 {
		return repository.ErrLessonNotFound
	}

	return nil
}

// DeleteBySectionID removes every lesson of a section.
func (repo *lessonRepository) DeleteBySectionID(ctx context.Context, sectionID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.LessonModel{}, "section_id = ?", sectionID).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteByCourseID removes every lesson under a course.
func (repo *lessonRepository) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("section_id IN (?)",
			repo.db.Model(&model.SectionModel{}).Select("id").Where("course_id = ?", courseID)).
		Delete(&model.LessonModel{}).Error
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// --- Mapper Functions ---

// toLessonDomain converts a GORM LessonModel to a domain Lesson entity.
// Content that fails to decode is surfaced as an empty payload rather than
// failing the whole read.
func toLessonDomain(data *model.LessonModel) *entity.Lesson {
	if data == nil {
		return nil
	}

	content, err := entity.DecodeLessonContent(data.Content)
	if err != nil {
		content = entity.LessonContent{}
	}

	return &entity.Lesson{
		ID:        data.ID,
		SectionID: data.SectionID,
		Title:     data.Title,
		Type:      entity.LessonType(data.Type),
		Content:   content,
		Order:     data.Position,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromLessonDomain converts a domain Lesson entity to a GORM LessonModel.
func fromLessonDomain(data *entity.Lesson) (*model.LessonModel, error) {
	if data == nil {
		return nil, nil
	}

	content, err := json.Marshal(data.Content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode lesson content")
	}

	return &model.LessonModel{
		ID:        data.ID,
		SectionID: data.SectionID,
		Title:     data.Title,
		Type:      data.Type.String(),
		Content:   content,
		Position:  data.Order,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}, nil
}
