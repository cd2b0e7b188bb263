package impl

import (
	"context"
	"testing"

	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogMocks struct {
	courseRepo     *mockCourseRepository
	sectionRepo    *mockSectionRepository
	lessonRepo     *mockLessonRepository
	enrollmentRepo *mockEnrollmentRepository
	progressRepo   *mockProgressRepository
}

func newCatalogServiceForTest() (usecase.CatalogUsecase, *catalogMocks) {
	m := &catalogMocks{
		courseRepo:     &mockCourseRepository{},
		sectionRepo:    &mockSectionRepository{},
		lessonRepo:     &mockLessonRepository{},
		enrollmentRepo: &mockEnrollmentRepository{},
		progressRepo:   &mockProgressRepository{},
	}
	factory := &stubRepoFactory{
		courses:     m.courseRepo,
		sections:    m.sectionRepo,
		lessons:     m.lessonRepo,
		enrollments: m.enrollmentRepo,
		progress:    m.progressRepo,
	}

	svc := NewCatalogService(CatalogServiceParams{
		TxManager:  &stubTxManager{factory: factory},
		CourseRepo: m.courseRepo,
		Logger:     newTestLogger(),
	})

	return svc, m
}

func instructor() *entity.User {
	return &entity.User{ID: uuid.New(), Role: entity.RoleInstructor}
}

func student() *entity.User {
	return &entity.User{ID: uuid.New(), Role: entity.RoleStudent}
}

func TestCatalogService_CreateCourse_StudentForbidden(t *testing.T) {
	svc, m := newCatalogServiceForTest()

	course, err := svc.CreateCourse(context.Background(), usecase.CreateCourseInput{
		Instructor: student(),
		Title:      "Go from scratch",
		Category:   entity.CategoryWebDev,
	})
	assert.Nil(t, course)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	m.courseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateCourse_UnknownCategory(t *testing.T) {
	svc, _ := newCatalogServiceForTest()

	course, err := svc.CreateCourse(context.Background(), usecase.CreateCourseInput{
		Instructor: instructor(),
		Title:      "Go from scratch",
		Category:   entity.Category("KNITTING"),
	})
	assert.Nil(t, course)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCatalogService_CreateCourse_StartsUnpublished(t *testing.T) {
	svc, m := newCatalogServiceForTest()
	ctx := context.Background()
	owner := instructor()

	m.courseRepo.On("Create", ctx, mock.MatchedBy(func(course *entity.Course) bool {
		return !course.Published && course.InstructorID == owner.ID
	})).Return(nil)

	course, err := svc.CreateCourse(ctx, usecase.CreateCourseInput{
		Instructor: owner,
		Title:      "Go from scratch",
		Category:   entity.CategoryWebDev,
	})
	require.NoError(t, err)
	assert.False(t, course.Published)
	m.courseRepo.AssertExpectations(t)
}

func TestCatalogService_GetCourse_UnpublishedHiddenFromNonOwner(t *testing.T) {
	svc, m := newCatalogServiceForTest()
	ctx := context.Background()

	course := &entity.Course{ID: uuid.New(), InstructorID: uuid.New(), Published: false}
	m.courseRepo.On("FindByIDWithTree", ctx, course.ID).Return(course, nil)

	result, err := svc.GetCourse(ctx, student(), course.ID)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrCourseNotFound)
}

func TestCatalogService_GetCourse_OwnerSeesUnpublished(t *testing.T) {
	svc, m := newCatalogServiceForTest()
	ctx := context.Background()
	owner := instructor()

	course := &entity.Course{ID: uuid.New(), InstructorID: owner.ID, Published: false}
	m.courseRepo.On("FindByIDWithTree", ctx, course.ID).Return(course, nil)

	result, err := svc.GetCourse(ctx, owner, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course, result)
}

func TestCatalogService_UpdateCourse_PatchesOnlyProvidedFields(t *testing.T) {
	svc, m := newCatalogServiceForTest()
	ctx := context.Background()
	owner := instructor()

	course := &entity.Course{
		ID:           uuid.New(),
		Title:        "Old title",
		Description:  "Old description",
		Category:     entity.CategoryWebDev,
		InstructorID: owner.ID,
	}
	m.courseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	m.courseRepo.On("Update", ctx, course).Return(nil)

	newTitle := "New title"
	updated, err := svc.UpdateCourse(ctx, usecase.UpdateCourseInput{
		Actor:    owner,
		CourseID: course.ID,
		Title:    &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "Old description", updated.Description)
	assert.Equal(t, entity.CategoryWebDev, updated.Category)
}

func TestCatalogService_UpdateCourse_NonOwnerForbidden(t *testing.T) {
	svc, m := newCatalogServiceForTest()
	ctx := context.Background()

	course := &entity.Course{ID: uuid.New(), InstructorID: uuid.New()}
	m.courseRepo.On("FindByID", ctx, course.ID).Return(course, nil)

	newTitle := "Hijacked"
	updated, err := svc.UpdateCourse(ctx, usecase.UpdateCourseInput{
		Actor:    instructor(),
		CourseID: course.ID,
		Title:    &newTitle,
	})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	m.courseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCatalogService_DeleteCourse_CascadesDependents(t *testing.T) {
	svc, m := newCatalogServiceForTest()
	ctx := context.Background()
	owner := instructor()

	course := &entity.Course{ID: uuid.New(), InstructorID: owner.ID}
	m.courseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	m.progressRepo.On("DeleteByCourseID", ctx, course.ID).Return(nil)
	m.enrollmentRepo.On("DeleteByCourseID", ctx, course.ID).Return(nil)
	m.lessonRepo.On("DeleteByCourseID", ctx, course.ID).Return(nil)
	m.sectionRepo.On("DeleteByCourseID", ctx, course.ID).Return(nil)
	m.courseRepo.On("Delete", ctx, course.ID).Return(nil)

	require.NoError(t, svc.DeleteCourse(ctx, owner, course.ID))
	m.progressRepo.AssertExpectations(t)
	m.enrollmentRepo.AssertExpectations(t)
	m.lessonRepo.AssertExpectations(t)
	m.sectionRepo.AssertExpectations(t)
	m.courseRepo.AssertExpectations(t)
}

func TestCatalogService_SetPublished_TogglesFlag(t *testing.T) {
	svc, m := newCatalogServiceForTest()
	ctx := context.Background()
	owner := instructor()

	course := &entity.Course{ID: uuid.New(), InstructorID: owner.ID, Published: false}
	m.courseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	m.courseRepo.On("Update", ctx, mock.MatchedBy(func(c *entity.Course) bool {
		return c.Published
	})).Return(nil)

	updated, err := svc.SetPublished(ctx, owner, course.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Published)
}

func TestCatalogService_ListOwnCourses_StudentForbidden(t *testing.T) {
	svc, _ := newCatalogServiceForTest()

	courses, err := svc.ListOwnCourses(context.Background(), student())
	assert.Nil(t, courses)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCatalogService_GetCourse_MissingCourse(t *testing.T) {
	svc, m := newCatalogServiceForTest()
	ctx := context.Background()
	courseID := uuid.New()

	m.courseRepo.On("FindByIDWithTree", ctx, courseID).Return(nil, repository.ErrCourseNotFound)

	result, err := svc.GetCourse(ctx, student(), courseID)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domainerrors.ErrCourseNotFound)
}
