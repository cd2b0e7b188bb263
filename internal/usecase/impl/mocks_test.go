package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"campus/internal/domain/entity"
	"campus/internal/domain/repository"
	"campus/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTxManager runs the transactional function directly against a fixed
// repository factory, without any database underneath.
type stubTxManager struct {
	factory repository.RepositoryFactory
}

func (m *stubTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// stubRepoFactory hands out the repository mocks of a single test case.
type stubRepoFactory struct {
	users         repository.UserRepository
	courses       repository.CourseRepository
	sections      repository.SectionRepository
	lessons       repository.LessonRepository
	enrollments   repository.EnrollmentRepository
	progress      repository.ProgressRepository
	refreshTokens repository.RefreshTokenRepository
}

func (f *stubRepoFactory) UserRepo() repository.UserRepository                 { return f.users }
func (f *stubRepoFactory) CourseRepo() repository.CourseRepository             { return f.courses }
func (f *stubRepoFactory) SectionRepo() repository.SectionRepository           { return f.sections }
func (f *stubRepoFactory) LessonRepo() repository.LessonRepository             { return f.lessons }
func (f *stubRepoFactory) EnrollmentRepo() repository.EnrollmentRepository     { return f.enrollments }
func (f *stubRepoFactory) ProgressRepo() repository.ProgressRepository         { return f.progress }
func (f *stubRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository { return f.refreshTokens }

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	args := m.Called(ctx, tokenHash)
	if user := args.Get(0); user != nil {
		return user.(*entity.User), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockCourseRepository struct {
	mock.Mock
}

func (m *mockCourseRepository) Create(ctx context.Context, course *entity.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	args := m.Called(ctx, id)
	if course := args.Get(0); course != nil {
		return course.(*entity.Course), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCourseRepository) FindByIDWithTree(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	args := m.Called(ctx, id)
	if course := args.Get(0); course != nil {
		return course.(*entity.Course), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCourseRepository) ListPublished(ctx context.Context) ([]*entity.Course, error) {
	args := m.Called(ctx)
	if courses := args.Get(0); courses != nil {
		return courses.([]*entity.Course), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCourseRepository) ListByInstructorID(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error) {
	args := m.Called(ctx, instructorID)
	if courses := args.Get(0); courses != nil {
		return courses.([]*entity.Course), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCourseRepository) Update(ctx context.Context, course *entity.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSectionRepository struct {
	mock.Mock
}

func (m *mockSectionRepository) Create(ctx context.Context, section *entity.Section) error {
	return m.Called(ctx, section).Error(0)
}

func (m *mockSectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Section, error) {
	args := m.Called(ctx, id)
	if section := args.Get(0); section != nil {
		return section.(*entity.Section), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockSectionRepository) ListByCourseID(ctx context.Context, courseID uuid.UUID) ([]*entity.Section, error) {
	args := m.Called(ctx, courseID)
	if sections := args.Get(0); sections != nil {
		return sections.([]*entity.Section), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockSectionRepository) MaxOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	args := m.Called(ctx, courseID)

	return args.Int(0), args.Error(1)
}

func (m *mockSectionRepository) Update(ctx context.Context, section *entity.Section) error {
	return m.Called(ctx, section).Error(0)
}

func (m *mockSectionRepository) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	return m.Called(ctx, id, order).Error(0)
}

func (m *mockSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSectionRepository) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	return m.Called(ctx, courseID).Error(0)
}

type mockLessonRepository struct {
	mock.Mock
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *mockLessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lesson, error) {
	args := m.Called(ctx, id)
	if lesson := args.Get(0); lesson != nil {
		return lesson.(*entity.Lesson), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockLessonRepository) ListBySectionID(ctx context.Context, sectionID uuid.UUID) ([]*entity.Lesson, error) {
	args := m.Called(ctx, sectionID)
	if lessons := args.Get(0); lessons != nil {
		return lessons.([]*entity.Lesson), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockLessonRepository) MaxOrder(ctx context.Context, sectionID uuid.UUID) (int, error) {
	args := m.Called(ctx, sectionID)

	return args.Int(0), args.Error(1)
}

func (m *mockLessonRepository) CountByCourseID(ctx context.Context, courseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, courseID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLessonRepository) Update(ctx context.Context, lesson *entity.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *mockLessonRepository) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	return m.Called(ctx, id, order).Error(0)
}

func (m *mockLessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLessonRepository) DeleteBySectionID(ctx context.Context, sectionID uuid.UUID) error {
	return m.Called(ctx, sectionID).Error(0)
}

func (m *mockLessonRepository) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	return m.Called(ctx, courseID).Error(0)
}

type mockEnrollmentRepository struct {
	mock.Mock
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	return m.Called(ctx, enrollment).Error(0)
}

func (m *mockEnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*entity.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if enrollment := args.Get(0); enrollment != nil {
		return enrollment.(*entity.Enrollment), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockEnrollmentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Enrollment, error) {
	args := m.Called(ctx, userID)
	if enrollments := args.Get(0); enrollments != nil {
		return enrollments.([]*entity.Enrollment), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockEnrollmentRepository) Update(ctx context.Context, enrollment *entity.Enrollment) error {
	return m.Called(ctx, enrollment).Error(0)
}

func (m *mockEnrollmentRepository) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	return m.Called(ctx, courseID).Error(0)
}

type mockProgressRepository struct {
	mock.Mock
}

func (m *mockProgressRepository) Upsert(ctx context.Context, progress *entity.Progress) error {
	return m.Called(ctx, progress).Error(0)
}

func (m *mockProgressRepository) CountCompletedByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, courseID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProgressRepository) DeleteByCourseID(ctx context.Context, courseID uuid.UUID) error {
	return m.Called(ctx, courseID).Error(0)
}

type mockRefreshTokenRepository struct {
	mock.Mock
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockRefreshTokenRepository) FindActiveByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if token := args.Get(0); token != nil {
		return token.(*entity.RefreshToken), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRefreshTokenRepository) RevokeByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockRefreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(*service.Claims), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) NewOpaqueToken() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) HashToken(raw string) string {
	return m.Called(raw).String(0)
}

func (m *mockTokenService) RefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type mockMailService struct {
	mock.Mock
}

func (m *mockMailService) SendPasswordReset(ctx context.Context, recipient, resetURL string) error {
	return m.Called(ctx, recipient, resetURL).Error(0)
}
