package impl

import (
	"context"
	"testing"
	"time"

	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountMocks struct {
	userRepo    *mockUserRepository
	refreshRepo *mockRefreshTokenRepository
	hasher      *mockPasswordHasher
	tokens      *mockTokenService
	mail        *mockMailService
}

func newAccountServiceForTest() (usecase.AccountUsecase, *accountMocks) {
	m := &accountMocks{
		userRepo:    &mockUserRepository{},
		refreshRepo: &mockRefreshTokenRepository{},
		hasher:      &mockPasswordHasher{},
		tokens:      &mockTokenService{},
		mail:        &mockMailService{},
	}
	factory := &stubRepoFactory{
		users:         m.userRepo,
		refreshTokens: m.refreshRepo,
	}

	svc := NewAccountService(AccountServiceParams{
		TxManager:        &stubTxManager{factory: factory},
		UserRepo:         m.userRepo,
		RefreshTokenRepo: m.refreshRepo,
		Hasher:           m.hasher,
		TokenService:     m.tokens,
		MailService:      m.mail,
		Logger:           newTestLogger(),
	})

	return svc, m
}

func TestAccountService_Register_DefaultsInvalidRoleToStudent(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	m.hasher.On("Hash", "secret-password").Return("hashed", nil)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	m.tokens.On("GenerateAccessToken", mock.AnythingOfType("*entity.User")).Return("signed.jwt", nil)
	m.tokens.On("NewOpaqueToken").Return("raw-refresh", nil)
	m.tokens.On("HashToken", "raw-refresh").Return("refresh-hash")
	m.tokens.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	m.refreshRepo.On("Create", ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	output, err := svc.Register(ctx, usecase.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret-password",
		Role:     entity.Role("SUPERUSER"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, output.User.Role)
	assert.Equal(t, "hashed", output.User.PasswordHash)
	m.userRepo.AssertExpectations(t)
}

func TestAccountService_Register_IssuesAndStoresTokenPair(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	m.hasher.On("Hash", "secret-password").Return("hashed", nil)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	m.tokens.On("GenerateAccessToken", mock.AnythingOfType("*entity.User")).Return("signed.jwt", nil)
	m.tokens.On("NewOpaqueToken").Return("raw-refresh", nil)
	m.tokens.On("HashToken", "raw-refresh").Return("refresh-hash")
	m.tokens.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	m.refreshRepo.On("Create", ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.TokenHash == "refresh-hash"
	})).Return(nil)

	output, err := svc.Register(ctx, usecase.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret-password",
		Role:     entity.RoleInstructor,
	})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", output.AccessToken)
	assert.Equal(t, "raw-refresh", output.RefreshToken)
	m.refreshRepo.AssertExpectations(t)
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	m.hasher.On("Hash", "secret-password").Return("", errors.New("bcrypt blew up"))

	output, err := svc.Register(ctx, usecase.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret-password",
		Role:     entity.RoleInstructor,
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Login_RevokesOldSessionsAndIssuesPair(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		Role:         entity.RoleStudent,
		PasswordHash: "stored-hash",
	}

	m.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	m.hasher.On("Check", "secret-password", "stored-hash").Return(true)
	m.refreshRepo.On("RevokeAllByUserID", ctx, user.ID).Return(nil)
	m.tokens.On("GenerateAccessToken", user).Return("signed.jwt", nil)
	m.tokens.On("NewOpaqueToken").Return("raw-refresh", nil)
	m.tokens.On("HashToken", "raw-refresh").Return("refresh-hash")
	m.tokens.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	m.refreshRepo.On("Create", ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.UserID == user.ID && token.TokenHash == "refresh-hash"
	})).Return(nil)

	output, err := svc.Login(ctx, usecase.LoginInput{Email: "ada@example.com", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", output.AccessToken)
	assert.Equal(t, "raw-refresh", output.RefreshToken)
	m.refreshRepo.AssertExpectations(t)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	m.userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	output, err := svc.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "whatever-pass"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: "stored-hash"}
	m.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	m.hasher.On("Check", "wrong-password", "stored-hash").Return(false)

	output, err := svc.Login(ctx, usecase.LoginInput{Email: "ada@example.com", Password: "wrong-password"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	m.refreshRepo.AssertNotCalled(t, "RevokeAllByUserID", mock.Anything, mock.Anything)
}

func TestAccountService_Refresh_RotatesToken(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "ada@example.com", Role: entity.RoleStudent}
	stored := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: "old-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	m.tokens.On("HashToken", "raw-old").Return("old-hash")
	m.refreshRepo.On("FindActiveByHash", ctx, "old-hash").Return(stored, nil)
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	m.refreshRepo.On("Revoke", ctx, stored.ID).Return(nil)
	m.tokens.On("GenerateAccessToken", user).Return("new.jwt", nil)
	m.tokens.On("NewOpaqueToken").Return("raw-new", nil)
	m.tokens.On("HashToken", "raw-new").Return("new-hash")
	m.tokens.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	m.refreshRepo.On("Create", ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.TokenHash == "new-hash"
	})).Return(nil)

	output, err := svc.Refresh(ctx, "raw-old")
	require.NoError(t, err)
	assert.Equal(t, "new.jwt", output.AccessToken)
	assert.Equal(t, "raw-new", output.RefreshToken)
	m.refreshRepo.AssertExpectations(t)
}

func TestAccountService_Refresh_RevokedTokenRejected(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	m.tokens.On("HashToken", "raw-revoked").Return("revoked-hash")
	m.refreshRepo.On("FindActiveByHash", ctx, "revoked-hash").Return(nil, repository.ErrRefreshTokenRevoked)

	output, err := svc.Refresh(ctx, "raw-revoked")
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	m.refreshRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Revoke_Idempotent(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	m.tokens.On("HashToken", "raw-token").Return("token-hash")
	m.refreshRepo.On("RevokeByHash", ctx, "token-hash").Return(nil)

	require.NoError(t, svc.Revoke(ctx, "raw-token"))
	m.refreshRepo.AssertExpectations(t)
}

func TestAccountService_ForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	m.userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	require.NoError(t, svc.ForgotPassword(ctx, usecase.ForgotPasswordInput{Email: "ghost@example.com"}))
	m.mail.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_ForgotPassword_StoresHashAndMailsRawToken(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "ada@example.com"}
	m.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	m.tokens.On("NewOpaqueToken").Return("raw-reset", nil)
	m.tokens.On("HashToken", "raw-reset").Return("reset-hash")
	m.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.ResetTokenHash != nil && *u.ResetTokenHash == "reset-hash" && u.ResetTokenExpiry != nil
	})).Return(nil)
	m.mail.On("SendPasswordReset", ctx, "ada@example.com", "/reset-password?token=raw-reset").Return(nil)

	require.NoError(t, svc.ForgotPassword(ctx, usecase.ForgotPasswordInput{Email: "ada@example.com"}))
	m.mail.AssertExpectations(t)
}

func TestAccountService_ResetPassword_ExpiredToken(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	expired := time.Now().Add(-time.Minute)
	resetHash := "reset-hash"
	user := &entity.User{ID: uuid.New(), ResetTokenHash: &resetHash, ResetTokenExpiry: &expired}

	m.hasher.On("Hash", "new-password").Return("new-hash", nil)
	m.tokens.On("HashToken", "raw-reset").Return(resetHash)
	m.userRepo.On("FindByResetTokenHash", ctx, resetHash).Return(user, nil)

	err := svc.ResetPassword(ctx, usecase.ResetPasswordInput{Token: "raw-reset", NewPassword: "new-password"})
	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
	m.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAccountService_ResetPassword_ClearsTokenAndRevokesSessions(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	valid := time.Now().Add(30 * time.Minute)
	resetHash := "reset-hash"
	user := &entity.User{ID: uuid.New(), ResetTokenHash: &resetHash, ResetTokenExpiry: &valid}

	m.hasher.On("Hash", "new-password").Return("new-hash", nil)
	m.tokens.On("HashToken", "raw-reset").Return(resetHash)
	m.userRepo.On("FindByResetTokenHash", ctx, resetHash).Return(user, nil)
	m.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.PasswordHash == "new-hash" && u.ResetTokenHash == nil && u.ResetTokenExpiry == nil
	})).Return(nil)
	m.refreshRepo.On("RevokeAllByUserID", ctx, user.ID).Return(nil)

	require.NoError(t, svc.ResetPassword(ctx, usecase.ResetPasswordInput{Token: "raw-reset", NewPassword: "new-password"}))
	m.refreshRepo.AssertExpectations(t)
}

func TestAccountService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), PasswordHash: "stored-hash"}
	m.hasher.On("Check", "wrong-password", "stored-hash").Return(false)

	err := svc.ChangePassword(ctx, usecase.ChangePasswordInput{
		User:            user,
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	m.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAccountService_ChangePassword_RevokesAllSessions(t *testing.T) {
	svc, m := newAccountServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), PasswordHash: "stored-hash"}
	m.hasher.On("Check", "current-password", "stored-hash").Return(true)
	m.hasher.On("Hash", "new-password").Return("new-hash", nil)
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	m.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.PasswordHash == "new-hash"
	})).Return(nil)
	m.refreshRepo.On("RevokeAllByUserID", ctx, user.ID).Return(nil)

	require.NoError(t, svc.ChangePassword(ctx, usecase.ChangePasswordInput{
		User:            user,
		CurrentPassword: "current-password",
		NewPassword:     "new-password",
	}))
	m.refreshRepo.AssertExpectations(t)
}
