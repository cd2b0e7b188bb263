// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"campus/config"
	deliverycontext "campus/internal/delivery/context"
	"campus/internal/domain/entity"
	domainerrors "campus/internal/domain/errors"
	"campus/internal/domain/repository"
	"campus/internal/domain/service"
	"campus/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultResetTokenTTL = time.Hour

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	mailService      service.MailService
	resetTokenTTL    time.Duration
	frontendBaseURL  string
	logger           *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	MailService      service.MailService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	resetTokenTTL := defaultResetTokenTTL
	frontendBaseURL := ""
	if params.Config != nil {
		if params.Config.Auth != nil && params.Config.Auth.ResetTokenTTL > 0 {
			resetTokenTTL = params.Config.Auth.ResetTokenTTL
		}
		if params.Config.Mail != nil {
			frontendBaseURL = params.Config.Mail.FrontendBaseURL
		}
	}

	return &accountService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		mailService:      params.MailService,
		resetTokenTTL:    resetTokenTTL,
		frontendBaseURL:  frontendBaseURL,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with a hashed password and signs the user in
// by issuing their first token pair.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	role := input.Role
	if !role.IsValid() {
		role = entity.RoleStudent
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		Role:         role,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		srv.log(ctx).Warn("Failed to create user during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	// A fresh account has no prior sessions, so there is nothing to revoke.
	pair, err := srv.issueTokenPair(ctx, newUser, nil)
	if err != nil {
		srv.log(ctx).Error("Failed to issue initial token pair", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue initial token pair")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{
		User:         newUser,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Login verifies credentials and issues a fresh token pair. All previously
// issued refresh tokens of the user are revoked first.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	output, err := srv.issueTokenPair(ctx, user, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RefreshTokenRepo().RevokeAllByUserID(ctx, user.ID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute login transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return output, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued, all within one transaction.
func (srv *accountService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Info("Attempting to refresh token pair")

	tokenHash := srv.tokenService.HashToken(refreshToken)

	var output *usecase.TokenPairOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		userRepo := repoFactory.UserRepo()

		stored, err := refreshRepo.FindActiveByHash(ctx, tokenHash)
		if err != nil {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not accepted")
		}

		user, err := userRepo.FindByID(ctx, stored.UserID)
		if err != nil {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token subject no longer exists")
		}

		// Rotation: the old token dies with this use.
		if err := refreshRepo.Revoke(ctx, stored.ID); err != nil {
			return errors.Wrap(err, "failed to revoke rotated refresh token")
		}

		pair, err := srv.buildTokenPair(ctx, refreshRepo, user)
		if err != nil {
			return err
		}
		output = pair

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh failed", slog.Any("error", err))

		return nil, err
	}

	return output, nil
}

// Revoke invalidates the presented refresh token. Unknown or already-revoked
// tokens are accepted silently so logout stays idempotent.
func (srv *accountService) Revoke(ctx context.Context, refreshToken string) error {
	srv.log(ctx).Info("Attempting to revoke refresh token")

	tokenHash := srv.tokenService.HashToken(refreshToken)

	if err := srv.refreshTokenRepo.RevokeByHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to revoke refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke refresh token")
	}

	return nil
}

// ForgotPassword starts a reset flow. The outcome is identical whether or not
// the email is registered, so the endpoint cannot be used to probe accounts.
func (srv *accountService) ForgotPassword(ctx context.Context, input usecase.ForgotPasswordInput) error {
	srv.log(ctx).Info("Password reset requested", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find user for password reset")
	}

	rawToken, err := srv.tokenService.NewOpaqueToken()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	tokenHash := srv.tokenService.HashToken(rawToken)
	expiry := time.Now().Add(srv.resetTokenTTL)
	user.ResetTokenHash = &tokenHash
	user.ResetTokenExpiry = &expiry

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	resetURL := srv.frontendBaseURL + "/reset-password?token=" + rawToken
	if err := srv.mailService.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		srv.log(ctx).Error("Failed to send password reset mail", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to send password reset mail")
	}

	return nil
}

// ResetPassword completes a reset flow with an emailed token and revokes all
// of the user's sessions.
func (srv *accountService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	srv.log(ctx).Info("Attempting password reset with token")

	tokenHash := srv.tokenService.HashToken(input.Token)

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByResetTokenHash(ctx, tokenHash)
		if err != nil {
			return errors.Wrap(domainerrors.ErrResetTokenInvalid, "reset token not accepted")
		}
		if user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
			return errors.Wrap(domainerrors.ErrResetTokenInvalid, "reset token expired")
		}

		user.PasswordHash = hashedPassword
		user.ResetTokenHash = nil
		user.ResetTokenExpiry = nil

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		// A reset invalidates every live session.
		return repoFactory.RefreshTokenRepo().RevokeAllByUserID(ctx, user.ID)
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset failed", slog.Any("error", err))

		return err
	}

	return nil
}

// ChangePassword updates the password of an authenticated user and revokes
// all of their sessions.
func (srv *accountService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	if input.User == nil {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "missing authenticated user")
	}

	srv.log(ctx).Info("Attempting password change", slog.Any("userID", input.User.ID))

	if !srv.hasher.Check(input.CurrentPassword, input.User.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.User.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load user for password change")
		}

		user.PasswordHash = hashedPassword

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		return repoFactory.RefreshTokenRepo().RevokeAllByUserID(ctx, user.ID)
	})
	if err != nil {
		srv.log(ctx).Error("Password change failed", slog.Any("userID", input.User.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password change transaction")
	}

	return nil
}

// issueTokenPair runs prepare and then stores a freshly minted token pair for
// the user, all within one transaction.
func (srv *accountService) issueTokenPair(ctx context.Context, user *entity.User, prepare func(repository.RepositoryFactory) error) (*usecase.TokenPairOutput, error) {
	var output *usecase.TokenPairOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if prepare != nil {
			if err := prepare(repoFactory); err != nil {
				return errors.Wrap(err, "failed to prepare token issuance")
			}
		}

		pair, err := srv.buildTokenPair(ctx, repoFactory.RefreshTokenRepo(), user)
		if err != nil {
			return err
		}
		output = pair

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// buildTokenPair mints an access token and persists a new hashed refresh token.
func (srv *accountService) buildTokenPair(ctx context.Context, refreshRepo repository.RefreshTokenRepository, user *entity.User) (*usecase.TokenPairOutput, error) {
	accessToken, err := srv.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	rawRefreshToken, err := srv.tokenService.NewOpaqueToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	newRefreshToken := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(rawRefreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}

	if err := refreshRepo.Create(ctx, newRefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: rawRefreshToken,
		User:         user,
	}, nil
}
