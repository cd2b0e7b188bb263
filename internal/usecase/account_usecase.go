// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"campus/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ForgotPasswordInput starts a password-reset flow for an email address.
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput completes a password-reset flow with an emailed token.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ChangePasswordInput updates the password of an authenticated user.
type ChangePasswordInput struct {
	User            *entity.User
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user together with the first
// session's token pair, so registration doubles as the initial login.
type RegisterOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// TokenPairOutput returns a signed access token and an opaque refresh token.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AccountUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*TokenPairOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPairOutput, error)
	Revoke(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, input ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
}
