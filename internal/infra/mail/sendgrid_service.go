// Package mail provides the SendGrid-backed implementation of the MailService interface.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"campus/config"
	"campus/internal/domain/service"
)

// sendgridService delivers transactional mail through the SendGrid v3 API.
type sendgridService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *slog.Logger
}

// NewSendgridService is the constructor for sendgridService.
func NewSendgridService(cfg *config.Config, logger *slog.Logger) (service.MailService, error) {
	if cfg.Mail == nil || cfg.Mail.APIKey == "" {
		return nil, errors.New("sendgrid api key must be provided")
	}

	return &sendgridService{
		client:    sendgrid.NewSendClient(cfg.Mail.APIKey),
		fromEmail: cfg.Mail.FromEmail,
		fromName:  cfg.Mail.FromName,
		logger:    logger,
	}, nil
}

// SendPasswordReset delivers a password-reset link to the recipient.
func (s *sendgridService) SendPasswordReset(ctx context.Context, recipient, resetURL string) error {
	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail("", recipient)
	subject := "Reset your password"
	plain := fmt.Sprintf("You requested a password reset. Open the link below to choose a new password:\n\n%s\n\nIf you did not request this, you can ignore this email.", resetURL)
	html := fmt.Sprintf(`<p>You requested a password reset. Click the link below to choose a new password:</p><p><a href=%q>Reset password</a></p><p>If you did not request this, you can ignore this email.</p>`, resetURL)

	message := sgmail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return errors.Wrap(err, "sendgrid send failed")
	}
	if resp.StatusCode >= 400 {
		s.logger.ErrorContext(ctx, "sendgrid rejected password reset mail",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", resp.Body))

		return errors.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}
