package service

import "context"

// MailService defines the interface for outbound transactional mail.
// Delivery failures are reported to the caller; no retries are attempted here.
type MailService interface {
	// SendPasswordReset delivers a password-reset link to the recipient.
	SendPasswordReset(ctx context.Context, recipient, resetURL string) error
}
