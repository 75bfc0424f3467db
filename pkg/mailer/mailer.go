// Package mailer delivers transactional emails: verification links for new
// accounts, welcome notes after confirmation, and password-reset links.
//
//go:generate mockgen -package mockmailer -source=mailer.go -destination=mock/mockmailer.go *
package mailer

import "context"

// Mailer is the delivery interface used by the background email workers.
// Implementations must be safe for concurrent use; River runs many jobs at once.
type Mailer interface {
	// SendVerificationEmail sends the email-confirmation link for a freshly
	// registered (or re-requested) account.
	SendVerificationEmail(ctx context.Context, to, username, token string) error
	// SendWelcomeEmail greets a user right after their address is verified.
	SendWelcomeEmail(ctx context.Context, to, username, firstName string) error
	// SendPasswordResetEmail sends the password-reset link.
	SendPasswordResetEmail(ctx context.Context, to, username, token string) error
}
