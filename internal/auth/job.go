package auth

import (
	"github.com/riverqueue/river"
)

// VerificationEmailArgs is a River job that delivers the email-confirmation link.
type VerificationEmailArgs struct {
	// Email is the recipient address.
	Email string `json:"email"`
	// Username is interpolated into the email body.
	Username string `json:"username"`
	// Token is the verification nonce embedded in the link.
	Token string `json:"token"`

	// maxAttempts configures how many times River retries delivery.
	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the worker.
func (args VerificationEmailArgs) Kind() string { return "SendVerificationEmail" }

// InsertOpts limits retries to the configured delivery attempts.
func (args VerificationEmailArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: args.maxAttempts}
}

// WelcomeEmailArgs is a River job that greets a user after verification.
type WelcomeEmailArgs struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`

	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the worker.
func (args WelcomeEmailArgs) Kind() string { return "SendWelcomeEmail" }

// InsertOpts limits retries to the configured delivery attempts.
func (args WelcomeEmailArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: args.maxAttempts}
}

// PasswordResetEmailArgs is a River job that delivers the password-reset link.
type PasswordResetEmailArgs struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`

	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the worker.
func (args PasswordResetEmailArgs) Kind() string { return "SendPasswordResetEmail" }

// InsertOpts limits retries to the configured delivery attempts.
func (args PasswordResetEmailArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: args.maxAttempts}
}
