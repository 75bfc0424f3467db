package worker

import (
	"context"
	"fmt"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"calculator/internal/auth"
	"calculator/pkg/logger"
	"calculator/pkg/mailer"
)

// VerificationEmailWorker delivers email-confirmation links. Delivery failures
// are returned so River retries with backoff up to the job's MaxAttempts.
type VerificationEmailWorker struct {
	river.WorkerDefaults[auth.VerificationEmailArgs]

	mailer mailer.Mailer
}

// NewVerificationEmailWorker constructs a VerificationEmailWorker using the provided mailer.
func NewVerificationEmailWorker(mailer mailer.Mailer) *VerificationEmailWorker {
	return &VerificationEmailWorker{mailer: mailer}
}

// Work delivers a single verification email.
func (w *VerificationEmailWorker) Work(ctx context.Context, job *river.Job[auth.VerificationEmailArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("email", job.Args.Email))

	if err := w.mailer.SendVerificationEmail(ctx, job.Args.Email, job.Args.Username, job.Args.Token); err != nil {
		logger.Error(ctx, "error sending verification email", zap.Error(err))

		return fmt.Errorf("could not send verification email: %w", err)
	}

	logger.Info(ctx, "verification email sent")

	return nil
}

// WelcomeEmailWorker greets users right after their address is verified.
type WelcomeEmailWorker struct {
	river.WorkerDefaults[auth.WelcomeEmailArgs]

	mailer mailer.Mailer
}

// NewWelcomeEmailWorker constructs a WelcomeEmailWorker using the provided mailer.
func NewWelcomeEmailWorker(mailer mailer.Mailer) *WelcomeEmailWorker {
	return &WelcomeEmailWorker{mailer: mailer}
}

// Work delivers a single welcome email.
func (w *WelcomeEmailWorker) Work(ctx context.Context, job *river.Job[auth.WelcomeEmailArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("email", job.Args.Email))

	if err := w.mailer.SendWelcomeEmail(ctx, job.Args.Email, job.Args.Username, job.Args.FirstName); err != nil {
		logger.Error(ctx, "error sending welcome email", zap.Error(err))

		return fmt.Errorf("could not send welcome email: %w", err)
	}

	logger.Info(ctx, "welcome email sent")

	return nil
}

// PasswordResetEmailWorker delivers password-reset links.
type PasswordResetEmailWorker struct {
	river.WorkerDefaults[auth.PasswordResetEmailArgs]

	mailer mailer.Mailer
}

// NewPasswordResetEmailWorker constructs a PasswordResetEmailWorker using the provided mailer.
func NewPasswordResetEmailWorker(mailer mailer.Mailer) *PasswordResetEmailWorker {
	return &PasswordResetEmailWorker{mailer: mailer}
}

// Work delivers a single password-reset email.
func (w *PasswordResetEmailWorker) Work(ctx context.Context, job *river.Job[auth.PasswordResetEmailArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("email", job.Args.Email))

	if err := w.mailer.SendPasswordResetEmail(ctx, job.Args.Email, job.Args.Username, job.Args.Token); err != nil {
		logger.Error(ctx, "error sending password reset email", zap.Error(err))

		return fmt.Errorf("could not send password reset email: %w", err)
	}

	logger.Info(ctx, "password reset email sent")

	return nil
}
