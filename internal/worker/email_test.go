package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"calculator/internal/auth"
	"calculator/internal/worker"
	"calculator/pkg/logger"
	mockmailer "calculator/pkg/mailer/mock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestVerificationEmailWorker_Work(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockmailer.NewMockMailer(ctrl)
	w := worker.NewVerificationEmailWorker(mock)

	mock.EXPECT().SendVerificationEmail(gomock.Any(), "alice@example.com", "alice", "nonce").Return(nil)

	job := &river.Job[auth.VerificationEmailArgs]{
		JobRow: &rivertype.JobRow{ID: 1},
		Args:   auth.VerificationEmailArgs{Email: "alice@example.com", Username: "alice", Token: "nonce"},
	}
	require.NoError(t, w.Work(context.Background(), job))
}

func TestVerificationEmailWorker_Work_DeliveryFailureIsRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockmailer.NewMockMailer(ctrl)
	w := worker.NewVerificationEmailWorker(mock)

	mock.EXPECT().SendVerificationEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("smtp unreachable"))

	job := &river.Job[auth.VerificationEmailArgs]{
		JobRow: &rivertype.JobRow{ID: 2},
		Args:   auth.VerificationEmailArgs{Email: "alice@example.com", Username: "alice", Token: "nonce"},
	}
	err := w.Work(context.Background(), job)
	require.Error(t, err)
	// delivery failures must not cancel the job; River should retry them
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr)
}

func TestWelcomeEmailWorker_Work(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockmailer.NewMockMailer(ctrl)
	w := worker.NewWelcomeEmailWorker(mock)

	mock.EXPECT().SendWelcomeEmail(gomock.Any(), "bob@example.com", "bob", "Bob").Return(nil)

	job := &river.Job[auth.WelcomeEmailArgs]{
		JobRow: &rivertype.JobRow{ID: 3},
		Args:   auth.WelcomeEmailArgs{Email: "bob@example.com", Username: "bob", FirstName: "Bob"},
	}
	require.NoError(t, w.Work(context.Background(), job))
}

func TestPasswordResetEmailWorker_Work(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := mockmailer.NewMockMailer(ctrl)
	w := worker.NewPasswordResetEmailWorker(mock)

	mock.EXPECT().SendPasswordResetEmail(gomock.Any(), "alice@example.com", "alice", "reset-nonce").Return(nil)

	job := &river.Job[auth.PasswordResetEmailArgs]{
		JobRow: &rivertype.JobRow{ID: 4},
		Args:   auth.PasswordResetEmailArgs{Email: "alice@example.com", Username: "alice", Token: "reset-nonce"},
	}
	require.NoError(t, w.Work(context.Background(), job))
}
