// Package worker runs the background job queue. All jobs are email deliveries
// enqueued transactionally by the auth service.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"

	"calculator/pkg/logger"
	"calculator/pkg/mailer"
)

// Start registers the email workers and starts the River client on the given
// connection pool. The returned client should be stopped on shutdown.
func Start(ctx context.Context, dbPool *pgxpool.Pool, mailer mailer.Mailer, maxWorkers int) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewVerificationEmailWorker(mailer))
	river.AddWorker(workers, NewWelcomeEmailWorker(mailer))
	river.AddWorker(workers, NewPasswordResetEmailWorker(mailer))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
