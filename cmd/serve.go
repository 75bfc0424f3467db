package main

import (
	"calculator/internal/api"
	"calculator/internal/api/handler/v1handler"
	"calculator/internal/auth"
	"calculator/internal/calculation"
	"calculator/internal/config"
	"calculator/internal/worker"
	"calculator/pkg/blacklist"
	"calculator/pkg/logger"
	"calculator/pkg/mailer"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, deps api.Deps, cfg *config.Config) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background email workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			revoked, err := blacklist.New(cfg.Redis.URL)
			if err != nil {
				logger.Fatal(ctx, "could not create redis blacklist", zap.Error(err))
			}
			defer func() {
				logger.Info(ctx, "closing redis client...")
				if err := revoked.Close(); err != nil {
					logger.Warn(ctx, "could not close redis connection", zap.Error(err))
				}
			}()

			mail := mailer.NewSMTP(mailer.Options{
				Host:     cfg.SMTP.Host,
				Port:     cfg.SMTP.Port,
				Username: cfg.SMTP.User,
				Password: cfg.SMTP.Password,
				From:     cfg.SMTP.From,
				AppName:  cfg.AppName,
				BaseURL:  cfg.BaseURL,
			})

			riverClient, err := worker.Start(ctx, strg.Pool, mail, cfg.Worker.MaxWorkers)
			if err != nil {
				logger.Fatal(ctx, "could not start background workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, api.Deps{
				Deps: v1handler.Deps{
					Auth:       auth.New(strg, revoked, auth.NewOptions(cfg)),
					Calculator: calculation.New(strg),
				},
				Storage:   strg,
				Blacklist: revoked,
			}, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(ctx, "stopping background workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop background workers", zap.Error(err))
			}
		},
	}

	return cmd
}
