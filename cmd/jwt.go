package main

import (
	"calculator/internal/auth"
	"calculator/internal/config"
	"calculator/pkg/domain"
	"calculator/pkg/logger"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// JWTCommand constructs the 'jwt' subcommand that generates a signed token
// pair for a given user ID using the configured secrets. Intended for local
// development and debugging.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates a JWT token pair for given user ID",
		Run: func(cmd *cobra.Command, args []string) {
			subject, _ := cmd.Flags().GetString("subject")

			userID, err := uuid.Parse(subject)
			if err != nil {
				logger.Fatal(context.Background(), "subject must be a user UUID", zap.Error(err))
			}

			issuer := auth.NewTokenIssuer(
				cfg.JWT.SecretKey,
				cfg.JWT.RefreshSecretKey,
				cfg.AccessTokenTTL(),
				cfg.RefreshTokenTTL(),
			)

			access, expiresAt, err := issuer.IssueAccess(domain.UserID(userID))
			if err != nil {
				logger.Fatal(context.Background(), "could not sign access token", zap.Error(err))
			}
			refresh, _, err := issuer.IssueRefresh(domain.UserID(userID))
			if err != nil {
				logger.Fatal(context.Background(), "could not sign refresh token", zap.Error(err))
			}

			fmt.Println("access token: " + access)           //nolint: forbidigo
			fmt.Println("refresh token: " + refresh)         //nolint: forbidigo
			fmt.Println("expires at: " + expiresAt.String()) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subject", "", "User ID to mint the tokens for")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
