// Package auth implements account lifecycle and token management: registration
// with email verification, login, refresh-token rotation, logout with token
// revocation and password reset.
package auth

import (
	"context"
	"time"

	"calculator/pkg/domain"
)

// RegisterParams carries the fields accepted at registration.
type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Session is the result of a successful login or refresh: a freshly minted
// token pair plus the authenticated user.
type Session struct {
	// AccessToken is a short-lived bearer token for API requests.
	AccessToken string
	// RefreshToken is a long-lived token accepted only by Refresh and Logout.
	RefreshToken string
	// ExpiresAt is the access token expiry.
	ExpiresAt time.Time
	// User is the authenticated account.
	User domain.User
}

//go:generate mockgen -package mockauth -source=interface.go -destination=mock/mockauth.go *
type Auth interface {
	// Register creates a new unverified account and queues a verification email.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)
	// VerifyEmail consumes a verification nonce, marks the account verified and
	// queues a welcome email.
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)
	// ResendVerification rotates the verification nonce and queues a new email.
	// It succeeds silently when the address is unknown.
	ResendVerification(ctx context.Context, email string) error
	// Login exchanges credentials for a token pair. login matches username or email.
	Login(ctx context.Context, login, password string) (*Session, error)
	// Refresh rotates a refresh token into a new token pair, revoking the old one.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	// Logout revokes the access token, and the refresh token when one is
	// presented, for the remainder of their lifetimes.
	Logout(ctx context.Context, accessToken, refreshToken string) error
	// ForgotPassword queues a password-reset email. It succeeds silently when
	// the address is unknown.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a reset nonce and replaces the password.
	ResetPassword(ctx context.Context, token, newPassword string) error
	// Authenticate validates an access token and returns the account it belongs
	// to. Revoked tokens and inactive accounts are rejected.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
	// UserByID fetches an account by ID.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}
