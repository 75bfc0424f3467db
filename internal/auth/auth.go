package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	emailaddress "github.com/mcnijman/go-emailaddress"
	"golang.org/x/crypto/bcrypt"

	"calculator/internal/config"
	"calculator/pkg/blacklist"
	"calculator/pkg/domain"
	"calculator/pkg/serrors"
	"calculator/pkg/storage"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6

	// nonceBytes is the entropy of verification and reset tokens.
	nonceBytes = 32
)

// Options configure token lifetimes and email delivery retries. These settings
// are typically derived from application configuration.
type Options struct {
	// AccessSecret and RefreshSecret sign the two token kinds.
	AccessSecret  string
	RefreshSecret string
	// AccessTTL and RefreshTTL are the token lifetimes.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// VerificationTTL is the lifetime of an email verification nonce.
	VerificationTTL time.Duration
	// ResetTTL is the lifetime of a password-reset nonce.
	ResetTTL time.Duration
	// EmailMaxAttempts is the number of delivery attempts per email job.
	EmailMaxAttempts int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		AccessSecret:     cfg.JWT.SecretKey,
		RefreshSecret:    cfg.JWT.RefreshSecretKey,
		AccessTTL:        cfg.AccessTokenTTL(),
		RefreshTTL:       cfg.RefreshTokenTTL(),
		VerificationTTL:  cfg.VerificationTTL(),
		ResetTTL:         cfg.ResetTTL(),
		EmailMaxAttempts: cfg.Worker.EmailMaxAttempts,
	}
}

// auth is the concrete implementation of the Auth interface. It coordinates
// persistence, token minting and revocation, and email job enqueueing.
type auth struct {
	options   Options
	storage   storage.Storage
	blacklist blacklist.Blacklist
	tokens    *TokenIssuer
}

// New creates a new Auth instance backed by the provided storage and blacklist.
func New(storage storage.Storage, blacklist blacklist.Blacklist, options Options) Auth {
	return &auth{
		options:   options,
		storage:   storage,
		blacklist: blacklist,
		tokens: NewTokenIssuer(options.AccessSecret, options.RefreshSecret,
			options.AccessTTL, options.RefreshTTL),
	}
}

// Register creates a new unverified account and, in the same transaction,
// enqueues the verification email job.
func (a auth) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	if err := validateRegistration(params); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}

	var user *domain.User
	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		stored, err := tx.StoreUser(ctx, domain.User{
			Username:            params.Username,
			Email:               params.Email,
			PasswordHash:        string(hash),
			FirstName:           params.FirstName,
			LastName:            params.LastName,
			IsActive:            true,
			VerificationToken:   nonce,
			VerificationExpires: time.Now().Add(a.options.VerificationTTL),
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return serrors.Wrap(serrors.ErrConflict, err, "username or email already registered")
			}

			return fmt.Errorf("could not store user: %w", err)
		}
		user = stored

		if _, err := tx.AddJob(ctx, VerificationEmailArgs{
			Email:       stored.Email,
			Username:    stored.Username,
			Token:       nonce,
			maxAttempts: a.options.EmailMaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not register user: %w", err)
	}

	return user, nil
}

// VerifyEmail consumes a verification nonce. The nonce is single use: the
// update that marks the account verified also clears it.
func (a auth) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	user, err := a.storage.UserByVerificationToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid verification token")
	}
	if time.Now().After(user.VerificationExpires) {
		return nil, serrors.With(serrors.ErrBadRequest, "verification token expired")
	}

	verified := true
	clearToken := ""
	clearExpires := time.Time{}

	var updated *domain.User
	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.UpdateUserByID(ctx, user.ID, storage.UserUpdates{
			IsVerified:          &verified,
			VerificationToken:   &clearToken,
			VerificationExpires: &clearExpires,
		})
		if err != nil {
			return fmt.Errorf("could not update user: %w", err)
		}
		if res == nil {
			return serrors.With(serrors.ErrBadRequest, "invalid verification token")
		}
		updated = res

		if _, err := tx.AddJob(ctx, WelcomeEmailArgs{
			Email:       updated.Email,
			Username:    updated.Username,
			FirstName:   updated.FirstName,
			maxAttempts: a.options.EmailMaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not verify email: %w", err)
	}

	return updated, nil
}

// ResendVerification rotates the verification nonce and enqueues a new email.
// Unknown addresses succeed silently so the endpoint cannot be used to probe
// which emails are registered.
func (a auth) ResendVerification(ctx context.Context, email string) error {
	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil
	}
	if user.IsVerified {
		return serrors.With(serrors.ErrConflict, "email already verified")
	}

	nonce, err := newNonce()
	if err != nil {
		return err
	}
	expires := time.Now().Add(a.options.VerificationTTL)

	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if _, err := tx.UpdateUserByID(ctx, user.ID, storage.UserUpdates{
			VerificationToken:   &nonce,
			VerificationExpires: &expires,
		}); err != nil {
			return fmt.Errorf("could not update user: %w", err)
		}

		if _, err := tx.AddJob(ctx, VerificationEmailArgs{
			Email:       user.Email,
			Username:    user.Username,
			Token:       nonce,
			maxAttempts: a.options.EmailMaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("could not resend verification: %w", err)
	}

	return nil
}

// Login exchanges credentials for a token pair. Bad credentials are reported
// with the same error whether the account exists or not.
func (a auth) Login(ctx context.Context, login, password string) (*Session, error) {
	user, err := a.storage.UserByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "incorrect username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "incorrect username or password")
	}
	if !user.IsVerified {
		return nil, serrors.With(serrors.ErrForbidden, "email address not verified")
	}
	if !user.IsActive {
		return nil, serrors.With(serrors.ErrForbidden, "account is disabled")
	}

	return a.newSession(*user)
}

// Refresh rotates a refresh token: the presented token is revoked for the
// remainder of its lifetime and a fresh pair is minted.
func (a auth) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := a.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := a.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("could not check blacklist: %w", err)
	}
	if revoked {
		return nil, serrors.With(serrors.ErrUnauthorized, "token has been revoked")
	}

	user, err := a.storage.UserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, serrors.With(serrors.ErrUnauthorized, "account is disabled")
	}

	if err := a.blacklist.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt)); err != nil {
		return nil, fmt.Errorf("could not revoke token: %w", err)
	}

	return a.newSession(*user)
}

// Logout revokes the presented tokens for the remainder of their lifetimes.
// The refresh token may be empty.
func (a auth) Logout(ctx context.Context, accessToken, refreshToken string) error {
	access, err := a.tokens.VerifyAccess(accessToken)
	if err != nil {
		return err
	}
	if err := a.blacklist.Revoke(ctx, access.ID, time.Until(access.ExpiresAt)); err != nil {
		return fmt.Errorf("could not revoke access token: %w", err)
	}

	// the refresh token is optional; the access token alone still logs out
	if refreshToken == "" {
		return nil
	}
	refresh, err := a.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return err
	}
	if err := a.blacklist.Revoke(ctx, refresh.ID, time.Until(refresh.ExpiresAt)); err != nil {
		return fmt.Errorf("could not revoke refresh token: %w", err)
	}

	return nil
}

// ForgotPassword stores a reset nonce and enqueues the reset email. Unknown
// addresses succeed silently.
func (a auth) ForgotPassword(ctx context.Context, email string) error {
	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil
	}

	nonce, err := newNonce()
	if err != nil {
		return err
	}
	expires := time.Now().Add(a.options.ResetTTL)

	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if _, err := tx.UpdateUserByID(ctx, user.ID, storage.UserUpdates{
			ResetToken:   &nonce,
			ResetExpires: &expires,
		}); err != nil {
			return fmt.Errorf("could not update user: %w", err)
		}

		if _, err := tx.AddJob(ctx, PasswordResetEmailArgs{
			Email:       user.Email,
			Username:    user.Username,
			Token:       nonce,
			maxAttempts: a.options.EmailMaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("could not request password reset: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset nonce and replaces the stored password hash.
func (a auth) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return serrors.With(serrors.ErrBadRequest, "password must be at least 6 characters")
	}

	user, err := a.storage.UserByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return serrors.With(serrors.ErrBadRequest, "invalid reset token")
	}
	if time.Now().After(user.ResetExpires) {
		return serrors.With(serrors.ErrBadRequest, "reset token expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	newHash := string(hash)
	clearToken := ""
	clearExpires := time.Time{}
	if _, err := a.storage.UpdateUserByID(ctx, user.ID, storage.UserUpdates{
		PasswordHash: &newHash,
		ResetToken:   &clearToken,
		ResetExpires: &clearExpires,
	}); err != nil {
		return fmt.Errorf("could not update user: %w", err)
	}

	return nil
}

// Authenticate resolves an access token to the account it belongs to.
func (a auth) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := a.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	revoked, err := a.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("could not check blacklist: %w", err)
	}
	if revoked {
		return nil, serrors.With(serrors.ErrUnauthorized, "token has been revoked")
	}

	user, err := a.storage.UserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "user not found")
	}
	if !user.IsActive {
		return nil, serrors.With(serrors.ErrForbidden, "account is disabled")
	}

	return user, nil
}

// UserByID fetches an account by ID. It returns a not-found error when no
// matching account exists.
func (a auth) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := a.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user not found")
	}

	return user, nil
}

func (a auth) newSession(user domain.User) (*Session, error) {
	access, expiresAt, err := a.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, _, err := a.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

func validateRegistration(params RegisterParams) error {
	if len(params.Username) < minUsernameLength || len(params.Username) > maxUsernameLength {
		return serrors.With(serrors.ErrBadRequest, "username must be between 3 and 50 characters")
	}
	if len(params.Password) < minPasswordLength {
		return serrors.With(serrors.ErrBadRequest, "password must be at least 6 characters")
	}
	if _, err := emailaddress.Parse(params.Email); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid email address")
	}

	return nil
}

// newNonce returns a cryptographically random hex string used for verification
// and reset links.
func newNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
