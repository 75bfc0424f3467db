package storage

import (
	"context"
	"time"

	"calculator/pkg/domain"
)

// UserUpdates describes a set of optional fields that can be applied to an
// existing user. Only non-nil fields are updated; updated_at is always set.
type UserUpdates struct {
	// PasswordHash, when provided, replaces the stored bcrypt hash.
	PasswordHash *string
	// IsVerified, when provided, sets the email verification flag.
	IsVerified *bool
	// IsActive, when provided, enables or disables the account.
	IsActive *bool
	// VerificationToken, when provided, replaces the pending verification
	// nonce. An empty string clears it (sets NULL).
	VerificationToken *string
	// VerificationExpires, when provided, sets the verification deadline. A
	// zero time clears it.
	VerificationExpires *time.Time
	// ResetToken, when provided, replaces the pending password-reset nonce. An
	// empty string clears it.
	ResetToken *string
	// ResetExpires, when provided, sets the reset deadline. A zero time clears it.
	ResetExpires *time.Time
}

// UserStorage defines persistence operations for user accounts. Lookup methods
// return nil (not an error) when no matching row exists; inserts and updates
// that violate uniqueness return an error wrapping ErrDuplicate.
type UserStorage interface {
	// StoreUser inserts a new user and returns the stored row as it exists in
	// the database, including generated fields.
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByID fetches a user by ID.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByEmail fetches a user by exact email address.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	// UserByLogin fetches a user whose username or email matches login.
	UserByLogin(ctx context.Context, login string) (*domain.User, error)
	// UserByVerificationToken fetches the user holding the given pending
	// verification nonce.
	UserByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	// UserByResetToken fetches the user holding the given pending reset nonce.
	UserByResetToken(ctx context.Context, token string) (*domain.User, error)
	// UpdateUserByID applies the provided field set to a single user and
	// returns the updated row, or nil when the user does not exist.
	UpdateUserByID(ctx context.Context, id domain.UserID, updates UserUpdates) (*domain.User, error)
}
