package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// MarshalText renders the ID in canonical UUID string form, so JSON bodies
// carry "id": "<uuid>" rather than a byte array.
func (id UserID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText() //nolint: wrapcheck
}

// UnmarshalText parses a canonical UUID string.
func (id *UserID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data) //nolint: wrapcheck
}

// User represents a registered account and its verification state.
type User struct {
	// ID is the unique identifier of the user.
	ID UserID `json:"id"`

	// Username is the unique handle chosen at registration.
	Username string `json:"username"`
	// Email is the unique, verified-or-pending email address.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash string `json:"-"`

	// FirstName and LastName are optional profile fields.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// IsVerified reports whether the email address has been confirmed.
	// Unverified users cannot log in.
	IsVerified bool `json:"isVerified"`
	// IsActive reports whether the account is enabled. Inactive users cannot
	// log in, refresh tokens, or pass the auth middleware.
	IsActive bool `json:"isActive"`

	// VerificationToken is the pending email-confirmation nonce, empty once
	// the address is verified. Single use.
	VerificationToken string `json:"-"`
	// VerificationExpires is the deadline after which VerificationToken is rejected.
	VerificationExpires time.Time `json:"-"`

	// ResetToken is the pending password-reset nonce, empty when no reset is
	// in flight. Single use.
	ResetToken string `json:"-"`
	// ResetExpires is the deadline after which ResetToken is rejected.
	ResetExpires time.Time `json:"-"`

	// CreatedAt is the time the account was registered.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time the account was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}
