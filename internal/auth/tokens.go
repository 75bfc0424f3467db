package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"calculator/pkg/domain"
	"calculator/pkg/serrors"
)

// signingMethod is the only accepted JWT algorithm. Restricting the parser to
// it rules out alg-confusion attacks.
var signingMethod = jwt.SigningMethodHS256

// TokenClaims is the validated content of an access or refresh token.
type TokenClaims struct {
	// UserID is the account the token was minted for (the sub claim).
	UserID domain.UserID
	// ID is the unique token identifier (the jti claim), used for revocation.
	ID string
	// ExpiresAt is the token expiry, used to bound the revocation TTL.
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies the HS256 token pair. Access and refresh
// tokens are signed with separate secrets so one can never be accepted in
// place of the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given secrets and lifetimes.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess mints a short-lived access token for the given user.
func (t *TokenIssuer) IssueAccess(userID domain.UserID) (string, time.Time, error) {
	return t.issue(userID, t.accessSecret, t.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for the given user.
func (t *TokenIssuer) IssueRefresh(userID domain.UserID) (string, time.Time, error) {
	return t.issue(userID, t.refreshSecret, t.refreshTTL)
}

func (t *TokenIssuer) issue(userID domain.UserID, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   uuid.UUID(userID).String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyAccess validates an access token and returns its claims.
func (t *TokenIssuer) VerifyAccess(token string) (*TokenClaims, error) {
	return verify(token, t.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (t *TokenIssuer) VerifyRefresh(token string) (*TokenClaims, error) {
	return verify(token, t.refreshSecret)
}

func verify(token string, secret []byte) (*TokenClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "invalid token claims")
	}

	return &TokenClaims{
		UserID:    domain.UserID(userID),
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
