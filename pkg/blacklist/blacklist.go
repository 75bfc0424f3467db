// Package blacklist tracks revoked JWT IDs so still-unexpired tokens can be
// rejected after logout or refresh rotation. Entries expire together with the
// token they revoke, keeping the set small.
//
//go:generate mockgen -package mockblacklist -source=blacklist.go -destination=mock/mockblacklist.go *
package blacklist

import (
	"context"
	"time"
)

// Blacklist is the revocation store consulted by the auth middleware on every
// authenticated request and written on logout and refresh rotation.
type Blacklist interface {
	// Revoke marks the given token ID as revoked for ttl. A non-positive ttl
	// means the token already expired and the call is a no-op.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked reports whether the given token ID has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// Ping verifies the backing store is reachable. Used by the health endpoint.
	Ping(ctx context.Context) error
	// Close releases the underlying connection resources.
	Close() error
}
