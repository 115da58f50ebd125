// Package metadata is a small key/value store in the local database. It
// keeps the offline-login material and client bookkeeping.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyUsername = "username"
	KeySalt     = "salt"
	KeyVerifier = "verifier"
	// KeyNotifiedTimer holds the id of the last timer a long-running
	// notification was raised for.
	KeyNotifiedTimer = "notified_timer"
)

// Repository returns (nil, nil) from Get when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
