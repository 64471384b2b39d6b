package storage

import (
	"context"
	"errors"
)

// Well-known keys, kept bit-compatible with the payloads earlier
// storefront versions persisted.
const (
	KeyCart  = "super_cart_v1"
	KeyAuth  = "super_auth_v1"
	KeyTheme = "super_theme_v1"
	KeyEco   = "super_eco_v1"
)

// ErrMalformed wraps decode failures so callers can tell a corrupt
// persisted payload apart from a transport failure. Corrupt payloads are
// purged and treated as absent, never repaired.
var ErrMalformed = errors.New("malformed stored payload")

// Store is the durable local key/value store behind the cart, session
// and preference state. Values are JSON documents.
type Store interface {
	// Get decodes the value under key into value, reporting whether the
	// key existed. A defective payload returns an error wrapping
	// ErrMalformed.
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
