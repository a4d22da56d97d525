package localstore

import (
	"context"
)

// Well-known slot keys.
const (
	KeyAuthenticated = "isAuthenticated"
	KeyActiveEmail   = "activeEmail"

	// Legacy layout, read once by storage init and then removed.
	KeyLegacyUser  = "user"
	KeyLegacyUsers = "users"
)

// AuthenticatedValue is the only value of KeyAuthenticated that means "signed in".
const AuthenticatedValue = "true"

// Repository is a string-keyed slot store with local-storage semantics:
// a missing key is not an error, writes overwrite the whole value.
type Repository interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
