package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates that the backend holds nothing under the requested key.
	ErrNotFound = errors.New("key not found")

	// ErrMalformedPersistedState indicates a stored document that cannot be
	// decoded or lacks required fields. Callers treat it as "no saved state".
	ErrMalformedPersistedState = errors.New("malformed persisted state")
)

// Backend is a key-value slot holding raw documents.
// Implementations must return ErrNotFound from Get for missing keys and must
// treat Delete of a missing key as success.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
