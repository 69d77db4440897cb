// Package kvstore provides the collection-keyed persistence adapter. Each
// business collection is stored wholesale under a fixed key; every mutation
// overwrites the full serialized collection.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a key-value adapter over one of the supported backends.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
