// Package storage is the durable key/value table behind the session store.
// It plays the role browser localStorage plays for a web front-end: string
// keys, opaque values, one row per key.
package storage

import (
	"context"
)

// Repository reads and writes key/value rows. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
