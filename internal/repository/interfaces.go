package repository

import "context"

// KVRepo is a string key-value store. Values are opaque to the repository;
// callers own their serialization.
type KVRepo interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) (string, error)
	// Put overwrites any existing value.
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
