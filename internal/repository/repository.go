// package repository defines the persistence contract of the state store.
// The store keeps its collections in memory and writes them through a
// key-value backend; implementations live in the sub-packages.
package repository

import "context"

// KeyValueStore is a durable string-keyed blob store.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// It returns apperrors.ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// GetMany returns the values of the keys that exist. Absent keys are
	// omitted from the result rather than reported as errors.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetMany stores all entries in one atomic write: either every key is
	// updated or none is.
	SetMany(ctx context.Context, entries map[string][]byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
