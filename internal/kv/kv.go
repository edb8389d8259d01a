// Package kv defines the key-value store contract the checklist
// repository persists through. Values are opaque strings (JSON blobs);
// keys are plain strings. Backends live in subpackages; the in-memory
// store in this package backs unit tests.
package kv

import "context"

// Store is an embedded durable string store. An absent key is not an
// error: Get reports it with ok == false. Implementations must be safe
// for use from multiple goroutines, but provide no transactions and no
// multi-key atomicity.
type Store interface {
	// Get returns the value for key, ok == false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases the backing resources.
	Close() error
}
