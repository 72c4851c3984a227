// Package kv provides the flat string-to-string store the blog persists into.
// The contract is deliberately small: atomic replace on a single key, no
// transactions across keys, no range scans.
package kv

import "context"

type Store interface {
	// Get returns the value for key. The second return value is false when
	// the key is absent; err is reserved for store-level failures.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put atomically replaces the value for key.
	Put(ctx context.Context, key string, value string) error

	Close() error
}
