package domain

import "errors"

var (
	// ErrInvalidContent means front matter was missing or lacked a required
	// field. The write is rejected before any store mutation.
	ErrInvalidContent = errors.New("invalid content")

	// ErrNotFound means a lookup found no matching key.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable wraps a failed call to the underlying store.
	// Keys already written by the same operation are not rolled back.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMalformedQuery means a required query argument was missing.
	// It is returned before any store access.
	ErrMalformedQuery = errors.New("malformed query")
)
