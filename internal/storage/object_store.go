// Package storage abstracts the external object store holding attachment
// payloads. The metadata row in Postgres and the stored object are two
// sequential effects with no cross-store transaction; callers own the
// partial-failure cleanup.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned by the unconfigured store placeholder.
var ErrNotConfigured = errors.New("object store not configured")

// ObjectStore stores and removes binary payloads by key.
type ObjectStore interface {
	// Put uploads the object and returns its public URL.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// Unconfigured is an ObjectStore used when no endpoint is set; every call
// fails so the error surfaces as an upstream failure instead of a panic.
type Unconfigured struct{}

func (Unconfigured) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	return "", ErrNotConfigured
}

func (Unconfigured) Remove(ctx context.Context, key string) error {
	return ErrNotConfigured
}
