// Package storage persists uploaded media objects.
package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrObjectNotFound is returned by Open when no object exists at key.
	ErrObjectNotFound = errors.New("storage object not found")
	// ErrInvalidKey is returned for keys that escape the storage root.
	ErrInvalidKey = errors.New("invalid storage key")
)

// Storage stores opaque objects under slash-separated keys.
type Storage interface {
	Put(ctx context.Context, key string, content io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}
