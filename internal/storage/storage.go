// Package storage provides blob storage for uploaded and derived PDF files.
// It defines a System interface and a filesystem implementation suitable for
// single-node deployments.
package storage

import (
	"context"
	"errors"
)

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrInvalidKey indicates the key is malformed or contains invalid characters.
	// This includes empty keys and path traversal attempts.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// System defines the storage operations interface for blob storage.
type System interface {
	// Store saves data at the specified key, overwriting any existing
	// contents. Parent directories are created as needed.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the data at the specified key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error
}
