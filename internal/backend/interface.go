package backend

import (
	"context"

	"caulong/internal/storage"
)

// BackendType identifies a storage backend implementation
type BackendType string

const (
	BlobBackend   BackendType = "blob"
	SQLiteBackend BackendType = "sqlite"
)

func (t BackendType) String() string {
	return string(t)
}

// IsValid reports whether the backend type is supported
func (t BackendType) IsValid() bool {
	switch t {
	case BlobBackend, SQLiteBackend:
		return true
	}
	return false
}

// CleanupFunc releases resources held by a backend
type CleanupFunc func() error

// BackendResult contains the store instance and optional cleanup function
type BackendResult struct {
	Store   storage.Store
	Cleanup CleanupFunc
}

// Factory creates storage backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}
