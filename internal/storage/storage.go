package storage

import (
	"context"
	"io"
)

// Storage reads objects by key. The caller closes the returned reader.
type Storage interface {
	GetFile(ctx context.Context, key string) (io.ReadCloser, string, error)
}
