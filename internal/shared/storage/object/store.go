package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	// Save stores the reader under a generated key scoped to the given run.
	Save(ctx context.Context, runID string, fileName string, contentType string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	// Open retrieves a stored object for reading.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
