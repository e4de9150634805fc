package uploads

import (
	"context"
	"io"
)

// Storage persists uploaded objects and returns the URL they are served under.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}
