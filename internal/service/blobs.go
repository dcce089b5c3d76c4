package service

import "context"

// BlobStore is the blob storage surface the services depend on. The concrete
// implementation lives in internal/blob; tests may substitute their own.
type BlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, keys ...string) error
	DataURI(ctx context.Context, key, mimeType string) (string, bool, error)
}
