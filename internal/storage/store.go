package storage

import "context"

// BlobStore is the object-storage surface the archive writer needs: put one
// object at a deterministic key. Keys are deterministic per message, so a
// re-run overwrites rather than duplicates.
type BlobStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
