// Package storage abstracts the blob store holding product images.
// Keys are deterministic — clothing/{productID}_{side}{ext} — so a record's
// blobs can be recovered from the record id alone.
package storage

import (
	"context"
	"io"
)

type Storage interface {
	// Put writes the blob under key and returns its public URL.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL recovers the storage key from a public URL previously
	// returned by Put. ok=false when the URL does not belong to this store.
	KeyFromURL(rawURL string) (key string, ok bool)
}
