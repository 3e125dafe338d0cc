// Package blob stores uploaded files on local disk or an S3 compatible bucket.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("object not found")

// ErrRejected wraps upload validation failures.
var ErrRejected = errors.New("upload rejected")

// Object describes a stored upload.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Store persists objects and maps keys to public URLs.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (Object, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL reverses the URL of an object this store produced.
	KeyFromURL(url string) (string, bool)
	Driver() string
}
