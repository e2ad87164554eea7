package storage

import (
	"context"
	"io"
)

// FileStorage abstracts where evidence photos live. The patrol and incident
// services only ever see the returned path/key; URL building happens at the
// transport layer.
type FileStorage interface {
	// Upload writes a file and returns the storable path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// PublicURL returns the URL a client can fetch the file from
	PublicURL(path string) string

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
