package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage keeps generated report files so they can be downloaded again later.
type FileStorage interface {
	// Upload stores content under path and returns the cleaned key
	Upload(ctx context.Context, content io.Reader, path string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored key
	GetURL(path string) string

	// List returns the files under dir, newest first
	List(ctx context.Context, dir string) ([]FileInfo, error)
}

type FileInfo struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
