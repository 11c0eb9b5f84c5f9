package media

import (
	"context"
	"errors"
	"io"

	"monastery360/backend/go/internal/config"
	miniodb "monastery360/backend/go/internal/database/minio"
)

// ErrNotFound is returned when a stored file does not exist.
var ErrNotFound = errors.New("media file not found")

// Storage persists uploaded media and serves it back by name.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewStorage builds the media backend selected by config.
func NewStorage(cfg *config.AppConfig) (Storage, error) {
	switch cfg.Media.Backend {
	case "minio":
		client, err := miniodb.GetClient(&cfg.Databases.MinIO)
		if err != nil {
			return nil, err
		}
		return NewMinIOStorage(client, cfg.Databases.MinIO.Bucket), nil
	default:
		return NewLocalStorage(cfg.Media.Root)
	}
}
