package service

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"monastery360/backend/go/internal/models"
)

// SaveMedia stores an uploaded file under a generated name and records
// it against the site. The original filename only contributes its
// extension.
func (s *Service) SaveMedia(ctx context.Context, monasteryID uint, originalName string, r io.Reader, size int64, contentType, title, mediaType string) (*models.Media, error) {
	name := uuid.New().String() + filepath.Ext(originalName)

	if err := s.media.Save(ctx, name, r, size, contentType); err != nil {
		return nil, err
	}

	row := &models.Media{
		Title:    title,
		Type:     mediaType,
		FilePath: name,
	}
	if err := s.store.AddMedia(monasteryID, row); err != nil {
		return nil, err
	}
	return row, nil
}

// OpenMedia streams a stored file back by name.
func (s *Service) OpenMedia(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.media.Open(ctx, name)
}

// MediaURL builds the public URL for a stored file name.
func (s *Service) MediaURL(name string) string {
	return s.cfg.Server.BaseURL + "/media/" + name
}
