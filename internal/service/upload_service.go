package service

import (
	"context"
	"fmt"
	"io"
	"time"

	apperrors "studentportal/internal/errors"
	"studentportal/internal/storage"
)

// UploadService stores deliverables and payment proofs and returns their
// public reference path.
type UploadService interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type uploadService struct {
	files    storage.FileStore
	maxBytes int64
	now      func() time.Time
}

// NewUploadService creates an upload service. maxBytes <= 0 disables the size limit.
func NewUploadService(files storage.FileStore, maxBytes int64) UploadService {
	return &uploadService{files: files, maxBytes: maxBytes, now: time.Now}
}

func (s *uploadService) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", apperrors.NewInvalidEntityData("file", fmt.Sprintf("exceeds %d bytes", s.maxBytes))
	}

	name := storage.StoredName(filename, s.now().UTC())
	if err := s.files.Save(ctx, name, r, size, contentType); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return storage.URL(name), nil
}

func (s *uploadService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.files.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return rc, nil
}
