package service

import (
	"context"
	"io"
	"strings"

	"project_space/internal/models"
)

// ImageHost stores an image and returns its public identifier and URL.
type ImageHost interface {
	Upload(ctx context.Context, r io.Reader) (models.Image, error)
}

// FileUpload is a single uploaded file as received from the client.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type FileService struct {
	host ImageHost
}

func NewFileService(host ImageHost) *FileService {
	return &FileService{host: host}
}

// UploadImage forwards f to the image host.
func (s *FileService) UploadImage(ctx context.Context, f FileUpload) (models.Image, error) {
	if f.Body == nil || f.Size == 0 {
		return models.Image{}, ErrNoImage
	}
	if ct := f.ContentType; ct != "" && !strings.HasPrefix(ct, "image/") && ct != "application/octet-stream" {
		return models.Image{}, ErrNotAnImage
	}
	return s.host.Upload(ctx, f.Body)
}
