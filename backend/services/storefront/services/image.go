package services

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore uploads product images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ImageUpload is a product image posted with the admin form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// IsAllowedImage accepts jpeg, png, webp and gif by content type or extension.
func IsAllowedImage(filename, contentType string) bool {
	if _, ok := imageExtensions[strings.ToLower(contentType)]; ok {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}
	return false
}

// imageKey builds "<prefix>/<uuid><ext>".
func imageKey(prefix string, img ImageUpload) string {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext == "" {
		ext = imageExtensions[strings.ToLower(img.ContentType)]
	}
	name := uuid.NewString() + ext
	if prefix == "" {
		return name
	}
	return path.Join(strings.Trim(prefix, "/"), name)
}
