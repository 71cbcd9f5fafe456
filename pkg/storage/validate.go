package storage

import (
	"strings"

	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

var allowedTypes = map[string]struct{}{
	"image/jpeg":       {},
	"image/png":        {},
	"image/gif":        {},
	"image/webp":       {},
	"video/mp4":        {},
	"video/quicktime":  {},
	"video/webm":       {},
	"video/x-msvideo":  {},
	"video/x-matroska": {},
}

// Limits caps upload sizes per media type, in bytes.
type Limits struct {
	MaxImageBytes int64
	MaxVideoBytes int64
}

// TypeOf infers the media type from a mimetype prefix.
func TypeOf(contentType string) MediaType {
	if strings.HasPrefix(contentType, "image/") {
		return MediaImage
	}
	return MediaVideo
}

// Validate checks the declared mimetype and size before anything is sent to the store.
func Validate(contentType string, size int64, limits Limits) (MediaType, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if _, ok := allowedTypes[ct]; !ok {
		return "", apperrors.UnsupportedMedia(contentType)
	}

	kind := TypeOf(ct)
	limit := limits.MaxVideoBytes
	if kind == MediaImage {
		limit = limits.MaxImageBytes
	}
	if limit > 0 && size > limit {
		return "", apperrors.PayloadTooLarge(limit)
	}
	return kind, nil
}

// ValidateImage is Validate restricted to image mimetypes.
func ValidateImage(contentType string, size int64, limits Limits) error {
	kind, err := Validate(contentType, size, limits)
	if err != nil {
		return err
	}
	if kind != MediaImage {
		return apperrors.UnsupportedMedia(contentType)
	}
	return nil
}
