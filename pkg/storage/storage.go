// Package storage uploads media buffers to a remote object store and removes them by id.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Object is what the store hands back after an upload.
type Object struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// MediaStore is the contract every backend fulfils.
type MediaStore interface {
	Upload(ctx context.Context, folder, filename string, body io.Reader, size int64, contentType string) (*Object, error)
	Delete(ctx context.Context, publicID string) error
	URL(publicID string) string
}

// ObjectKey builds "<folder>/<yyyy>/<mm>/<uuid>-<slug>.<ext>" from an uploaded file name.
func ObjectKey(folder, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	base := slug.Make(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if base == "" {
		base = "file"
	}
	if len(base) > 48 {
		base = base[:48]
	}
	name := fmt.Sprintf("%s-%s%s", uuid.NewString(), base, ext)
	return path.Join(strings.Trim(folder, "/"), now.Format("2006"), now.Format("01"), name)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// File is an upload received from a client.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// OpenFormFile opens a multipart file. The caller closes the returned closer.
func OpenFormFile(fh *multipart.FileHeader) (*File, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	return &File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}
