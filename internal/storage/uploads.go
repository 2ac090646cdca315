// Package storage persists uploaded listing images on disk under a
// directory that the HTTP layer serves at /uploads.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const urlPrefix = "/uploads/"

type Uploads struct {
	dir string
}

// NewUploads ensures dir exists and returns a store over it.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

func (u *Uploads) Dir() string { return u.dir }

// Save writes the uploaded file under a generated collision-resistant
// name, keeping the original extension, and returns the served URL path.
func (u *Uploads) Save(file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(u.dir, filename))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return urlPrefix + filename, nil
}

// Remove deletes the file behind a previously returned URL path.
// Paths outside the upload prefix are ignored.
func (u *Uploads) Remove(urlPath string) error {
	if !strings.HasPrefix(urlPath, urlPrefix) {
		return nil
	}
	// path.Base strips any traversal attempt along with the prefix.
	name := path.Base(urlPath)
	if name == "." || name == "/" {
		return nil
	}
	return os.Remove(filepath.Join(u.dir, name))
}
