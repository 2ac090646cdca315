package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("failed to read form back: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	uploads, err := NewUploads(dir)
	if err != nil {
		t.Fatalf("failed to init uploads: %v", err)
	}

	urlPath, err := uploads.Save(fileHeader(t, "photo.jpg", []byte("jpeg-bytes")))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(urlPath, "/uploads/") {
		t.Errorf("expected /uploads/ prefix, got %s", urlPath)
	}
	if !strings.HasSuffix(urlPath, ".jpg") {
		t.Errorf("expected original extension kept, got %s", urlPath)
	}

	onDisk := filepath.Join(dir, filepath.Base(urlPath))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("saved content mismatch: %q", data)
	}
}

func TestSave_UniqueNames(t *testing.T) {
	uploads, err := NewUploads(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init uploads: %v", err)
	}

	first, err := uploads.Save(fileHeader(t, "photo.jpg", []byte("a")))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := uploads.Save(fileHeader(t, "photo.jpg", []byte("b")))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Error("same original filename must not collide")
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	uploads, err := NewUploads(dir)
	if err != nil {
		t.Fatalf("failed to init uploads: %v", err)
	}

	urlPath, err := uploads.Save(fileHeader(t, "photo.png", []byte("png")))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := uploads.Remove(urlPath); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.Base(urlPath))); !os.IsNotExist(err) {
		t.Error("expected file to be gone")
	}
}

func TestRemove_IgnoresForeignPaths(t *testing.T) {
	uploads, err := NewUploads(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init uploads: %v", err)
	}

	if err := uploads.Remove("/etc/passwd"); err != nil {
		t.Errorf("foreign path should be a no-op, got %v", err)
	}
	if err := uploads.Remove("https://example.com/x.jpg"); err != nil {
		t.Errorf("foreign path should be a no-op, got %v", err)
	}
}
