package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorage_SaveDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads")
	ctx := context.Background()

	url, err := s.Save(ctx, "post-images/abc-foto.jpg", strings.NewReader("jpegdata"), "image/jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/uploads/post-images/abc-foto.jpg" {
		t.Errorf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "post-images", "abc-foto.jpg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "jpegdata" {
		t.Errorf("unexpected content %q", data)
	}

	if err := s.Delete(ctx, "post-images/abc-foto.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "post-images", "abc-foto.jpg")); !os.IsNotExist(err) {
		t.Error("expected file to be gone after Delete")
	}
}

func TestLocalStorage_DeleteMissingIsNoError(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/uploads")
	if err := s.Delete(context.Background(), "nao-existe.png"); err != nil {
		t.Errorf("Delete of missing key should be a no-op, got %v", err)
	}
}

func TestLocalStorage_KeyFromURL(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/uploads")

	if got := s.KeyFromURL("/uploads/integrantes/x.png"); got != "integrantes/x.png" {
		t.Errorf("expected key, got %q", got)
	}
	if got := s.KeyFromURL("https://outro.example.com/x.png"); got != "" {
		t.Errorf("foreign URL must map to empty key, got %q", got)
	}
}
