package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage grava objetos no sistema de arquivos local, servidos pelo
// próprio servidor sob urlPrefix.
type LocalStorage struct {
	baseDir   string // diretório raiz no disco (ex.: "./uploads")
	urlPrefix string // prefixo de URL público (ex.: "/uploads")
}

// NewLocalStorage cria um LocalStorage.
func NewLocalStorage(baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

func (s *LocalStorage) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	dest := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("storage: write: %w", err)
	}

	return s.urlPrefix + "/" + key, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	dest := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove: %w", err)
	}
	return nil
}

func (s *LocalStorage) KeyFromURL(url string) string {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return ""
	}
	return strings.TrimPrefix(url, s.urlPrefix+"/")
}
