package storage

import (
	"context"
	"io"
)

// Storage abstrai o armazenamento de objetos binários (imagens de postagens
// e de integrantes). Implementações: disco local e S3 (MinIO/R2 compatível).
type Storage interface {
	// Save grava o objeto sob a chave dada e devolve a URL pública estável.
	// key é um caminho único (ex.: "post-images/<uuid>-arquivo.jpg").
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete remove o objeto da chave dada.
	Delete(ctx context.Context, key string) error

	// KeyFromURL extrai a chave de uma URL gerada por Save; retorna "" se a
	// URL não pertence a este storage.
	KeyFromURL(url string) string
}
