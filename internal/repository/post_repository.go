package repository

import (
	"context"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// PostRepository é a interface de persistência de postagens.
type PostRepository interface {
	// ListPage retorna uma página de postagens (created_at DESC, id DESC).
	// cursor vazio significa primeira página.
	ListPage(ctx context.Context, cursor string, limit int) (*model.PostPage, error)
	// ListRecent retorna as postagens mais recentes para o carrossel da home.
	ListRecent(ctx context.Context, limit int) ([]*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	// ListSlugs enumera todos os slugs conhecidos (export estático).
	ListSlugs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
	UpdateImageURL(ctx context.Context, id, imageURL string) error
}
