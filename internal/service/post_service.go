package service

import (
	"context"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// PostService é a interface de lógica de negócio das postagens.
type PostService interface {
	ListPage(ctx context.Context, cursor string, limit int) (*model.PostPage, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListSlugs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}
