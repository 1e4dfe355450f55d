package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
	"github.com/luis-octavius/stasis-ufrrj/internal/repository"
)

// DefaultPageSize é o tamanho de página da listagem pública de postagens.
const DefaultPageSize = 5

// MaxPageSize limita o parâmetro limit vindo da query string.
const MaxPageSize = 50

// PostServiceImpl é a implementação de PostService.
type PostServiceImpl struct {
	postRepo repository.PostRepository
}

// NewPostService cria um PostServiceImpl (DI: PostRepository injetado).
func NewPostService(postRepo repository.PostRepository) PostService {
	return &PostServiceImpl{postRepo: postRepo}
}

// ListPage retorna uma página de postagens mais recentes primeiro.
func (s *PostServiceImpl) ListPage(ctx context.Context, cursor string, limit int) (*model.PostPage, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return s.postRepo.ListPage(ctx, cursor, limit)
}

// ListRecent retorna as postagens mais recentes para o carrossel da home.
func (s *PostServiceImpl) ListRecent(ctx context.Context, limit int) ([]*model.Post, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = 10
	}
	return s.postRepo.ListRecent(ctx, limit)
}

// GetBySlug busca uma postagem pelo slug.
func (s *PostServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return s.postRepo.GetBySlug(ctx, slug)
}

// ListSlugs enumera todos os slugs conhecidos.
func (s *PostServiceImpl) ListSlugs(ctx context.Context) ([]string, error) {
	return s.postRepo.ListSlugs(ctx)
}

// Create insere uma postagem. Slug vazio é derivado do título.
func (s *PostServiceImpl) Create(ctx context.Context, post *model.Post) error {
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	return s.postRepo.Create(ctx, post)
}

// Update grava os campos editáveis da postagem.
func (s *PostServiceImpl) Update(ctx context.Context, post *model.Post) error {
	return s.postRepo.Update(ctx, post)
}

// Delete remove uma postagem.
func (s *PostServiceImpl) Delete(ctx context.Context, id string) error {
	return s.postRepo.Delete(ctx, id)
}

var reNonSlug = regexp.MustCompile(`[^a-z0-9]+`)

var slugReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// Slugify converte um título em slug seguro para URL
// (ex.: "Platão e a Pólis" -> "platao-e-a-polis").
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugReplacer.Replace(s)
	s = reNonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
