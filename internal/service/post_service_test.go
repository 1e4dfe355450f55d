package service

import (
	"context"
	"testing"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
	"github.com/luis-octavius/stasis-ufrrj/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPostRepository é o mock de PostRepository
type mockPostRepository struct {
	listPageFunc  func(ctx context.Context, cursor string, limit int) (*model.PostPage, error)
	getBySlugFunc func(ctx context.Context, slug string) (*model.Post, error)
	createFunc    func(ctx context.Context, p *model.Post) error
}

func (m *mockPostRepository) ListPage(ctx context.Context, cursor string, limit int) (*model.PostPage, error) {
	if m.listPageFunc != nil {
		return m.listPageFunc(ctx, cursor, limit)
	}
	return &model.PostPage{}, nil
}

func (m *mockPostRepository) ListRecent(ctx context.Context, limit int) ([]*model.Post, error) {
	return nil, nil
}

func (m *mockPostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return nil, repository.ErrNotFound
}

func (m *mockPostRepository) ListSlugs(ctx context.Context) ([]string, error) { return nil, nil }

func (m *mockPostRepository) Create(ctx context.Context, p *model.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}

func (m *mockPostRepository) Update(ctx context.Context, p *model.Post) error { return nil }
func (m *mockPostRepository) Delete(ctx context.Context, id string) error     { return nil }
func (m *mockPostRepository) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	return nil
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Platão e a Pólis":         "platao-e-a-polis",
		"  A Stásis em Tucídides ": "a-stasis-em-tucidides",
		"Ética a Nicômaco: livro I": "etica-a-nicomaco-livro-i",
		"já-um-slug":               "ja-um-slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestPostService_Create_DerivesSlugFromTitle(t *testing.T) {
	repo := &mockPostRepository{}
	svc := NewPostService(repo)

	p := &model.Post{Title: "Sobre a Guerra Civil", AuthorID: "u1", Content: "..."}
	require.NoError(t, svc.Create(context.Background(), p))
	assert.Equal(t, "sobre-a-guerra-civil", p.Slug)

	// Slug explícito é preservado.
	p2 := &model.Post{Title: "Outro", Slug: "meu-slug", AuthorID: "u1"}
	require.NoError(t, svc.Create(context.Background(), p2))
	assert.Equal(t, "meu-slug", p2.Slug)
}

func TestPostService_ListPage_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockPostRepository{
		listPageFunc: func(ctx context.Context, cursor string, limit int) (*model.PostPage, error) {
			gotLimit = limit
			return &model.PostPage{}, nil
		},
	}
	svc := NewPostService(repo)
	ctx := context.Background()

	_, err := svc.ListPage(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, gotLimit)

	_, err = svc.ListPage(ctx, "", 9999)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, gotLimit)

	_, err = svc.ListPage(ctx, "", 6)
	require.NoError(t, err)
	assert.Equal(t, 6, gotLimit)
}
