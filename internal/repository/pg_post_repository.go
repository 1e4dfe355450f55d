package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// PgPostRepository é a implementação PostgreSQL de PostRepository.
type PgPostRepository struct {
	pool *pgxpool.Pool
}

// NewPgPostRepository cria um PgPostRepository.
func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

const postSelectCols = `id, title, slug, author_id, content, image_url, created_at, updated_at`

func scanPost(scan func(...any) error) (*model.Post, error) {
	var p model.Post
	if err := scan(&p.ID, &p.Title, &p.Slug, &p.AuthorID, &p.Content, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPage retorna uma página de postagens mais recentes primeiro.
// hasMore vem de uma consulta de lookahead de um registro após o último
// retornado, pois o tamanho da página não distingue a última página curta de
// uma página cheia.
func (r *PgPostRepository) ListPage(ctx context.Context, cur string, limit int) (*model.PostPage, error) {
	var rows pgx.Rows
	var err error
	if cur == "" {
		rows, err = r.pool.Query(ctx,
			`SELECT `+postSelectCols+` FROM posts
			 ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	} else {
		c, derr := decodeCursor(cur)
		if derr != nil {
			return nil, derr
		}
		rows, err = r.pool.Query(ctx,
			`SELECT `+postSelectCols+` FROM posts
			 WHERE (created_at, id) < ($1, $2)
			 ORDER BY created_at DESC, id DESC LIMIT $3`,
			c.CreatedAt, c.ID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := &model.PostPage{Posts: posts}
	if len(posts) == 0 {
		return page, nil
	}

	last := posts[len(posts)-1]
	page.NextCursor = EncodeCursor(last.CreatedAt, last.ID)

	// Lookahead: existe ao menos um registro estritamente após o cursor?
	var one int
	err = r.pool.QueryRow(ctx,
		`SELECT 1 FROM posts WHERE (created_at, id) < ($1, $2)
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		last.CreatedAt, last.ID).Scan(&one)
	switch {
	case err == nil:
		page.HasMore = true
	case errors.Is(err, pgx.ErrNoRows):
		page.HasMore = false
	default:
		return nil, err
	}
	return page, nil
}

// ListRecent retorna as postagens mais recentes.
func (r *PgPostRepository) ListRecent(ctx context.Context, limit int) ([]*model.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postSelectCols+` FROM posts
		 ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetBySlug busca uma postagem pelo slug (filtro de igualdade, não chave
// primária).
func (r *PgPostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+postSelectCols+` FROM posts WHERE slug = $1`, slug)
	p, err := scanPost(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListSlugs enumera todos os slugs, mais recentes primeiro.
func (r *PgPostRepository) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT slug FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

// Create insere uma postagem e preenche id e timestamps.
func (r *PgPostRepository) Create(ctx context.Context, post *model.Post) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts (title, slug, author_id, content, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		post.Title, post.Slug, post.AuthorID, post.Content, post.ImageURL,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// Update grava title, slug, content e image_url. author_id e created_at não
// mudam. Sem token de concorrência: a última escrita vence.
func (r *PgPostRepository) Update(ctx context.Context, post *model.Post) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title = $1, slug = $2, content = $3, image_url = $4, updated_at = NOW()
		 WHERE id = $5`,
		post.Title, post.Slug, post.Content, post.ImageURL, post.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSlug
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete remove uma postagem pelo id.
func (r *PgPostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateImageURL grava apenas image_url.
func (r *PgPostRepository) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET image_url = $1, updated_at = NOW() WHERE id = $2`,
		imageURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
