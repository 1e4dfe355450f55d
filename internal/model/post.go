package model

import "time"

// Post representa uma postagem do blog. O slug é o identificador usado nas
// rotas públicas; o id é o identificador atribuído pelo banco.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Excerpt returns a plain prefix of the content for list views, mirroring the
// card rendering on the public site.
func (p *Post) Excerpt(maxLen int) string {
	r := []rune(p.Content)
	if len(r) <= maxLen {
		return p.Content
	}
	return string(r[:maxLen]) + "..."
}

// PostPage é uma página de postagens com paginação por cursor.
// HasMore é determinado por uma consulta de lookahead de um registro,
// nunca pelo tamanho da página retornada.
type PostPage struct {
	Posts      []*Post `json:"posts"`
	NextCursor string  `json:"nextCursor,omitempty"`
	HasMore    bool    `json:"hasMore"`
}
