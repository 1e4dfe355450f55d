package service

import (
	"context"
	"sync"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// PostFeed acumula páginas da listagem pública ("carregar mais").
// Cada chamada a LoadMore anexa a próxima página à sequência já acumulada,
// nunca substituindo registros já vistos. Em caso de falha da consulta a
// sequência acumulada permanece intacta e HasMore é forçado a false para
// interromper novas tentativas automáticas; a retentativa fica a cargo do
// usuário.
type PostFeed struct {
	posts    PostService
	pageSize int

	mu      sync.Mutex
	busy    bool
	loaded  bool
	items   []*model.Post
	cursor  string
	hasMore bool
}

// NewPostFeed cria um PostFeed com o tamanho de página dado.
func NewPostFeed(posts PostService, pageSize int) *PostFeed {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PostFeed{posts: posts, pageSize: pageSize, hasMore: true}
}

// LoadMore busca a próxima página e a anexa à sequência acumulada.
// Uma chamada enquanto outra está pendente é ignorada (guarda de busy);
// o mesmo vale quando hasMore já é false.
func (f *PostFeed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.busy || (f.loaded && !f.hasMore) {
		f.mu.Unlock()
		return nil
	}
	f.busy = true
	cursor := f.cursor
	f.mu.Unlock()

	page, err := f.posts.ListPage(ctx, cursor, f.pageSize)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	f.loaded = true
	if err != nil {
		f.hasMore = false
		return err
	}

	f.items = append(f.items, page.Posts...)
	if page.NextCursor != "" {
		f.cursor = page.NextCursor
	}
	f.hasMore = page.HasMore
	return nil
}

// Posts retorna a sequência acumulada até agora.
func (f *PostFeed) Posts() []*model.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Post, len(f.items))
	copy(out, f.items)
	return out
}

// HasMore indica se ainda há registros após o cursor atual.
func (f *PostFeed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}
