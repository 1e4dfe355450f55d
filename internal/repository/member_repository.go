package repository

import (
	"context"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// MemberRepository é a interface de persistência de integrantes.
type MemberRepository interface {
	// List retorna todos os integrantes ordenados por nome.
	List(ctx context.Context) ([]*model.Member, error)
	GetByID(ctx context.Context, id string) (*model.Member, error)
	Create(ctx context.Context, member *model.Member) error
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id string) error
	UpdateImageURL(ctx context.Context, id string, imageURL *string) error
}
