package service

import (
	"context"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// MemberService é a interface de lógica de negócio dos integrantes.
type MemberService interface {
	List(ctx context.Context) ([]*model.Member, error)
	GetByID(ctx context.Context, id string) (*model.Member, error)
	Create(ctx context.Context, member *model.Member) error
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id string) error
}
