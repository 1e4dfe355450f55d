package service

import (
	"context"
	"errors"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
	"github.com/luis-octavius/stasis-ufrrj/internal/repository"
)

// ErrMemberInvalid indica campos obrigatórios ausentes (name, instituicao).
var ErrMemberInvalid = errors.New("member: name and instituicao are required")

// MemberServiceImpl é a implementação de MemberService.
type MemberServiceImpl struct {
	memberRepo repository.MemberRepository
}

// NewMemberService cria um MemberServiceImpl (DI: MemberRepository injetado).
func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &MemberServiceImpl{memberRepo: memberRepo}
}

// List retorna todos os integrantes ordenados por nome.
func (s *MemberServiceImpl) List(ctx context.Context) ([]*model.Member, error) {
	return s.memberRepo.List(ctx)
}

// GetByID busca um integrante pelo id.
func (s *MemberServiceImpl) GetByID(ctx context.Context, id string) (*model.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

// Create insere um integrante após checagem de presença dos obrigatórios.
// Campos opcionais em branco são normalizados para nil, para que nunca
// persistam como string vazia.
func (s *MemberServiceImpl) Create(ctx context.Context, member *model.Member) error {
	if member.Name == "" || member.Instituicao == "" {
		return ErrMemberInvalid
	}
	normalizeOptional(member)
	return s.memberRepo.Create(ctx, member)
}

// Update grava os campos editáveis do integrante.
func (s *MemberServiceImpl) Update(ctx context.Context, member *model.Member) error {
	if member.Name == "" || member.Instituicao == "" {
		return ErrMemberInvalid
	}
	normalizeOptional(member)
	return s.memberRepo.Update(ctx, member)
}

// Delete remove um integrante.
func (s *MemberServiceImpl) Delete(ctx context.Context, id string) error {
	return s.memberRepo.Delete(ctx, id)
}

func normalizeOptional(m *model.Member) {
	if m.AreaPesquisa != nil && *m.AreaPesquisa == "" {
		m.AreaPesquisa = nil
	}
	if m.CurriculoLattes != nil && *m.CurriculoLattes == "" {
		m.CurriculoLattes = nil
	}
	if m.ImageURL != nil && *m.ImageURL == "" {
		m.ImageURL = nil
	}
}
