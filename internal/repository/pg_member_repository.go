package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// PgMemberRepository é a implementação PostgreSQL de MemberRepository.
type PgMemberRepository struct {
	pool *pgxpool.Pool
}

// NewPgMemberRepository cria um PgMemberRepository.
func NewPgMemberRepository(pool *pgxpool.Pool) *PgMemberRepository {
	return &PgMemberRepository{pool: pool}
}

const memberSelectCols = `id, name, instituicao, area_pesquisa, curriculo_lattes, image_url`

// scanMember é a fronteira de decodificação: colunas NULL permanecem nil nos
// campos opcionais, nunca viram string vazia.
func scanMember(scan func(...any) error) (*model.Member, error) {
	var m model.Member
	if err := scan(&m.ID, &m.Name, &m.Instituicao, &m.AreaPesquisa, &m.CurriculoLattes, &m.ImageURL); err != nil {
		return nil, err
	}
	return &m, nil
}

// List retorna todos os integrantes ordenados por nome.
func (r *PgMemberRepository) List(ctx context.Context) ([]*model.Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+memberSelectCols+` FROM integrantes ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*model.Member
	for rows.Next() {
		m, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetByID busca um integrante pelo id.
func (r *PgMemberRepository) GetByID(ctx context.Context, id string) (*model.Member, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+memberSelectCols+` FROM integrantes WHERE id = $1`, id)
	m, err := scanMember(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Create insere um integrante e preenche o id.
func (r *PgMemberRepository) Create(ctx context.Context, member *model.Member) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO integrantes (name, instituicao, area_pesquisa, curriculo_lattes, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		member.Name, member.Instituicao, member.AreaPesquisa, member.CurriculoLattes, member.ImageURL,
	).Scan(&member.ID)
}

// Update grava todos os campos editáveis. Última escrita vence.
func (r *PgMemberRepository) Update(ctx context.Context, member *model.Member) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE integrantes SET name = $1, instituicao = $2, area_pesquisa = $3,
		 curriculo_lattes = $4, image_url = $5, updated_at = NOW()
		 WHERE id = $6`,
		member.Name, member.Instituicao, member.AreaPesquisa, member.CurriculoLattes, member.ImageURL, member.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete remove um integrante pelo id.
func (r *PgMemberRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM integrantes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateImageURL grava apenas image_url (nil limpa a coluna).
func (r *PgMemberRepository) UpdateImageURL(ctx context.Context, id string, imageURL *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE integrantes SET image_url = $1, updated_at = NOW() WHERE id = $2`,
		imageURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
