package service

import (
	"context"
	"errors"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
)

// ErrInvalidEmail indica e-mail com formato inválido no login.
var ErrInvalidEmail = errors.New("auth: invalid email format")

// ErrInvalidCredentials indica senha incorreta ou conta inexistente.
// As duas causas retornam o mesmo erro para não revelar quais e-mails
// possuem conta.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// AuthService autentica contas de autor e cria novas contas.
type AuthService interface {
	// Login valida o par de credenciais e retorna a conta autenticada.
	Login(ctx context.Context, email, senha string) (*model.User, error)
	// GetUser retorna a conta da sessão atual.
	GetUser(ctx context.Context, id string) (*model.User, error)
	// CreateUser cria uma conta com a senha já em claro (hash interno).
	// Usado apenas pelo stasisctl; não há cadastro público.
	CreateUser(ctx context.Context, email, name, senha string) (*model.User, error)
}
