package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
	"github.com/luis-octavius/stasis-ufrrj/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceImpl é a implementação de AuthService.
type AuthServiceImpl struct {
	userRepo repository.UserRepository
}

// NewAuthService cria um AuthServiceImpl (DI: UserRepository injetado).
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &AuthServiceImpl{userRepo: userRepo}
}

// Login valida formato do e-mail, busca a conta e compara a senha com bcrypt.
func (s *AuthServiceImpl) Login(ctx context.Context, email, senha string) (*model.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Debug("login for unknown account", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(senha)); err != nil {
		return nil, ErrInvalidCredentials
	}

	slog.Info("login", "user_id", u.ID)
	return u, nil
}

// GetUser retorna a conta pelo id da sessão.
func (s *AuthServiceImpl) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// CreateUser valida o e-mail, gera o hash bcrypt e insere a conta.
func (s *AuthServiceImpl) CreateUser(ctx context.Context, email, name, senha string) (*model.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{Email: email, Name: name, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	slog.Info("new author account", "user_id", u.ID)
	return u, nil
}
