package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/luis-octavius/stasis-ufrrj/internal/service"
	"github.com/luis-octavius/stasis-ufrrj/pkg/auth"
)

// Mensagens de erro localizadas exibidas no formulário de login.
const (
	msgEmailInvalido        = "Formato de e-mail inválido."
	msgCredenciaisInvalidas = "Credenciais inválidas. Verifique e-mail e senha."
	msgErroInterno          = "Erro ao entrar. Por favor, tente novamente."
)

// AuthHandler trata login, logout e consulta de sessão.
type AuthHandler struct {
	authService   service.AuthService
	sessionSecret []byte
	secureCookies bool
}

// NewAuthHandler cria um AuthHandler.
func NewAuthHandler(authService service.AuthService, sessionSecret []byte, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionSecret: sessionSecret,
		secureCookies: secureCookies,
	}
}

// Login trata POST /api/auth/login. Na falha o cliente reexibe o formulário
// com a mensagem; não há retentativa automática.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Senha)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_invalido", "message": msgEmailInvalido})
		case errors.Is(err, service.ErrInvalidCredentials):
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "credenciais_invalidas", "message": msgCredenciaisInvalidas})
		default:
			slog.Error("login failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error", "message": msgErroInterno})
		}
		return
	}

	token, err := auth.CreateSessionToken(user.ID, h.sessionSecret)
	if err != nil {
		slog.Error("session token creation failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error", "message": msgErroInterno})
		return
	}

	http.SetCookie(w, auth.NewSessionCookie(token, h.secureCookies))
	_ = json.NewEncoder(w).Encode(user)
}

// Logout trata POST /api/auth/logout e limpa a sessão.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredSessionCookie(h.secureCookies))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// Session trata GET /api/auth/session (autenticado). É o análogo da
// assinatura de mudança de sessão do cliente: a página consulta uma vez ao
// montar em vez de manter um listener.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		// Sessão assinada para uma conta que não existe mais.
		http.SetCookie(w, auth.ExpiredSessionCookie(h.secureCookies))
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_session"})
		return
	}

	_ = json.NewEncoder(w).Encode(user)
}
