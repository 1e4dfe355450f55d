package handler

import (
	"context"
	"net/http"
)

// DB é o contrato mínimo de verificação de conectividade usado pelo health check.
type DB interface {
	Ping(ctx context.Context) error
}

// Handler agrupa os middlewares transversais do servidor.
type Handler struct {
	db          DB
	frontendURL string
}

// New cria o Handler base.
func New(db DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

// CORS libera o frontend configurado, com credenciais (cookie de sessão).
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
