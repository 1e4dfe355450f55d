package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
	"github.com/luis-octavius/stasis-ufrrj/internal/repository"
	"github.com/luis-octavius/stasis-ufrrj/internal/service"
	"github.com/luis-octavius/stasis-ufrrj/pkg/auth"
)

// PostHandler trata o CRUD de postagens.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler cria um PostHandler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List trata GET /api/postagens com paginação por cursor ("carregar mais").
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit := service.DefaultPageSize
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= service.MaxPageSize {
			limit = n
		}
	}

	page, err := h.postService.ListPage(r.Context(), cursor, limit)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_cursor"})
			return
		}
		slog.Error("post list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

// Recent trata GET /api/postagens/recentes (carrossel da home).
func (h *PostHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= service.MaxPageSize {
			limit = n
		}
	}

	posts, err := h.postService.ListRecent(r.Context(), limit)
	if err != nil {
		slog.Error("recent posts failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(posts)
}

// Slugs trata GET /api/postagens/slugs (enumeração para export estático).
func (h *PostHandler) Slugs(w http.ResponseWriter, r *http.Request) {
	slugs, err := h.postService.ListSlugs(r.Context())
	if err != nil {
		slog.Error("slug list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}
	if slugs == nil {
		slugs = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(slugs)
}

// Get trata GET /api/postagens/{slug}. Slug desconhecido responde 404 e o
// cliente redireciona para a página de não encontrado; repetir a consulta
// para um slug inexistente sempre produz o mesmo 404.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	slug := r.PathValue("slug")
	if slug == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "slug_required"})
		return
	}

	post, err := h.postService.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("post get failed", "error", err, "slug", slug)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	_ = json.NewEncoder(w).Encode(post)
}

// Create trata POST /api/postagens (autenticado).
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req struct {
		Title    string `json:"title"`
		Slug     string `json:"slug"`
		Content  string `json:"content"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if req.Title == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "titulo_obrigatorio"})
		return
	}
	if req.Content == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "conteudo_obrigatorio"})
		return
	}

	post := &model.Post{
		Title:    req.Title,
		Slug:     req.Slug,
		AuthorID: userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := h.postService.Create(r.Context(), post); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "slug_duplicado"})
			return
		}
		slog.Error("post create failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "create_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(post)
}

// Update trata PUT /api/postagens/{slug} (autenticado, somente o autor).
// Campos ausentes do corpo mantêm o valor atual; authorId e createdAt nunca
// mudam na edição.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	slug := r.PathValue("slug")
	existing, err := h.postService.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("post lookup failed", "error", err, "slug", slug)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}
	if existing.AuthorID != userID {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if b, ok := raw["title"]; ok {
		var v string
		_ = json.Unmarshal(b, &v)
		if v != "" {
			existing.Title = v
		}
	}
	if b, ok := raw["slug"]; ok {
		var v string
		_ = json.Unmarshal(b, &v)
		if v != "" {
			existing.Slug = v
		}
	}
	if b, ok := raw["content"]; ok {
		var v string
		_ = json.Unmarshal(b, &v)
		existing.Content = v
	}
	if b, ok := raw["imageUrl"]; ok {
		var v string
		_ = json.Unmarshal(b, &v)
		existing.ImageURL = v
	}

	if err := h.postService.Update(r.Context(), existing); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "slug_duplicado"})
			return
		}
		slog.Error("post update failed", "error", err, "post_id", existing.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(existing)
}

// Delete trata DELETE /api/postagens/{slug} (autenticado, somente o autor).
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	slug := r.PathValue("slug")
	existing, err := h.postService.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("post lookup failed", "error", err, "slug", slug)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}
	if existing.AuthorID != userID {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
		return
	}

	if err := h.postService.Delete(r.Context(), existing.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("post delete failed", "error", err, "post_id", existing.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "delete_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
