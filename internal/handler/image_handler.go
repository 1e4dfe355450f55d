package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/luis-octavius/stasis-ufrrj/internal/repository"
	"github.com/luis-octavius/stasis-ufrrj/internal/service"
	"github.com/luis-octavius/stasis-ufrrj/internal/storage"
	"github.com/luis-octavius/stasis-ufrrj/pkg/auth"
)

const maxImageSize = 4 << 20 // 4 MB

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// PostImageRepo grava a image_url de uma postagem.
type PostImageRepo interface {
	UpdateImageURL(ctx context.Context, id, imageURL string) error
}

// MemberImageRepo grava a image_url de um integrante (nil limpa a coluna).
type MemberImageRepo interface {
	UpdateImageURL(ctx context.Context, id string, imageURL *string) error
}

// ImageHandler trata upload e remoção de imagens de capa (postagens) e de
// retrato (integrantes). O objeto é gravado no storage antes de qualquer
// escrita no banco: nunca fica um registro apontando para um asset
// inexistente ou parcial. A remoção do asset antigo é best-effort: falha é
// registrada em log e a atualização do registro prossegue (podem sobrar
// objetos órfãos no storage).
type ImageHandler struct {
	storage       storage.Storage
	postService   service.PostService
	memberService service.MemberService
	postRepo      PostImageRepo
	memberRepo    MemberImageRepo
}

// NewImageHandler cria um ImageHandler.
func NewImageHandler(store storage.Storage, ps service.PostService, ms service.MemberService, pr PostImageRepo, mr MemberImageRepo) *ImageHandler {
	return &ImageHandler{storage: store, postService: ps, memberService: ms, postRepo: pr, memberRepo: mr}
}

// readImageUpload valida o multipart e retorna o arquivo enviado.
func readImageUpload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, string, bool) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "file_too_large"})
		return nil, "", "", false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "image_required"})
		return nil, "", "", false
	}

	if header.Size > maxImageSize {
		file.Close()
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "file_too_large"})
		return nil, "", "", false
	}

	ct := header.Header.Get("Content-Type")
	if !allowedContentTypes[ct] {
		file.Close()
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_content_type"})
		return nil, "", "", false
	}

	return file, header.Filename, ct, true
}

// deleteOldAsset remove o asset anterior do storage, best-effort.
func (h *ImageHandler) deleteOldAsset(ctx context.Context, oldURL string) {
	if oldURL == "" {
		return
	}
	key := h.storage.KeyFromURL(oldURL)
	if key == "" {
		// URL externa informada manualmente; não há objeto nosso a remover.
		return
	}
	if err := h.storage.Delete(ctx, key); err != nil {
		slog.Warn("could not delete old image", "error", err, "key", key)
	}
}

// UploadPostImage trata POST /api/postagens/{slug}/imagem (autenticado,
// somente o autor).
func (h *ImageHandler) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	post, err := h.postService.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		return
	}
	if post.AuthorID != userID {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
		return
	}

	file, filename, ct, ok := readImageUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	// Chave nova por upload: uuid + nome original, como no site.
	key := path.Join("post-images", uuid.New().String()+"-"+filename)
	imageURL, err := h.storage.Save(r.Context(), key, file, ct)
	if err != nil {
		slog.Error("image upload failed", "error", err, "post_id", post.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "upload_failed"})
		return
	}

	h.deleteOldAsset(r.Context(), post.ImageURL)

	if err := h.postRepo.UpdateImageURL(r.Context(), post.ID, imageURL); err != nil {
		slog.Error("image url update failed", "error", err, "post_id", post.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"imageUrl": imageURL})
}

// DeletePostImage trata DELETE /api/postagens/{slug}/imagem (autenticado,
// somente o autor). Limpa a image_url mesmo que a remoção do asset falhe.
func (h *ImageHandler) DeletePostImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	post, err := h.postService.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		return
	}
	if post.AuthorID != userID {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
		return
	}

	h.deleteOldAsset(r.Context(), post.ImageURL)

	if err := h.postRepo.UpdateImageURL(r.Context(), post.ID, ""); err != nil {
		slog.Error("image url clear failed", "error", err, "post_id", post.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// UploadMemberImage trata POST /api/integrantes/{id}/imagem (autenticado).
func (h *ImageHandler) UploadMemberImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	member, err := h.memberService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	file, filename, ct, ok := readImageUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	key := path.Join("member-images", uuid.New().String()+"-"+filename)
	imageURL, err := h.storage.Save(r.Context(), key, file, ct)
	if err != nil {
		slog.Error("image upload failed", "error", err, "member_id", member.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "upload_failed"})
		return
	}

	if member.ImageURL != nil {
		h.deleteOldAsset(r.Context(), *member.ImageURL)
	}

	if err := h.memberRepo.UpdateImageURL(r.Context(), member.ID, &imageURL); err != nil {
		slog.Error("image url update failed", "error", err, "member_id", member.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"imageUrl": imageURL})
}

// DeleteMemberImage trata DELETE /api/integrantes/{id}/imagem (autenticado).
func (h *ImageHandler) DeleteMemberImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	member, err := h.memberService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	if member.ImageURL != nil {
		h.deleteOldAsset(r.Context(), *member.ImageURL)
	}

	if err := h.memberRepo.UpdateImageURL(r.Context(), member.ID, nil); err != nil {
		slog.Error("image url clear failed", "error", err, "member_id", member.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
