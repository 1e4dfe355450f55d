package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/luis-octavius/stasis-ufrrj/internal/model"
	"github.com/luis-octavius/stasis-ufrrj/internal/repository"
	"github.com/luis-octavius/stasis-ufrrj/internal/service"
)

// MemberHandler trata o CRUD de integrantes. A listagem é pública; as
// mutações exigem sessão. Qualquer sessão ativa é tratada como
// administrativa; não há papel separado.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler cria um MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List trata GET /api/integrantes.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.List(r.Context())
	if err != nil {
		slog.Error("member list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}
	if members == nil {
		members = []*model.Member{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(members)
}

// Create trata POST /api/integrantes (autenticado).
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var member model.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	member.ID = ""

	if err := h.memberService.Create(r.Context(), &member); err != nil {
		if errors.Is(err, service.ErrMemberInvalid) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "nome_e_instituicao_obrigatorios"})
			return
		}
		slog.Error("member create failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "create_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(&member)
}

// Update trata PUT /api/integrantes/{id} (autenticado).
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := r.PathValue("id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "id_required"})
		return
	}

	var member model.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	member.ID = id

	if err := h.memberService.Update(r.Context(), &member); err != nil {
		switch {
		case errors.Is(err, service.ErrMemberInvalid):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "nome_e_instituicao_obrigatorios"})
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		default:
			slog.Error("member update failed", "error", err, "member_id", id)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		}
		return
	}

	_ = json.NewEncoder(w).Encode(&member)
}

// Delete trata DELETE /api/integrantes/{id} (autenticado).
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := r.PathValue("id")
	if err := h.memberService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("member delete failed", "error", err, "member_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "delete_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
