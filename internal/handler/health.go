package handler

import (
	"encoding/json"
	"net/http"
)

// Health responde GET /api/health com o estado da conexão com o banco.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.db.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "degraded", "error": "db_unreachable"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
