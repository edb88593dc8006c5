package http

import (
	"net/http"
)

func (h *Handler) ensureUser(w http.ResponseWriter, r *http.Request) {
	const op = "ensure_user"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	resp, err := h.service.EnsureUser(r.Context(), claims)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	const op = "get_current_user"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	resp, err := h.service.CurrentUser(r.Context(), claims)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
