package http

import (
	"net/http"

	"github.com/viralforge/campaign-marketplace/internal/application"
)

func (h *Handler) upsertBrandProfile(w http.ResponseWriter, r *http.Request) {
	const op = "upsert_brand_profile"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	var req application.UpsertBrandProfileRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.UpsertBrandProfile(r.Context(), claims, req)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) getMyBrandProfile(w http.ResponseWriter, r *http.Request) {
	const op = "get_my_brand_profile"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	resp, err := h.service.GetMyBrandProfile(r.Context(), claims)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) getBrandProfile(w http.ResponseWriter, r *http.Request) {
	const op = "get_brand_profile"
	userID, err := uuidParam(r, "user_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.GetBrandProfile(r.Context(), userID)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) upsertInfluencerProfile(w http.ResponseWriter, r *http.Request) {
	const op = "upsert_influencer_profile"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	var req application.UpsertInfluencerProfileRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.UpsertInfluencerProfile(r.Context(), claims, req)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) getMyInfluencerProfile(w http.ResponseWriter, r *http.Request) {
	const op = "get_my_influencer_profile"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	resp, err := h.service.GetMyInfluencerProfile(r.Context(), claims)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) getInfluencerProfile(w http.ResponseWriter, r *http.Request) {
	const op = "get_influencer_profile"
	userID, err := uuidParam(r, "user_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.GetInfluencerProfile(r.Context(), userID)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
