package http

import (
	"net/http"

	"github.com/viralforge/campaign-marketplace/internal/application"
)

func (h *Handler) createCampaign(w http.ResponseWriter, r *http.Request) {
	const op = "create_campaign"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	var req application.CreateCampaignRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.CreateCampaign(r.Context(), claims, req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	const op = "get_campaign"
	campaignID, err := uuidParam(r, "campaign_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.GetCampaign(r.Context(), campaignID)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) updateCampaign(w http.ResponseWriter, r *http.Request) {
	const op = "update_campaign"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	campaignID, err := uuidParam(r, "campaign_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	var req application.UpdateCampaignRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.UpdateCampaign(r.Context(), claims, campaignID, req)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	const op = "delete_campaign"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	campaignID, err := uuidParam(r, "campaign_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.DeleteCampaign(r.Context(), claims, campaignID)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) extendCampaign(w http.ResponseWriter, r *http.Request) {
	const op = "extend_campaign"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	campaignID, err := uuidParam(r, "campaign_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	var req application.ExtendCampaignRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.ExtendCampaign(r.Context(), claims, campaignID, req)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) listMyCampaigns(w http.ResponseWriter, r *http.Request) {
	const op = "list_my_campaigns"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	resp, err := h.service.ListMyCampaigns(r.Context(), claims)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
