package http

import (
	"net/http"

	"github.com/viralforge/campaign-marketplace/internal/application"
)

func (h *Handler) applyToCampaign(w http.ResponseWriter, r *http.Request) {
	const op = "apply_to_campaign"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	campaignID, err := uuidParam(r, "campaign_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	var req application.ApplyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.ApplyToCampaign(r.Context(), claims, campaignID, req)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) withdrawApplication(w http.ResponseWriter, r *http.Request) {
	const op = "withdraw_application"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	campaignID, err := uuidParam(r, "campaign_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	if _, err := h.service.WithdrawApplication(r.Context(), claims, campaignID); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeMessage(w, http.StatusOK, "application withdrawn")
}

func (h *Handler) getMyApplicationForCampaign(w http.ResponseWriter, r *http.Request) {
	const op = "get_my_application_for_campaign"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	campaignID, err := uuidParam(r, "campaign_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.GetMyApplicationForCampaign(r.Context(), claims, campaignID)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) listCampaignApplications(w http.ResponseWriter, r *http.Request) {
	const op = "list_campaign_applications"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	campaignID, err := uuidParam(r, "campaign_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.ListCampaignApplications(r.Context(), claims, campaignID)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) listMyApplications(w http.ResponseWriter, r *http.Request) {
	const op = "list_my_applications"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	resp, err := h.service.ListMyApplications(r.Context(), claims)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	const op = "get_application"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	applicationID, err := uuidParam(r, "application_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.GetApplication(r.Context(), claims, applicationID)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) updateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	const op = "update_application_status"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	applicationID, err := uuidParam(r, "application_id")
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	var req application.UpdateApplicationStatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	resp, err := h.service.UpdateApplicationStatus(r.Context(), claims, applicationID, req)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
