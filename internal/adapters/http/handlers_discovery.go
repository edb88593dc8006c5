package http

import (
	"net/http"

	"github.com/viralforge/campaign-marketplace/internal/domain"
)

func (h *Handler) discoverInfluencers(w http.ResponseWriter, r *http.Request) {
	const op = "discover_influencers"
	q := r.URL.Query()
	filter := domain.InfluencerFilter{
		Niche:     q.Get("niche"),
		Location:  q.Get("location"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: domain.ParseSortOrder(q.Get("sort_order")),
		Limit:     parseIntDefault(q.Get("limit"), 0),
		Offset:    parseIntDefault(q.Get("offset"), 0),
	}
	var err error
	if filter.MinFollowers, err = optionalInt64(q, "min_followers"); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	if filter.MaxFollowers, err = optionalInt64(q, "max_followers"); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	if filter.MinEngagement, err = optionalFloat(q, "min_engagement"); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	if filter.MaxEngagement, err = optionalFloat(q, "max_engagement"); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}

	resp, err := h.service.DiscoverInfluencers(r.Context(), filter)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) discoverCampaigns(w http.ResponseWriter, r *http.Request) {
	const op = "discover_campaigns"
	q := r.URL.Query()
	filter := domain.CampaignFilter{
		Niche:        q.Get("niche"),
		Search:       q.Get("search"),
		ContentTypes: listParam(q, "content_type"),
		Sort:         q.Get("sort"),
		Limit:        parseIntDefault(q.Get("limit"), 0),
		Offset:       parseIntDefault(q.Get("offset"), 0),
	}
	if raw := q.Get("status"); raw != "" {
		status, err := domain.ParseCampaignStatus(raw)
		if err != nil {
			writeMappedError(r.Context(), w, op, err)
			return
		}
		filter.Status = status
	}
	var err error
	if filter.MinBudget, err = optionalFloat(q, "min_budget"); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	if filter.MaxBudget, err = optionalFloat(q, "max_budget"); err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}

	resp, err := h.service.DiscoverCampaigns(r.Context(), filter)
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) recommendedCampaigns(w http.ResponseWriter, r *http.Request) {
	const op = "recommended_campaigns"
	claims, ok := requireClaims(w, r, op)
	if !ok {
		return
	}
	q := r.URL.Query()
	resp, err := h.service.RecommendedCampaigns(r.Context(), claims, parseIntDefault(q.Get("limit"), 0), parseIntDefault(q.Get("offset"), 0))
	if err != nil {
		writeMappedError(r.Context(), w, op, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}
