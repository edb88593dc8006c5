package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
)

func (s *Service) CreateCampaign(ctx context.Context, claims ports.AuthClaims, req CreateCampaignRequest, idempotencyKey string) (CampaignResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return CampaignResponse{}, err
	}
	if !user.Role.CanPublishCampaigns() {
		return CampaignResponse{}, fmt.Errorf("%w: only brands and agencies can create campaigns", domain.ErrForbidden)
	}
	if err := domain.ValidateRequired("title", req.Title); err != nil {
		return CampaignResponse{}, err
	}
	if err := domain.ValidateBudget(req.Budget); err != nil {
		return CampaignResponse{}, err
	}
	status := domain.CampaignStatusDraft
	if strings.TrimSpace(req.Status) != "" {
		if status, err = domain.ParseCampaignStatus(req.Status); err != nil {
			return CampaignResponse{}, err
		}
	}
	if err := domain.ValidateCampaignWindow(req.StartDate, req.EndDate); err != nil {
		return CampaignResponse{}, err
	}

	key := scopedIdempotencyKey(user.UserID, idempotencyKey)
	var replayed CampaignResponse
	if ok, err := s.replayIdempotent(ctx, key, req, &replayed); err != nil || ok {
		return replayed, err
	}
	if err := s.reserveIdempotency(ctx, key, req); err != nil {
		return CampaignResponse{}, err
	}

	campaign, err := s.campaigns.Create(ctx, ports.CreateCampaignParams{
		CreatorUserID:  user.UserID,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Budget:         req.Budget,
		Status:         status,
		Niche:          strings.TrimSpace(req.Niche),
		TargetAudience: strings.TrimSpace(req.TargetAudience),
		ContentTypes:   domain.NormalizeTags(req.ContentTypes),
		Requirements:   strings.TrimSpace(req.Requirements),
		StartDate:      utcPtr(req.StartDate),
		EndDate:        utcPtr(req.EndDate),
		CreatedAt:      s.nowFn(),
	})
	if err != nil {
		s.releaseIdempotency(ctx, key)
		return CampaignResponse{}, err
	}
	s.enqueueCampaignEvent(ctx, domain.EventCampaignCreated, campaign, nil)
	resp := toCampaignResponse(campaign)
	s.completeIdempotency(ctx, key, http.StatusCreated, resp)
	return resp, nil
}

// GetCampaign reads through the campaign cache.
func (s *Service) GetCampaign(ctx context.Context, campaignID uuid.UUID) (CampaignResponse, error) {
	if raw, err := s.cache.Get(ctx, cacheKeyCampaign(campaignID)); err == nil && raw != "" {
		var cached CampaignResponse
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return cached, nil
		}
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return CampaignResponse{}, err
	}
	resp := toCampaignResponse(campaign)
	if raw, err := json.Marshal(resp); err == nil {
		_ = s.cache.Set(ctx, cacheKeyCampaign(campaignID), string(raw), s.cfg.CampaignCacheTTL)
	}
	return resp, nil
}

// loadOwnedCampaign is the ownership guard shared by every campaign mutation.
func (s *Service) loadOwnedCampaign(ctx context.Context, user domain.User, campaignID uuid.UUID) (domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	if !campaign.OwnedBy(user.UserID) {
		return domain.Campaign{}, fmt.Errorf("%w: campaign belongs to another account", domain.ErrForbidden)
	}
	return campaign, nil
}

func (s *Service) UpdateCampaign(ctx context.Context, claims ports.AuthClaims, campaignID uuid.UUID, req UpdateCampaignRequest) (CampaignResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return CampaignResponse{}, err
	}
	current, err := s.loadOwnedCampaign(ctx, user, campaignID)
	if err != nil {
		return CampaignResponse{}, err
	}

	params := ports.UpdateCampaignParams{
		CampaignID: campaignID,
		StartDate:  utcPtr(req.StartDate),
		EndDate:    utcPtr(req.EndDate),
		UpdatedAt:  s.nowFn(),
	}
	if req.Title != nil {
		if err := domain.ValidateRequired("title", *req.Title); err != nil {
			return CampaignResponse{}, err
		}
		params.Title = trimmedPtr(req.Title)
	}
	if req.Budget != nil {
		if err := domain.ValidateBudget(*req.Budget); err != nil {
			return CampaignResponse{}, err
		}
		params.Budget = req.Budget
	}
	if req.Status != nil {
		status, err := domain.ParseCampaignStatus(*req.Status)
		if err != nil {
			return CampaignResponse{}, err
		}
		params.Status = &status
	}
	if req.ContentTypes != nil {
		tags := domain.NormalizeTags(*req.ContentTypes)
		params.ContentTypes = &tags
	}
	params.Description = trimmedPtr(req.Description)
	params.Niche = trimmedPtr(req.Niche)
	params.TargetAudience = trimmedPtr(req.TargetAudience)
	params.Requirements = trimmedPtr(req.Requirements)

	start, end := current.StartDate, current.EndDate
	if params.StartDate != nil {
		start = params.StartDate
	}
	if params.EndDate != nil {
		end = params.EndDate
	}
	if err := domain.ValidateCampaignWindow(start, end); err != nil {
		return CampaignResponse{}, err
	}

	updated, err := s.campaigns.Update(ctx, params)
	if err != nil {
		return CampaignResponse{}, err
	}
	_ = s.cache.Delete(ctx, cacheKeyCampaign(campaignID))
	s.enqueueCampaignEvent(ctx, domain.EventCampaignUpdated, updated, nil)
	return toCampaignResponse(updated), nil
}

func (s *Service) DeleteCampaign(ctx context.Context, claims ports.AuthClaims, campaignID uuid.UUID) (DeleteCampaignResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return DeleteCampaignResponse{}, err
	}
	campaign, err := s.loadOwnedCampaign(ctx, user, campaignID)
	if err != nil {
		return DeleteCampaignResponse{}, err
	}
	deleted, err := s.campaigns.DeleteCascade(ctx, campaignID)
	if err != nil {
		return DeleteCampaignResponse{}, err
	}
	_ = s.cache.Delete(ctx, cacheKeyCampaign(campaignID))
	s.enqueueCampaignEvent(ctx, domain.EventCampaignDeleted, campaign, &deleted)
	return DeleteCampaignResponse{CampaignID: campaignID.String(), DeletedApplications: deleted}, nil
}

// ExtendCampaign pushes the end date out. An expired campaign is reopened.
func (s *Service) ExtendCampaign(ctx context.Context, claims ports.AuthClaims, campaignID uuid.UUID, req ExtendCampaignRequest) (CampaignResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return CampaignResponse{}, err
	}
	campaign, err := s.loadOwnedCampaign(ctx, user, campaignID)
	if err != nil {
		return CampaignResponse{}, err
	}
	now := s.nowFn()
	newEnd := req.EndDate.UTC()
	if req.EndDate.IsZero() || !newEnd.After(now) {
		return CampaignResponse{}, fmt.Errorf("%w: end_date must be in the future", domain.ErrInvalidInput)
	}
	if campaign.EndDate != nil && !newEnd.After(*campaign.EndDate) {
		return CampaignResponse{}, fmt.Errorf("%w: end_date must be after the current end date", domain.ErrInvalidInput)
	}
	if err := domain.ValidateCampaignWindow(campaign.StartDate, &newEnd); err != nil {
		return CampaignResponse{}, err
	}

	params := ports.UpdateCampaignParams{CampaignID: campaignID, EndDate: &newEnd, UpdatedAt: now}
	if campaign.Status == domain.CampaignStatusExpired {
		active := domain.CampaignStatusActive
		params.Status = &active
	}
	updated, err := s.campaigns.Update(ctx, params)
	if err != nil {
		return CampaignResponse{}, err
	}
	_ = s.cache.Delete(ctx, cacheKeyCampaign(campaignID))
	s.enqueueCampaignEvent(ctx, domain.EventCampaignUpdated, updated, nil)
	return toCampaignResponse(updated), nil
}

// ListMyCampaigns loads the caller's campaigns and all of their current
// applications with one batched query.
func (s *Service) ListMyCampaigns(ctx context.Context, claims ports.AuthClaims) ([]CampaignWithApplications, error) {
	user, err := s.currentUser(ctx, claims)
	if errors.Is(err, domain.ErrNotFound) {
		return []CampaignWithApplications{}, nil
	}
	if err != nil {
		return nil, err
	}
	campaigns, err := s.campaigns.ListByCreator(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.CampaignID)
	}
	apps, err := s.applications.ListByCampaignIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byCampaign := make(map[uuid.UUID][]ApplicationResponse, len(campaigns))
	for _, app := range apps {
		if !app.Status.IsCurrent() {
			continue
		}
		byCampaign[app.CampaignID] = append(byCampaign[app.CampaignID], toApplicationResponse(app))
	}
	out := make([]CampaignWithApplications, 0, len(campaigns))
	for _, c := range campaigns {
		list := byCampaign[c.CampaignID]
		if list == nil {
			list = []ApplicationResponse{}
		}
		out = append(out, CampaignWithApplications{CampaignResponse: toCampaignResponse(c), Applications: list})
	}
	return out, nil
}

// ExpireCampaigns is the expiry sweep. It is safe to run repeatedly.
func (s *Service) ExpireCampaigns(ctx context.Context) (ExpireCampaignsResult, error) {
	now := s.nowFn()
	ids, err := s.campaigns.ExpireActiveBefore(ctx, now)
	if err != nil {
		return ExpireCampaignsResult{}, err
	}
	s.metrics.CampaignsExpired(len(ids))
	out := ExpireCampaignsResult{ExpiredCampaignIDs: make([]string, 0, len(ids)), Count: len(ids), SweptAt: now}
	for _, id := range ids {
		out.ExpiredCampaignIDs = append(out.ExpiredCampaignIDs, id.String())
		_ = s.cache.Delete(ctx, cacheKeyCampaign(id))
		if campaign, getErr := s.campaigns.GetByID(ctx, id); getErr == nil {
			s.enqueueCampaignEvent(ctx, domain.EventCampaignExpired, campaign, nil)
		}
	}
	return out, nil
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
