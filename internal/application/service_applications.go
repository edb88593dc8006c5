package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
)

func (s *Service) ApplyToCampaign(ctx context.Context, claims ports.AuthClaims, campaignID uuid.UUID, req ApplyRequest) (ApplicationResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if user.Role != domain.RoleInfluencer {
		return ApplicationResponse{}, fmt.Errorf("%w: only influencers can apply to campaigns", domain.ErrForbidden)
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	now := s.nowFn()
	if campaign.Status == domain.CampaignStatusExpired || (campaign.EndDate != nil && campaign.EndDate.Before(now)) {
		return ApplicationResponse{}, fmt.Errorf("%w: campaign has expired", domain.ErrConflict)
	}
	if err := s.checkApplyRate(ctx, user.UserID); err != nil {
		return ApplicationResponse{}, err
	}

	previous := domain.ApplicationStatus("")
	if existing, lookupErr := s.applications.GetByCampaignAndInfluencer(ctx, campaignID, user.UserID); lookupErr == nil {
		previous = existing.Status
	} else if !errors.Is(lookupErr, domain.ErrNotFound) {
		return ApplicationResponse{}, lookupErr
	}

	app, _, err := s.applications.Apply(ctx, ports.ApplyParams{
		CampaignID:       campaignID,
		InfluencerUserID: user.UserID,
		Pitch:            strings.TrimSpace(req.Pitch),
		Now:              now,
	})
	if err != nil {
		return ApplicationResponse{}, err
	}
	s.metrics.ApplicationTransition(string(previous), string(app.Status))
	s.enqueueApplicationEvent(ctx, domain.EventApplicationSubmitted, app, previous)
	resp := toApplicationResponse(app)
	resp.Campaign = toCampaignSummary(campaign)
	return resp, nil
}

// checkApplyRate enforces a fixed one-hour window per influencer. Cache
// failures never block an application.
func (s *Service) checkApplyRate(ctx context.Context, userID uuid.UUID) error {
	if s.cfg.MaxApplicationsPerHour <= 0 {
		return nil
	}
	n, err := s.cache.IncrWithTTL(ctx, cacheKeyApplyRate(userID), time.Hour)
	if err != nil {
		return nil
	}
	if n > int64(s.cfg.MaxApplicationsPerHour) {
		return fmt.Errorf("%w: too many applications, try again later", domain.ErrRateLimitExceeded)
	}
	return nil
}

// WithdrawApplication tombstones the caller's application. The row is kept
// but no read path returns it afterwards.
func (s *Service) WithdrawApplication(ctx context.Context, claims ports.AuthClaims, campaignID uuid.UUID) (ApplicationResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return ApplicationResponse{}, err
	}
	app, err := s.applications.GetByCampaignAndInfluencer(ctx, campaignID, user.UserID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if err := app.Status.CanWithdraw(); err != nil {
		return ApplicationResponse{}, err
	}
	withdrawn, err := s.applications.UpdateStatus(ctx, ports.UpdateApplicationStatusParams{
		ApplicationID: app.ApplicationID,
		Status:        domain.ApplicationStatusWithdrawn,
		UpdatedAt:     s.nowFn(),
	})
	if err != nil {
		return ApplicationResponse{}, err
	}
	s.metrics.ApplicationTransition(string(app.Status), string(withdrawn.Status))
	s.enqueueApplicationEvent(ctx, domain.EventApplicationWithdrawn, withdrawn, app.Status)
	return toApplicationResponse(withdrawn), nil
}

func (s *Service) UpdateApplicationStatus(ctx context.Context, claims ports.AuthClaims, applicationID uuid.UUID, req UpdateApplicationStatusRequest) (ApplicationResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return ApplicationResponse{}, err
	}
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	campaign, err := s.loadOwnedCampaign(ctx, user, app.CampaignID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	next, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if err := app.Status.CanDecide(next); err != nil {
		return ApplicationResponse{}, err
	}

	updated, err := s.applications.UpdateStatus(ctx, ports.UpdateApplicationStatusParams{
		ApplicationID: applicationID,
		Status:        next,
		Message:       trimmedPtr(req.Message),
		UpdatedAt:     s.nowFn(),
	})
	if err != nil {
		return ApplicationResponse{}, err
	}
	s.metrics.ApplicationTransition(string(app.Status), string(updated.Status))
	s.enqueueApplicationEvent(ctx, domain.EventApplicationStatusChanged, updated, app.Status)
	resp := toApplicationResponse(updated)
	resp.Campaign = toCampaignSummary(campaign)
	return resp, nil
}

// GetApplication is visible to the applicant and to the campaign owner.
func (s *Service) GetApplication(ctx context.Context, claims ports.AuthClaims, applicationID uuid.UUID) (ApplicationResponse, error) {
	user, err := s.currentUser(ctx, claims)
	if err != nil {
		return ApplicationResponse{}, err
	}
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if !app.Status.IsCurrent() {
		return ApplicationResponse{}, domain.ErrNotFound
	}
	campaign, err := s.campaigns.GetByID(ctx, app.CampaignID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if app.InfluencerUserID != user.UserID && !campaign.OwnedBy(user.UserID) {
		return ApplicationResponse{}, fmt.Errorf("%w: application belongs to another account", domain.ErrForbidden)
	}
	resp := toApplicationResponse(app)
	resp.Campaign = toCampaignSummary(campaign)
	return resp, nil
}

func (s *Service) GetMyApplicationForCampaign(ctx context.Context, claims ports.AuthClaims, campaignID uuid.UUID) (ApplicationResponse, error) {
	user, err := s.currentUser(ctx, claims)
	if err != nil {
		return ApplicationResponse{}, err
	}
	app, err := s.applications.GetByCampaignAndInfluencer(ctx, campaignID, user.UserID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if !app.Status.IsCurrent() {
		return ApplicationResponse{}, domain.ErrNotFound
	}
	return toApplicationResponse(app), nil
}

func (s *Service) ListMyApplications(ctx context.Context, claims ports.AuthClaims) ([]ApplicationResponse, error) {
	user, err := s.currentUser(ctx, claims)
	if errors.Is(err, domain.ErrNotFound) {
		return []ApplicationResponse{}, nil
	}
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByInfluencer(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	current := make([]domain.Application, 0, len(apps))
	ids := make([]uuid.UUID, 0, len(apps))
	for _, app := range apps {
		if app.Status.IsCurrent() {
			current = append(current, app)
			ids = append(ids, app.CampaignID)
		}
	}
	campaigns, err := s.campaigns.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Campaign, len(campaigns))
	for _, c := range campaigns {
		byID[c.CampaignID] = c
	}
	out := make([]ApplicationResponse, 0, len(current))
	for _, app := range current {
		resp := toApplicationResponse(app)
		if c, ok := byID[app.CampaignID]; ok {
			resp.Campaign = toCampaignSummary(c)
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *Service) ListCampaignApplications(ctx context.Context, claims ports.AuthClaims, campaignID uuid.UUID) ([]ApplicationResponse, error) {
	user, err := s.currentUser(ctx, claims)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadOwnedCampaign(ctx, user, campaignID); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByCampaignIDs(ctx, []uuid.UUID{campaignID})
	if err != nil {
		return nil, err
	}
	current := make([]domain.Application, 0, len(apps))
	influencerIDs := make([]uuid.UUID, 0, len(apps))
	for _, app := range apps {
		if app.Status.IsCurrent() {
			current = append(current, app)
			influencerIDs = append(influencerIDs, app.InfluencerUserID)
		}
	}
	profiles, err := s.influencers.ListByUserIDs(ctx, influencerIDs)
	if err != nil {
		return nil, err
	}
	byUser := make(map[uuid.UUID]domain.InfluencerProfile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}
	out := make([]ApplicationResponse, 0, len(current))
	for _, app := range current {
		resp := toApplicationResponse(app)
		if p, ok := byUser[app.InfluencerUserID]; ok {
			resp.Influencer = toInfluencerSummary(p)
		}
		out = append(out, resp)
	}
	return out, nil
}
