package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
)

// DiscoverInfluencers pushes the equality and follower bounds down to the
// store, then filters, sorts and paginates the remainder in memory.
func (s *Service) DiscoverInfluencers(ctx context.Context, filter domain.InfluencerFilter) (InfluencerPage, error) {
	if err := validateRange("followers", filter.MinFollowers, filter.MaxFollowers); err != nil {
		return InfluencerPage{}, err
	}
	if err := validateRange("engagement", filter.MinEngagement, filter.MaxEngagement); err != nil {
		return InfluencerPage{}, err
	}
	limit, offset := s.pageBounds(filter.Limit, filter.Offset)

	rows, err := s.influencers.Search(ctx, filter)
	if err != nil {
		return InfluencerPage{}, err
	}
	rows = domain.FilterInfluencers(rows, filter)
	domain.SortInfluencers(rows, filter.SortBy, filter.SortOrder)

	page := domain.Paginate(rows, limit, offset)
	items := make([]InfluencerProfileResponse, 0, len(page))
	for _, p := range page {
		items = append(items, toInfluencerProfileResponse(p))
	}
	return InfluencerPage{Items: items, Total: len(rows), Limit: limit, Offset: offset}, nil
}

// DiscoverCampaigns lists active campaigns unless another status is asked for.
func (s *Service) DiscoverCampaigns(ctx context.Context, filter domain.CampaignFilter) (CampaignPage, error) {
	if filter.Status == "" {
		filter.Status = domain.CampaignStatusActive
	}
	if err := validateRange("budget", filter.MinBudget, filter.MaxBudget); err != nil {
		return CampaignPage{}, err
	}
	limit, offset := s.pageBounds(filter.Limit, filter.Offset)

	rows, err := s.campaigns.Search(ctx, filter)
	if err != nil {
		return CampaignPage{}, err
	}
	rows = domain.FilterCampaigns(rows, filter)
	domain.SortCampaigns(rows, filter.Sort)
	return s.campaignPage(rows, limit, offset), nil
}

// RecommendedCampaigns returns active campaigns in the caller's niche, newest
// first. Callers without an influencer profile or niche get nothing.
func (s *Service) RecommendedCampaigns(ctx context.Context, claims ports.AuthClaims, limit, offset int) (CampaignPage, error) {
	limit, offset = s.pageBounds(limit, offset)
	empty := CampaignPage{Items: []CampaignResponse{}, Limit: limit, Offset: offset}

	user, err := s.currentUser(ctx, claims)
	if errors.Is(err, domain.ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return CampaignPage{}, err
	}
	profile, err := s.influencers.GetByUserID(ctx, user.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return CampaignPage{}, err
	}
	if profile.Niche == "" {
		return empty, nil
	}

	filter := domain.CampaignFilter{Status: domain.CampaignStatusActive, Niche: profile.Niche}
	rows, err := s.campaigns.Search(ctx, filter)
	if err != nil {
		return CampaignPage{}, err
	}
	rows = domain.FilterCampaigns(rows, filter)
	domain.SortCampaigns(rows, domain.CampaignSortNewest)
	return s.campaignPage(rows, limit, offset), nil
}

func (s *Service) campaignPage(rows []domain.Campaign, limit, offset int) CampaignPage {
	page := domain.Paginate(rows, limit, offset)
	items := make([]CampaignResponse, 0, len(page))
	for _, c := range page {
		items = append(items, toCampaignResponse(c))
	}
	return CampaignPage{Items: items, Total: len(rows), Limit: limit, Offset: offset}
}

type number interface {
	~int64 | ~float64
}

func validateRange[T number](field string, lo, hi *T) error {
	if lo != nil && *lo < 0 {
		return fmt.Errorf("%w: min_%s must be >= 0", domain.ErrInvalidInput, field)
	}
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: min_%s exceeds max_%s", domain.ErrInvalidInput, field, field)
	}
	return nil
}
