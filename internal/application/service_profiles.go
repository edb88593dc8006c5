package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
)

func (s *Service) UpsertBrandProfile(ctx context.Context, claims ports.AuthClaims, req UpsertBrandProfileRequest) (BrandProfileResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return BrandProfileResponse{}, err
	}
	if !user.Role.CanPublishCampaigns() {
		return BrandProfileResponse{}, fmt.Errorf("%w: brand profiles require a brand or agency account", domain.ErrForbidden)
	}
	if err := validateBrandProfile(req); err != nil {
		return BrandProfileResponse{}, err
	}

	profile, err := s.brands.Upsert(ctx, ports.UpsertBrandProfileParams{
		UserID:           user.UserID,
		CompanyName:      strings.TrimSpace(req.CompanyName),
		Industry:         strings.TrimSpace(req.Industry),
		Website:          strings.TrimSpace(req.Website),
		Description:      strings.TrimSpace(req.Description),
		LogoURL:          strings.TrimSpace(req.LogoURL),
		ContactName:      strings.TrimSpace(req.ContactName),
		ContactEmail:     domain.NormalizeEmail(req.ContactEmail),
		ContactPhone:     strings.TrimSpace(req.ContactPhone),
		PreferredNiches:  domain.NormalizeTags(req.PreferredNiches),
		TypicalBudgetMin: req.TypicalBudgetMin,
		TypicalBudgetMax: req.TypicalBudgetMax,
		TargetAudience:   strings.TrimSpace(req.TargetAudience),
		Now:              s.nowFn(),
	})
	if err != nil {
		return BrandProfileResponse{}, err
	}
	s.enqueueProfileUpdated(ctx, user.UserID, "brand")
	return toBrandProfileResponse(profile), nil
}

func validateBrandProfile(req UpsertBrandProfileRequest) error {
	if err := domain.ValidateRequired("company_name", req.CompanyName); err != nil {
		return err
	}
	if err := domain.ValidateOptionalURL("website", req.Website); err != nil {
		return err
	}
	if err := domain.ValidateOptionalURL("logo_url", req.LogoURL); err != nil {
		return err
	}
	if err := domain.ValidateOptionalEmail("contact_email", req.ContactEmail); err != nil {
		return err
	}
	return domain.ValidateBudgetRange(req.TypicalBudgetMin, req.TypicalBudgetMax)
}

func (s *Service) UpsertInfluencerProfile(ctx context.Context, claims ports.AuthClaims, req UpsertInfluencerProfileRequest) (InfluencerProfileResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return InfluencerProfileResponse{}, err
	}
	if user.Role != domain.RoleInfluencer {
		return InfluencerProfileResponse{}, fmt.Errorf("%w: influencer profiles require an influencer account", domain.ErrForbidden)
	}
	if err := validateInfluencerProfile(req); err != nil {
		return InfluencerProfileResponse{}, err
	}

	accounts := make([]domain.SocialAccount, 0, len(req.SocialAccounts))
	for _, a := range req.SocialAccounts {
		accounts = append(accounts, domain.SocialAccount{
			Platform:  strings.ToLower(strings.TrimSpace(a.Platform)),
			Handle:    strings.TrimSpace(a.Handle),
			URL:       strings.TrimSpace(a.URL),
			Followers: a.Followers,
		})
	}
	portfolio := make([]domain.PortfolioItem, 0, len(req.Portfolio))
	for _, item := range req.Portfolio {
		portfolio = append(portfolio, domain.PortfolioItem{
			Title:       strings.TrimSpace(item.Title),
			URL:         strings.TrimSpace(item.URL),
			Description: strings.TrimSpace(item.Description),
		})
	}

	profile, err := s.influencers.Upsert(ctx, ports.UpsertInfluencerProfileParams{
		UserID:         user.UserID,
		Name:           strings.TrimSpace(req.Name),
		Handle:         strings.TrimSpace(req.Handle),
		Bio:            strings.TrimSpace(req.Bio),
		Niche:          strings.TrimSpace(req.Niche),
		Location:       strings.TrimSpace(req.Location),
		FollowerCount:  req.FollowerCount,
		EngagementRate: req.EngagementRate,
		SocialAccounts: accounts,
		Portfolio:      portfolio,
		Now:            s.nowFn(),
	})
	if err != nil {
		return InfluencerProfileResponse{}, err
	}
	s.enqueueProfileUpdated(ctx, user.UserID, "influencer")
	return toInfluencerProfileResponse(profile), nil
}

func validateInfluencerProfile(req UpsertInfluencerProfileRequest) error {
	if err := domain.ValidateRequired("name", req.Name); err != nil {
		return err
	}
	if err := domain.ValidateAudienceMetrics(req.FollowerCount, req.EngagementRate); err != nil {
		return err
	}
	for i, a := range req.SocialAccounts {
		if err := domain.ValidateRequired(fmt.Sprintf("social_accounts[%d].platform", i), a.Platform); err != nil {
			return err
		}
		if err := domain.ValidateOptionalURL(fmt.Sprintf("social_accounts[%d].url", i), a.URL); err != nil {
			return err
		}
		if a.Followers < 0 {
			return fmt.Errorf("%w: social_accounts[%d].followers must be >= 0", domain.ErrInvalidInput, i)
		}
	}
	for i, item := range req.Portfolio {
		if err := domain.ValidateRequired(fmt.Sprintf("portfolio[%d].url", i), item.URL); err != nil {
			return err
		}
		if err := domain.ValidateOptionalURL(fmt.Sprintf("portfolio[%d].url", i), item.URL); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) GetMyBrandProfile(ctx context.Context, claims ports.AuthClaims) (BrandProfileResponse, error) {
	user, err := s.currentUser(ctx, claims)
	if err != nil {
		return BrandProfileResponse{}, err
	}
	return s.GetBrandProfile(ctx, user.UserID)
}

func (s *Service) GetMyInfluencerProfile(ctx context.Context, claims ports.AuthClaims) (InfluencerProfileResponse, error) {
	user, err := s.currentUser(ctx, claims)
	if err != nil {
		return InfluencerProfileResponse{}, err
	}
	return s.GetInfluencerProfile(ctx, user.UserID)
}

func (s *Service) GetBrandProfile(ctx context.Context, userID uuid.UUID) (BrandProfileResponse, error) {
	profile, err := s.brands.GetByUserID(ctx, userID)
	if err != nil {
		return BrandProfileResponse{}, err
	}
	return toBrandProfileResponse(profile), nil
}

func (s *Service) GetInfluencerProfile(ctx context.Context, userID uuid.UUID) (InfluencerProfileResponse, error) {
	profile, err := s.influencers.GetByUserID(ctx, userID)
	if err != nil {
		return InfluencerProfileResponse{}, err
	}
	return toInfluencerProfileResponse(profile), nil
}
