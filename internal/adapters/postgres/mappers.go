package postgres

import (
	"strings"

	"github.com/viralforge/campaign-marketplace/internal/domain"
)

func toDomainUser(m userModel) domain.User {
	return domain.User{
		UserID: m.UserID, TokenIdentifier: derefString(m.TokenIdentifier), Email: derefString(m.Email),
		Role: domain.Role(m.Role), CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainBrandProfile(m brandProfileModel) domain.BrandProfile {
	return domain.BrandProfile{
		BrandID: m.BrandID, UserID: m.UserID, CompanyName: m.CompanyName, Industry: m.Industry,
		Website: m.Website, Description: m.Description, LogoURL: m.LogoURL, ContactName: m.ContactName,
		ContactEmail: m.ContactEmail, ContactPhone: m.ContactPhone, PreferredNiches: nonNilStrings(m.PreferredNiches),
		TypicalBudgetMin: m.TypicalBudgetMin, TypicalBudgetMax: m.TypicalBudgetMax, TargetAudience: m.TargetAudience,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainInfluencerProfile(m influencerProfileModel) domain.InfluencerProfile {
	out := domain.InfluencerProfile{
		ProfileID: m.ProfileID, UserID: m.UserID, Name: m.Name, Handle: m.Handle, Bio: m.Bio,
		Niche: m.Niche, Location: m.Location, FollowerCount: m.FollowerCount, EngagementRate: m.EngagementRate,
		SocialAccounts: m.SocialAccounts, Portfolio: m.Portfolio, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
	if out.SocialAccounts == nil {
		out.SocialAccounts = []domain.SocialAccount{}
	}
	if out.Portfolio == nil {
		out.Portfolio = []domain.PortfolioItem{}
	}
	return out
}

func toDomainCampaign(m campaignModel) domain.Campaign {
	return domain.Campaign{
		CampaignID: m.CampaignID, CreatorUserID: m.CreatorUserID, Title: m.Title, Description: m.Description,
		Budget: m.Budget, Status: domain.CampaignStatus(m.Status), Niche: m.Niche, TargetAudience: m.TargetAudience,
		ContentTypes: nonNilStrings(m.ContentTypes), Requirements: m.Requirements, StartDate: m.StartDate,
		EndDate: m.EndDate, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainApplication(m applicationModel) domain.Application {
	return domain.Application{
		ApplicationID: m.ApplicationID, CampaignID: m.CampaignID, InfluencerUserID: m.InfluencerUserID,
		Status: domain.ApplicationStatus(m.Status), Pitch: m.Pitch, Message: m.Message,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
