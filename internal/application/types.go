package application

import (
	"time"

	"github.com/viralforge/campaign-marketplace/internal/domain"
)

type Config struct {
	ServiceName            string
	CampaignCacheTTL       time.Duration
	IdempotencyTTL         time.Duration
	EventDedupTTL          time.Duration
	MaxApplicationsPerHour int
	DefaultPageSize        int
	MaxPageSize            int
}

type UserResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UpsertBrandProfileRequest struct {
	CompanyName      string   `json:"company_name"`
	Industry         string   `json:"industry,omitempty"`
	Website          string   `json:"website,omitempty"`
	Description      string   `json:"description,omitempty"`
	LogoURL          string   `json:"logo_url,omitempty"`
	ContactName      string   `json:"contact_name,omitempty"`
	ContactEmail     string   `json:"contact_email,omitempty"`
	ContactPhone     string   `json:"contact_phone,omitempty"`
	PreferredNiches  []string `json:"preferred_niches,omitempty"`
	TypicalBudgetMin float64  `json:"typical_budget_min,omitempty"`
	TypicalBudgetMax float64  `json:"typical_budget_max,omitempty"`
	TargetAudience   string   `json:"target_audience,omitempty"`
}

type BrandProfileResponse struct {
	BrandID          string    `json:"brand_id"`
	UserID           string    `json:"user_id"`
	CompanyName      string    `json:"company_name"`
	Industry         string    `json:"industry,omitempty"`
	Website          string    `json:"website,omitempty"`
	Description      string    `json:"description,omitempty"`
	LogoURL          string    `json:"logo_url,omitempty"`
	ContactName      string    `json:"contact_name,omitempty"`
	ContactEmail     string    `json:"contact_email,omitempty"`
	ContactPhone     string    `json:"contact_phone,omitempty"`
	PreferredNiches  []string  `json:"preferred_niches"`
	TypicalBudgetMin float64   `json:"typical_budget_min"`
	TypicalBudgetMax float64   `json:"typical_budget_max"`
	TargetAudience   string    `json:"target_audience,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpsertInfluencerProfileRequest struct {
	Name           string                 `json:"name"`
	Handle         string                 `json:"handle,omitempty"`
	Bio            string                 `json:"bio,omitempty"`
	Niche          string                 `json:"niche,omitempty"`
	Location       string                 `json:"location,omitempty"`
	FollowerCount  int64                  `json:"follower_count"`
	EngagementRate float64                `json:"engagement_rate"`
	SocialAccounts []domain.SocialAccount `json:"social_accounts,omitempty"`
	Portfolio      []domain.PortfolioItem `json:"portfolio,omitempty"`
}

type InfluencerProfileResponse struct {
	ProfileID      string                 `json:"profile_id"`
	UserID         string                 `json:"user_id"`
	Name           string                 `json:"name"`
	Handle         string                 `json:"handle,omitempty"`
	Bio            string                 `json:"bio,omitempty"`
	Niche          string                 `json:"niche,omitempty"`
	Location       string                 `json:"location,omitempty"`
	FollowerCount  int64                  `json:"follower_count"`
	EngagementRate float64                `json:"engagement_rate"`
	SocialAccounts []domain.SocialAccount `json:"social_accounts"`
	Portfolio      []domain.PortfolioItem `json:"portfolio"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Budget         float64    `json:"budget"`
	Status         string     `json:"status,omitempty"`
	Niche          string     `json:"niche,omitempty"`
	TargetAudience string     `json:"target_audience,omitempty"`
	ContentTypes   []string   `json:"content_types,omitempty"`
	Requirements   string     `json:"requirements,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

type UpdateCampaignRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Budget         *float64   `json:"budget,omitempty"`
	Status         *string    `json:"status,omitempty"`
	Niche          *string    `json:"niche,omitempty"`
	TargetAudience *string    `json:"target_audience,omitempty"`
	ContentTypes   *[]string  `json:"content_types,omitempty"`
	Requirements   *string    `json:"requirements,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

type ExtendCampaignRequest struct {
	EndDate time.Time `json:"end_date"`
}

type CampaignResponse struct {
	CampaignID     string     `json:"campaign_id"`
	CreatorUserID  string     `json:"creator_user_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Budget         float64    `json:"budget"`
	Status         string     `json:"status"`
	Niche          string     `json:"niche,omitempty"`
	TargetAudience string     `json:"target_audience,omitempty"`
	ContentTypes   []string   `json:"content_types"`
	Requirements   string     `json:"requirements,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type CampaignWithApplications struct {
	CampaignResponse
	Applications []ApplicationResponse `json:"applications"`
}

type DeleteCampaignResponse struct {
	CampaignID          string `json:"campaign_id"`
	DeletedApplications int64  `json:"deleted_applications"`
}

type ExpireCampaignsResult struct {
	ExpiredCampaignIDs []string  `json:"expired_campaign_ids"`
	Count              int       `json:"count"`
	SweptAt            time.Time `json:"swept_at"`
}

type ApplyRequest struct {
	Pitch string `json:"pitch"`
}

type UpdateApplicationStatusRequest struct {
	Status  string  `json:"status"`
	Message *string `json:"message,omitempty"`
}

type CampaignSummary struct {
	CampaignID string     `json:"campaign_id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Budget     float64    `json:"budget"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

type InfluencerSummary struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	Handle         string  `json:"handle,omitempty"`
	Niche          string  `json:"niche,omitempty"`
	FollowerCount  int64   `json:"follower_count"`
	EngagementRate float64 `json:"engagement_rate"`
}

type ApplicationResponse struct {
	ApplicationID    string             `json:"application_id"`
	CampaignID       string             `json:"campaign_id"`
	InfluencerUserID string             `json:"influencer_user_id"`
	Status           string             `json:"status"`
	Pitch            string             `json:"pitch,omitempty"`
	Message          string             `json:"message,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	Campaign         *CampaignSummary   `json:"campaign,omitempty"`
	Influencer       *InfluencerSummary `json:"influencer,omitempty"`
}

type InfluencerPage struct {
	Items  []InfluencerProfileResponse `json:"items"`
	Total  int                         `json:"total"`
	Limit  int                         `json:"limit"`
	Offset int                         `json:"offset"`
}

type CampaignPage struct {
	Items  []CampaignResponse `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
