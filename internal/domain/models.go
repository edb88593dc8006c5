package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleInfluencer Role = "influencer"
	RoleBrand      Role = "brand"
	RoleAgency     Role = "agency"
)

// CanPublishCampaigns reports whether the role acts on the brand side.
func (r Role) CanPublishCampaigns() bool {
	return r == RoleBrand || r == RoleAgency
}

type User struct {
	UserID          uuid.UUID
	TokenIdentifier string
	Email           string
	Role            Role
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type BrandProfile struct {
	BrandID          uuid.UUID
	UserID           uuid.UUID
	CompanyName      string
	Industry         string
	Website          string
	Description      string
	LogoURL          string
	ContactName      string
	ContactEmail     string
	ContactPhone     string
	PreferredNiches  []string
	TypicalBudgetMin float64
	TypicalBudgetMax float64
	TargetAudience   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type SocialAccount struct {
	Platform  string `json:"platform"`
	Handle    string `json:"handle"`
	URL       string `json:"url,omitempty"`
	Followers int64  `json:"followers,omitempty"`
}

type PortfolioItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type InfluencerProfile struct {
	ProfileID      uuid.UUID
	UserID         uuid.UUID
	Name           string
	Handle         string
	Bio            string
	Niche          string
	Location       string
	FollowerCount  int64
	EngagementRate float64
	SocialAccounts []SocialAccount
	Portfolio      []PortfolioItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Campaign struct {
	CampaignID     uuid.UUID
	CreatorUserID  uuid.UUID
	Title          string
	Description    string
	Budget         float64
	Status         CampaignStatus
	Niche          string
	TargetAudience string
	ContentTypes   []string
	Requirements   string
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OwnedBy is the ownership guard shared by every mutating campaign operation.
func (c Campaign) OwnedBy(userID uuid.UUID) bool {
	return c.CreatorUserID == userID
}

type Application struct {
	ApplicationID    uuid.UUID
	CampaignID       uuid.UUID
	InfluencerUserID uuid.UUID
	Status           ApplicationStatus
	Pitch            string
	Message          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
