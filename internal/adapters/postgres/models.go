package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
)

type userModel struct {
	UserID          uuid.UUID `gorm:"column:user_id;primaryKey"`
	TokenIdentifier *string   `gorm:"column:token_identifier;uniqueIndex"`
	Email           *string   `gorm:"column:email;uniqueIndex"`
	Role            string    `gorm:"column:role"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type brandProfileModel struct {
	BrandID          uuid.UUID `gorm:"column:brand_id;primaryKey"`
	UserID           uuid.UUID `gorm:"column:user_id;uniqueIndex"`
	CompanyName      string    `gorm:"column:company_name"`
	Industry         string    `gorm:"column:industry"`
	Website          string    `gorm:"column:website"`
	Description      string    `gorm:"column:description"`
	LogoURL          string    `gorm:"column:logo_url"`
	ContactName      string    `gorm:"column:contact_name"`
	ContactEmail     string    `gorm:"column:contact_email"`
	ContactPhone     string    `gorm:"column:contact_phone"`
	PreferredNiches  []string  `gorm:"column:preferred_niches;serializer:json"`
	TypicalBudgetMin float64   `gorm:"column:typical_budget_min"`
	TypicalBudgetMax float64   `gorm:"column:typical_budget_max"`
	TargetAudience   string    `gorm:"column:target_audience"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (brandProfileModel) TableName() string { return "brand_profiles" }

type influencerProfileModel struct {
	ProfileID      uuid.UUID              `gorm:"column:profile_id;primaryKey"`
	UserID         uuid.UUID              `gorm:"column:user_id;uniqueIndex"`
	Name           string                 `gorm:"column:name"`
	Handle         string                 `gorm:"column:handle"`
	Bio            string                 `gorm:"column:bio"`
	Niche          string                 `gorm:"column:niche;index"`
	Location       string                 `gorm:"column:location;index"`
	FollowerCount  int64                  `gorm:"column:follower_count"`
	EngagementRate float64                `gorm:"column:engagement_rate"`
	SocialAccounts []domain.SocialAccount `gorm:"column:social_accounts;serializer:json"`
	Portfolio      []domain.PortfolioItem `gorm:"column:portfolio;serializer:json"`
	CreatedAt      time.Time              `gorm:"column:created_at"`
	UpdatedAt      time.Time              `gorm:"column:updated_at"`
}

func (influencerProfileModel) TableName() string { return "influencer_profiles" }

type campaignModel struct {
	CampaignID     uuid.UUID  `gorm:"column:campaign_id;primaryKey"`
	CreatorUserID  uuid.UUID  `gorm:"column:creator_user_id;index"`
	Title          string     `gorm:"column:title"`
	Description    string     `gorm:"column:description"`
	Budget         float64    `gorm:"column:budget"`
	Status         string     `gorm:"column:status;index:idx_campaigns_status_end_date,priority:1"`
	Niche          string     `gorm:"column:niche"`
	TargetAudience string     `gorm:"column:target_audience"`
	ContentTypes   []string   `gorm:"column:content_types;serializer:json"`
	Requirements   string     `gorm:"column:requirements"`
	StartDate      *time.Time `gorm:"column:start_date"`
	EndDate        *time.Time `gorm:"column:end_date;index:idx_campaigns_status_end_date,priority:2"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string { return "campaigns" }

type applicationModel struct {
	ApplicationID    uuid.UUID `gorm:"column:application_id;primaryKey"`
	CampaignID       uuid.UUID `gorm:"column:campaign_id;uniqueIndex:uq_applications_campaign_influencer,priority:1"`
	InfluencerUserID uuid.UUID `gorm:"column:influencer_user_id;uniqueIndex:uq_applications_campaign_influencer,priority:2;index"`
	Status           string    `gorm:"column:status"`
	Pitch            string    `gorm:"column:pitch"`
	Message          string    `gorm:"column:message"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (applicationModel) TableName() string { return "campaign_applications" }

type outboxModel struct {
	OutboxID         uuid.UUID  `gorm:"column:outbox_id;primaryKey"`
	EventType        string     `gorm:"column:event_type"`
	PartitionKey     string     `gorm:"column:partition_key"`
	PartitionKeyPath string     `gorm:"column:partition_key_path"`
	Payload          string     `gorm:"column:payload"`
	SchemaVersion    string     `gorm:"column:schema_version"`
	RetryCount       int        `gorm:"column:retry_count"`
	PublishedAt      *time.Time `gorm:"column:published_at"`
	LastError        *string    `gorm:"column:last_error"`
	LastErrorAt      *time.Time `gorm:"column:last_error_at"`
	FirstSeenAt      time.Time  `gorm:"column:first_seen_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
}

func (outboxModel) TableName() string { return "marketplace_outbox" }

type idempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	Status         string    `gorm:"column:status"`
	ResponseCode   int       `gorm:"column:response_code"`
	ResponseBody   *string   `gorm:"column:response_body"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (idempotencyModel) TableName() string { return "marketplace_idempotency" }

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	EventType   string    `gorm:"column:event_type"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
}

func (eventDedupModel) TableName() string { return "marketplace_event_dedup" }

// Models lists every table model, for schema creation on non-postgres dialects.
func Models() []any {
	return []any{
		&userModel{},
		&brandProfileModel{},
		&influencerProfileModel{},
		&campaignModel{},
		&applicationModel{},
		&outboxModel{},
		&idempotencyModel{},
		&eventDedupModel{},
	}
}
