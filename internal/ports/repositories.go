package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
)

type CreateUserParams struct {
	TokenIdentifier string
	Email           string
	Role            domain.Role
	CreatedAt       time.Time
}

type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
	GetByTokenIdentifier(ctx context.Context, tokenIdentifier string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, params CreateUserParams) (domain.User, error)
	// BindTokenIdentifier attaches a token to a legacy row that has none.
	BindTokenIdentifier(ctx context.Context, userID uuid.UUID, tokenIdentifier string, now time.Time) (domain.User, error)
}

type UpsertBrandProfileParams struct {
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
	Now              time.Time
}

type BrandProfileRepository interface {
	Upsert(ctx context.Context, params UpsertBrandProfileParams) (domain.BrandProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.BrandProfile, error)
}

type UpsertInfluencerProfileParams struct {
	UserID         uuid.UUID
	Name           string
	Handle         string
	Bio            string
	Niche          string
	Location       string
	FollowerCount  int64
	EngagementRate float64
	SocialAccounts []domain.SocialAccount
	Portfolio      []domain.PortfolioItem
	Now            time.Time
}

type InfluencerProfileRepository interface {
	Upsert(ctx context.Context, params UpsertInfluencerProfileParams) (domain.InfluencerProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.InfluencerProfile, error)
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.InfluencerProfile, error)
	// Search applies niche, location and follower bounds in the store and
	// returns rows in creation order. Other filter fields are ignored.
	Search(ctx context.Context, filter domain.InfluencerFilter) ([]domain.InfluencerProfile, error)
}

type CreateCampaignParams struct {
	CreatorUserID  uuid.UUID
	Title          string
	Description    string
	Budget         float64
	Status         domain.CampaignStatus
	Niche          string
	TargetAudience string
	ContentTypes   []string
	Requirements   string
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
}

type UpdateCampaignParams struct {
	CampaignID     uuid.UUID
	Title          *string
	Description    *string
	Budget         *float64
	Status         *domain.CampaignStatus
	Niche          *string
	TargetAudience *string
	ContentTypes   *[]string
	Requirements   *string
	StartDate      *time.Time
	EndDate        *time.Time
	UpdatedAt      time.Time
}

type CampaignRepository interface {
	Create(ctx context.Context, params CreateCampaignParams) (domain.Campaign, error)
	GetByID(ctx context.Context, campaignID uuid.UUID) (domain.Campaign, error)
	ListByIDs(ctx context.Context, campaignIDs []uuid.UUID) ([]domain.Campaign, error)
	Update(ctx context.Context, params UpdateCampaignParams) (domain.Campaign, error)
	// DeleteCascade removes the campaign and its applications in one transaction.
	DeleteCascade(ctx context.Context, campaignID uuid.UUID) (deletedApplications int64, err error)
	ListByCreator(ctx context.Context, creatorUserID uuid.UUID) ([]domain.Campaign, error)
	// Search applies status, niche and budget bounds in the store and returns
	// rows in creation order.
	Search(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error)
	// ExpireActiveBefore moves active campaigns whose end date has passed to
	// expired and returns their ids.
	ExpireActiveBefore(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type ApplyParams struct {
	CampaignID       uuid.UUID
	InfluencerUserID uuid.UUID
	Pitch            string
	Now              time.Time
}

type UpdateApplicationStatusParams struct {
	ApplicationID uuid.UUID
	Status        domain.ApplicationStatus
	Message       *string
	UpdatedAt     time.Time
}

type ApplicationRepository interface {
	// Apply inserts a pending application or revives the existing row for the
	// same campaign and influencer. created reports whether a row was inserted.
	Apply(ctx context.Context, params ApplyParams) (app domain.Application, created bool, err error)
	GetByID(ctx context.Context, applicationID uuid.UUID) (domain.Application, error)
	GetByCampaignAndInfluencer(ctx context.Context, campaignID, influencerUserID uuid.UUID) (domain.Application, error)
	UpdateStatus(ctx context.Context, params UpdateApplicationStatusParams) (domain.Application, error)
	ListByCampaignIDs(ctx context.Context, campaignIDs []uuid.UUID) ([]domain.Application, error)
	ListByInfluencer(ctx context.Context, influencerUserID uuid.UUID) ([]domain.Application, error)
}

type OutboxEvent struct {
	EventID          uuid.UUID
	EventType        string
	PartitionKey     string
	PartitionKeyPath string
	Payload          []byte
	OccurredAt       time.Time
	SchemaVersion    string
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	LastErrorAt  *time.Time
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}

type EventDedupRepository interface {
	IsDuplicate(ctx context.Context, eventID string, now time.Time) (bool, error)
	MarkProcessed(ctx context.Context, eventID, eventType string, expiresAt time.Time) error
}

type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	Status       string
	ResponseCode int
	ResponseBody []byte
	ExpiresAt    time.Time
}

type IdempotencyRepository interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
	Complete(ctx context.Context, key string, responseCode int, responseBody []byte, at time.Time) error
	// Release drops a reservation that never completed so the key can be retried.
	Release(ctx context.Context, key string) error
}
