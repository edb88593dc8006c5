package application

import (
	"time"

	"github.com/viralforge/campaign-marketplace/internal/ports"
)

type Service struct {
	cfg          Config
	users        ports.UserRepository
	brands       ports.BrandProfileRepository
	influencers  ports.InfluencerProfileRepository
	campaigns    ports.CampaignRepository
	applications ports.ApplicationRepository
	outbox       ports.OutboxRepository
	eventDedup   ports.EventDedupRepository
	idempotency  ports.IdempotencyRepository
	verifier     ports.IdentityVerifier
	cache        ports.Cache
	metrics      ports.Metrics
	nowFn        func() time.Time
}

type Dependencies struct {
	Config       Config
	Users        ports.UserRepository
	Brands       ports.BrandProfileRepository
	Influencers  ports.InfluencerProfileRepository
	Campaigns    ports.CampaignRepository
	Applications ports.ApplicationRepository
	Outbox       ports.OutboxRepository
	EventDedup   ports.EventDedupRepository
	Idempotency  ports.IdempotencyRepository
	Verifier     ports.IdentityVerifier
	Cache        ports.Cache
	Metrics      ports.Metrics
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "campaign-marketplace"
	}
	if cfg.CampaignCacheTTL <= 0 {
		cfg.CampaignCacheTTL = 5 * time.Minute
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.EventDedupTTL <= 0 {
		cfg.EventDedupTTL = 7 * 24 * time.Hour
	}
	if cfg.MaxApplicationsPerHour < 0 {
		cfg.MaxApplicationsPerHour = 0
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}

	return &Service{
		cfg:          cfg,
		users:        deps.Users,
		brands:       deps.Brands,
		influencers:  deps.Influencers,
		campaigns:    deps.Campaigns,
		applications: deps.Applications,
		outbox:       deps.Outbox,
		eventDedup:   deps.EventDedup,
		idempotency:  deps.Idempotency,
		verifier:     deps.Verifier,
		cache:        deps.Cache,
		metrics:      deps.Metrics,
		nowFn:        func() time.Time { return time.Now().UTC() },
	}
}
