package postgres

import (
	"github.com/viralforge/campaign-marketplace/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Users        ports.UserRepository
	Brands       ports.BrandProfileRepository
	Influencers  ports.InfluencerProfileRepository
	Campaigns    ports.CampaignRepository
	Applications ports.ApplicationRepository
	Outbox       ports.OutboxRepository
	EventDedup   ports.EventDedupRepository
	Idempotency  ports.IdempotencyRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:        &userRepository{db: db},
		Brands:       &brandProfileRepository{db: db},
		Influencers:  &influencerProfileRepository{db: db},
		Campaigns:    &campaignRepository{db: db},
		Applications: &applicationRepository{db: db},
		Outbox:       &outboxRepository{db: db},
		EventDedup:   &eventDedupRepository{db: db},
		Idempotency:  &idempotencyRepository{db: db},
	}
}
