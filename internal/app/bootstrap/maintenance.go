package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/viralforge/campaign-marketplace/internal/adapters/cache"
	"github.com/viralforge/campaign-marketplace/internal/adapters/metrics"
	"github.com/viralforge/campaign-marketplace/internal/adapters/postgres"
	"github.com/viralforge/campaign-marketplace/internal/application"
	"github.com/viralforge/campaign-marketplace/internal/ports"
	"gorm.io/gorm"
)

// Maintenance is the database-only runtime behind marketctl. It never builds
// a token verifier or kafka clients and never migrates on open. Redis is
// connected when configured so the expiry sweep still invalidates cached
// campaigns.
type Maintenance struct {
	logger  *slog.Logger
	db      *gorm.DB
	service *application.Service
	closers []io.Closer
}

// NewMaintenance loads the store config; a non-empty dbURL overrides it.
func NewMaintenance(ctx context.Context, configPath, dbURL string) (*Maintenance, error) {
	if dbURL != "" {
		if err := os.Setenv("DB_URL", dbURL); err != nil {
			return nil, err
		}
	}
	cfg, err := LoadStoreConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, 2)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	m := &Maintenance{logger: logger, db: db, closers: []io.Closer{sqlDB}}

	cacheStore := ports.Cache(cache.NoopCache{})
	if cfg.RedisURL != "" {
		redisClient, redisErr := cache.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			m.Close()
			return nil, redisErr
		}
		cacheStore = cache.NewRedisCache(redisClient, cfg.ServiceID)
		m.closers = append(m.closers, redisClient)
	}
	m.service = newService(cfg, postgres.NewRepositories(db), nil, cacheStore, metrics.NoopMetrics{})
	return m, nil
}

func (m *Maintenance) Migrate(ctx context.Context) (int, error) {
	return postgres.RunMigrations(ctx, m.db)
}

func (m *Maintenance) ExpireCampaigns(ctx context.Context) (application.ExpireCampaignsResult, error) {
	return m.service.ExpireCampaigns(ctx)
}

// Close releases connections in reverse order of opening.
func (m *Maintenance) Close() {
	for i := len(m.closers) - 1; i >= 0; i-- {
		_ = m.closers[i].Close()
	}
}
