package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viralforge/campaign-marketplace/internal/adapters/cache"
	eventadapter "github.com/viralforge/campaign-marketplace/internal/adapters/events"
	grpcadapter "github.com/viralforge/campaign-marketplace/internal/adapters/grpc"
	httpadapter "github.com/viralforge/campaign-marketplace/internal/adapters/http"
	"github.com/viralforge/campaign-marketplace/internal/adapters/metrics"
	"github.com/viralforge/campaign-marketplace/internal/adapters/postgres"
	"github.com/viralforge/campaign-marketplace/internal/adapters/security"
	"github.com/viralforge/campaign-marketplace/internal/application"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
	"google.golang.org/grpc"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	health     *grpcadapter.HealthReporter
	outbox     *eventadapter.OutboxWorker
	consumer   *eventadapter.ConsumerWorker
	expiry     *eventadapter.ExpiryWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		applied, migrateErr := postgres.RunMigrations(ctx, db)
		if migrateErr != nil {
			_ = sqlDB.Close()
			return nil, migrateErr
		}
		logger.InfoContext(ctx, "migrations applied", "operation", "run_migrations", "outcome", "success", "files", applied)
	}

	verifier, err := security.NewJWTVerifier(security.VerifierConfig{
		Secret:       cfg.JWTSecret,
		PublicKeyPEM: cfg.JWTPublicKeyPEM,
		Issuer:       cfg.JWTIssuer,
		Audience:     cfg.JWTAudience,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("configure token verifier: %w", err)
	}

	var closers []io.Closer
	cacheStore := ports.Cache(cache.NoopCache{})
	readiness := []func(context.Context) error{
		func(ctx context.Context) error { return postgres.Ping(ctx, db) },
	}
	if cfg.RedisURL != "" {
		redisClient, redisErr := cache.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			_ = sqlDB.Close()
			return nil, redisErr
		}
		redisCache := cache.NewRedisCache(redisClient, cfg.ServiceID)
		cacheStore = redisCache
		closers = append(closers, redisClient)
		readiness = append(readiness, redisCache.Ping)
	} else {
		logger.WarnContext(ctx, "redis not configured, campaign cache and apply rate limit disabled")
	}

	recorder := metrics.NewRecorder("marketplace")
	repos := postgres.NewRepositories(db)
	service := newService(cfg, repos, verifier, cacheStore, recorder)

	ready := func(ctx context.Context) error {
		for _, check := range readiness {
			if err := check(ctx); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrDependencyUnavailable, err)
			}
		}
		return nil
	}

	handler := httpadapter.NewHandler(service, ready)
	router := httpadapter.NewRouter(handler, recorder)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	health := grpcadapter.NewHealthReporter(logger, grpcadapter.ReadinessCheck(ready), cfg.HealthCheckInterval)
	health.Register(grpcServer)

	publisher := ports.EventPublisher(eventadapter.NewLogPublisher(logger))
	var consumer *eventadapter.ConsumerWorker
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopicMarketplace, map[string]string{
			domain.EventApplicationSubmitted:     cfg.KafkaTopicApplications,
			domain.EventApplicationStatusChanged: cfg.KafkaTopicApplications,
			domain.EventApplicationWithdrawn:     cfg.KafkaTopicApplications,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, relaying events to the log", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}

		kafkaConsumer, conErr := eventadapter.NewKafkaConsumer(
			cfg.KafkaBrokers,
			cfg.KafkaConsumerGroup,
			[]string{cfg.KafkaTopicIdentityUserAdded},
		)
		if conErr != nil {
			logger.WarnContext(ctx, "kafka consumer disabled", "error", conErr)
		} else {
			consumer = eventadapter.NewConsumerWorker(logger, kafkaConsumer, map[string]eventadapter.Handler{
				cfg.KafkaTopicIdentityUserAdded: service.HandleIdentityUserCreated,
			}, cfg.ConsumerPollInterval)
			closers = append(closers, kafkaConsumer)
		}
	}
	outbox := eventadapter.NewOutboxWorker(logger, repos.Outbox, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
	var expiry *eventadapter.ExpiryWorker
	if cfg.ExpirySweepInterval > 0 {
		expiry = eventadapter.NewExpiryWorker(logger, service, cfg.ExpirySweepInterval)
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		health:     health,
		outbox:     outbox,
		consumer:   consumer,
		expiry:     expiry,
		cleanupFn: func(context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
			_ = sqlDB.Close()
		},
	}, nil
}

func Build(ctx context.Context, configPath string) (*Runtime, error) {
	return NewRuntime(ctx, configPath)
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", r.cfg.GRPCPort))
	if err != nil {
		r.cleanupFn(ctx)
		return err
	}
	errCh := make(chan error, 2)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()
	go func() {
		_ = r.health.Run(ctx)
	}()
	r.logger.InfoContext(ctx, "api runtime started", "http_port", r.cfg.HTTPPort, "grpc_port", r.cfg.GRPCPort)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer r.cleanupFn(context.Background())
	errCh := make(chan error, 3)

	go func() {
		if err := r.outbox.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
	if r.consumer != nil {
		go func() {
			if err := r.consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	} else {
		r.logger.InfoContext(ctx, "identity consumer disabled")
	}
	if r.expiry != nil {
		go func() {
			if err := r.expiry.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	} else {
		r.logger.InfoContext(ctx, "campaign expiry sweep disabled")
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func newService(cfg Config, repos postgres.Repositories, verifier ports.IdentityVerifier, cacheStore ports.Cache, recorder ports.Metrics) *application.Service {
	return application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:            cfg.ServiceID,
			CampaignCacheTTL:       cfg.CampaignCacheTTL,
			IdempotencyTTL:         cfg.IdempotencyTTL,
			EventDedupTTL:          cfg.EventDedupTTL,
			MaxApplicationsPerHour: cfg.MaxApplicationsPerHour,
			DefaultPageSize:        cfg.DefaultPageSize,
			MaxPageSize:            cfg.MaxPageSize,
		},
		Users:        repos.Users,
		Brands:       repos.Brands,
		Influencers:  repos.Influencers,
		Campaigns:    repos.Campaigns,
		Applications: repos.Applications,
		Outbox:       repos.Outbox,
		EventDedup:   repos.EventDedup,
		Idempotency:  repos.Idempotency,
		Verifier:     verifier,
		Cache:        cacheStore,
		Metrics:      recorder,
	})
}
