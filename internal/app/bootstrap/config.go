package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string

	JWTSecret       string
	JWTPublicKeyPEM string
	JWTIssuer       string
	JWTAudience     string

	MaxDBConns                  int32
	RunMigrations               bool
	KafkaConsumerGroup          string
	KafkaTopicMarketplace       string
	KafkaTopicApplications      string
	KafkaTopicIdentityUserAdded string

	OutboxPollInterval   time.Duration
	OutboxBatchSize      int
	ConsumerPollInterval time.Duration
	ExpirySweepInterval  time.Duration
	HealthCheckInterval  time.Duration

	CampaignCacheTTL       time.Duration
	IdempotencyTTL         time.Duration
	EventDedupTTL          time.Duration
	MaxApplicationsPerHour int
	DefaultPageSize        int
	MaxPageSize            int
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL                 string   `yaml:"postgres_url"`
		RedisURL                    string   `yaml:"redis_url"`
		KafkaBrokers                []string `yaml:"kafka_brokers"`
		KafkaConsumerGroup          string   `yaml:"kafka_consumer_group"`
		KafkaTopicMarketplace       string   `yaml:"kafka_topic_marketplace"`
		KafkaTopicApplications      string   `yaml:"kafka_topic_applications"`
		KafkaTopicIdentityUserAdded string   `yaml:"kafka_topic_identity_user_created"`
	} `yaml:"dependencies"`
	Auth struct {
		Issuer   string `yaml:"issuer"`
		Audience string `yaml:"audience"`
	} `yaml:"auth"`
	Marketplace struct {
		ExpirySweepSeconds     *int `yaml:"expiry_sweep_seconds"`
		CampaignCacheSeconds   int  `yaml:"campaign_cache_seconds"`
		MaxApplicationsPerHour *int `yaml:"max_applications_per_hour"`
		DefaultPageSize        int  `yaml:"default_page_size"`
		MaxPageSize            int  `yaml:"max_page_size"`
	} `yaml:"marketplace"`
}

// LoadConfig loads the full service configuration used by the api and worker
// runtimes.
func LoadConfig(path string) (Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.JWTSecret == "" && cfg.JWTPublicKeyPEM == "" {
		return Config{}, fmt.Errorf("missing AUTH_JWT_SECRET/AUTH_JWT_PUBLIC_KEY_PEM")
	}
	return cfg, nil
}

// LoadStoreConfig only requires the database; it serves the operator CLI.
func LoadStoreConfig(path string) (Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	return cfg, nil
}

func loadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                   "campaign-marketplace",
		HTTPPort:                    8080,
		GRPCPort:                    9090,
		MaxDBConns:                  20,
		RunMigrations:               true,
		KafkaConsumerGroup:          "campaign-marketplace",
		KafkaTopicMarketplace:       "marketplace.campaigns",
		KafkaTopicApplications:      "marketplace.applications",
		KafkaTopicIdentityUserAdded: "identity.user_created",
		OutboxPollInterval:          2 * time.Second,
		OutboxBatchSize:             100,
		ConsumerPollInterval:        2 * time.Second,
		ExpirySweepInterval:         time.Minute,
		HealthCheckInterval:         10 * time.Second,
		CampaignCacheTTL:            5 * time.Minute,
		IdempotencyTTL:              24 * time.Hour,
		EventDedupTTL:               7 * 24 * time.Hour,
		MaxApplicationsPerHour:      20,
		DefaultPageSize:             20,
		MaxPageSize:                 100,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaConsumerGroup != "" {
			cfg.KafkaConsumerGroup = f.Dependencies.KafkaConsumerGroup
		}
		if f.Dependencies.KafkaTopicMarketplace != "" {
			cfg.KafkaTopicMarketplace = f.Dependencies.KafkaTopicMarketplace
		}
		if f.Dependencies.KafkaTopicApplications != "" {
			cfg.KafkaTopicApplications = f.Dependencies.KafkaTopicApplications
		}
		if f.Dependencies.KafkaTopicIdentityUserAdded != "" {
			cfg.KafkaTopicIdentityUserAdded = f.Dependencies.KafkaTopicIdentityUserAdded
		}
		cfg.JWTIssuer = f.Auth.Issuer
		cfg.JWTAudience = f.Auth.Audience
		if f.Marketplace.ExpirySweepSeconds != nil {
			cfg.ExpirySweepInterval = time.Duration(*f.Marketplace.ExpirySweepSeconds) * time.Second
		}
		if f.Marketplace.CampaignCacheSeconds > 0 {
			cfg.CampaignCacheTTL = time.Duration(f.Marketplace.CampaignCacheSeconds) * time.Second
		}
		if f.Marketplace.MaxApplicationsPerHour != nil {
			cfg.MaxApplicationsPerHour = *f.Marketplace.MaxApplicationsPerHour
		}
		if f.Marketplace.DefaultPageSize > 0 {
			cfg.DefaultPageSize = f.Marketplace.DefaultPageSize
		}
		if f.Marketplace.MaxPageSize > 0 {
			cfg.MaxPageSize = f.Marketplace.MaxPageSize
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaConsumerGroup = envOrDefault("KAFKA_CONSUMER_GROUP", cfg.KafkaConsumerGroup)
	cfg.KafkaTopicMarketplace = envOrDefault("KAFKA_TOPIC_MARKETPLACE", cfg.KafkaTopicMarketplace)
	cfg.KafkaTopicApplications = envOrDefault("KAFKA_TOPIC_APPLICATIONS", cfg.KafkaTopicApplications)
	cfg.KafkaTopicIdentityUserAdded = envOrDefault("KAFKA_TOPIC_IDENTITY_USER_CREATED", cfg.KafkaTopicIdentityUserAdded)
	cfg.JWTSecret = envOrDefault("AUTH_JWT_SECRET", cfg.JWTSecret)
	cfg.JWTPublicKeyPEM = envOrDefault("AUTH_JWT_PUBLIC_KEY_PEM", cfg.JWTPublicKeyPEM)
	cfg.JWTIssuer = envOrDefault("AUTH_JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTAudience = envOrDefault("AUTH_JWT_AUDIENCE", cfg.JWTAudience)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.RunMigrations = envBool("RUN_MIGRATIONS", cfg.RunMigrations)
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.ConsumerPollInterval = time.Duration(envInt("CONSUMER_POLL_SECONDS", int(cfg.ConsumerPollInterval.Seconds()))) * time.Second
	cfg.ExpirySweepInterval = time.Duration(envInt("EXPIRY_SWEEP_INTERVAL_SECONDS", int(cfg.ExpirySweepInterval.Seconds()))) * time.Second
	cfg.HealthCheckInterval = time.Duration(envInt("HEALTH_CHECK_SECONDS", int(cfg.HealthCheckInterval.Seconds()))) * time.Second
	cfg.CampaignCacheTTL = time.Duration(envInt("CAMPAIGN_CACHE_SECONDS", int(cfg.CampaignCacheTTL.Seconds()))) * time.Second
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.EventDedupTTL = time.Duration(envInt("EVENT_DEDUP_TTL_HOURS", int(cfg.EventDedupTTL.Hours()))) * time.Hour
	cfg.MaxApplicationsPerHour = envInt("MAX_APPLICATIONS_PER_HOUR", cfg.MaxApplicationsPerHour)
	cfg.DefaultPageSize = envInt("DEFAULT_PAGE_SIZE", cfg.DefaultPageSize)
	cfg.MaxPageSize = envInt("MAX_PAGE_SIZE", cfg.MaxPageSize)
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	items := strings.Split(raw, ",")
	return trimNonEmpty(items)
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
