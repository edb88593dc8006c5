package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
service:
  id: marketplace-test
  http_port: 8181
dependencies:
  postgres_url: postgres://file
  kafka_brokers: [" kafka-1:9092 ", ""]
auth:
  issuer: https://idp.example
marketplace:
  expiry_sweep_seconds: 0
  max_applications_per_hour: 5
`)
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("DB_URL", "postgres://env")
	t.Setenv("CAMPAIGN_CACHE_SECONDS", "30")
	t.Setenv("RUN_MIGRATIONS", "no")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "marketplace-test", cfg.ServiceID)
	assert.Equal(t, 8181, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, []string{"kafka-1:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "https://idp.example", cfg.JWTIssuer)
	assert.Equal(t, time.Duration(0), cfg.ExpirySweepInterval)
	assert.Equal(t, 5, cfg.MaxApplicationsPerHour)
	assert.Equal(t, 30*time.Second, cfg.CampaignCacheTTL)
	assert.False(t, cfg.RunMigrations)
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("POSTGRES_URL", "postgres://fallback")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "campaign-marketplace", cfg.ServiceID)
	assert.Equal(t, "postgres://fallback", cfg.DatabaseURL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Minute, cfg.ExpirySweepInterval)
	assert.Equal(t, 20, cfg.MaxApplicationsPerHour)
	assert.True(t, cfg.RunMigrations)
}

func TestLoadConfigRequiresDatabaseAndVerifier(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	t.Setenv("DB_URL", "")
	t.Setenv("POSTGRES_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	_, err := LoadConfig(missing)
	assert.ErrorContains(t, err, "DB_URL")

	t.Setenv("DB_URL", "postgres://env")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_JWT_PUBLIC_KEY_PEM", "")
	_, err = LoadConfig(missing)
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "service: [unterminated"))
	assert.ErrorContains(t, err, "parse config file")
}

func TestLoadStoreConfigSkipsVerifierSettings(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	t.Setenv("DB_URL", "postgres://env")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_JWT_PUBLIC_KEY_PEM", "")

	cfg, err := LoadStoreConfig(missing)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)

	_, err = LoadConfig(missing)
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")

	t.Setenv("DB_URL", "")
	t.Setenv("POSTGRES_URL", "")
	_, err = LoadStoreConfig(missing)
	assert.ErrorContains(t, err, "DB_URL")
}
