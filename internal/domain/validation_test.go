package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateOptionalURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateOptionalURL("website", ""))
	assert.NoError(t, ValidateOptionalURL("website", "https://acme.example/about"))
	assert.ErrorIs(t, ValidateOptionalURL("website", "acme.example"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateOptionalURL("website", "javascript:alert(1)"), ErrInvalidInput)
}

func TestValidateAudienceMetrics(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateAudienceMetrics(0, 0))
	assert.NoError(t, ValidateAudienceMetrics(10, 100))
	assert.ErrorIs(t, ValidateAudienceMetrics(-1, 5), ErrInvalidInput)
	assert.ErrorIs(t, ValidateAudienceMetrics(10, 100.5), ErrInvalidInput)
}

func TestValidateBudgetRange(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateBudgetRange(100, 0))
	assert.NoError(t, ValidateBudgetRange(100, 500))
	assert.ErrorIs(t, ValidateBudgetRange(500, 100), ErrInvalidInput)
	assert.ErrorIs(t, ValidateBudgetRange(-1, 100), ErrInvalidInput)
}

func TestValidateCampaignWindow(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	assert.NoError(t, ValidateCampaignWindow(nil, nil))
	assert.NoError(t, ValidateCampaignWindow(&start, nil))
	assert.NoError(t, ValidateCampaignWindow(&start, &start))
	assert.NoError(t, ValidateCampaignWindow(&start, &end))
	assert.ErrorIs(t, ValidateCampaignWindow(&end, &start), ErrInvalidInput)
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"reel", "story"}, NormalizeTags([]string{" Reel", "", "story", "REEL"}))
	assert.Empty(t, NormalizeTags(nil))
}

func TestValidateOptionalEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateOptionalEmail("contact_email", ""))
	assert.NoError(t, ValidateOptionalEmail("contact_email", "ops@acme.example"))
	assert.ErrorIs(t, ValidateOptionalEmail("contact_email", "not an email"), ErrInvalidInput)
}
