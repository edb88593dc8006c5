package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
)

func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleInfluencer:
		return RoleInfluencer, nil
	case RoleBrand:
		return RoleBrand, nil
	case RoleAgency:
		return RoleAgency, nil
	default:
		return "", fmt.Errorf("%w: unsupported role %q", ErrInvalidInput, raw)
	}
}

func ValidateRequired(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return nil
}

func ValidateOptionalURL(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parsed, err := url.Parse(strings.TrimSpace(v))
	if err != nil || (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) url", ErrInvalidInput, field)
	}
	return nil
}

func ValidateOptionalEmail(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	if _, err := mail.ParseAddress(v); err != nil {
		return fmt.Errorf("%w: invalid %s", ErrInvalidInput, field)
	}
	return nil
}

func ValidateAudienceMetrics(followers int64, engagementRate float64) error {
	if followers < 0 {
		return fmt.Errorf("%w: follower_count must be >= 0", ErrInvalidInput)
	}
	if engagementRate < 0 || engagementRate > 100 {
		return fmt.Errorf("%w: engagement_rate must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

func ValidateBudget(v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: budget must be >= 0", ErrInvalidInput)
	}
	return nil
}

func ValidateBudgetRange(min, max float64) error {
	if min < 0 || max < 0 {
		return fmt.Errorf("%w: budget range must be >= 0", ErrInvalidInput)
	}
	if max > 0 && min > max {
		return fmt.Errorf("%w: budget min exceeds max", ErrInvalidInput)
	}
	return nil
}

func ValidateCampaignWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	}
	return nil
}

// NormalizeTags lowercases, trims and de-duplicates tag lists while keeping
// first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
