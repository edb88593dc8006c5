package domain

import (
	"fmt"
	"strings"
)

type CampaignStatus string

const (
	CampaignStatusDraft   CampaignStatus = "draft"
	CampaignStatusActive  CampaignStatus = "active"
	CampaignStatusExpired CampaignStatus = "expired"
)

func ParseCampaignStatus(raw string) (CampaignStatus, error) {
	switch CampaignStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case CampaignStatusDraft:
		return CampaignStatusDraft, nil
	case CampaignStatusActive:
		return CampaignStatusActive, nil
	case CampaignStatusExpired:
		return CampaignStatusExpired, nil
	default:
		return "", fmt.Errorf("%w: unsupported campaign status %q", ErrInvalidInput, raw)
	}
}

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusDeclined  ApplicationStatus = "declined"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// ParseApplicationStatus accepts the unified vocabulary plus the older
// approved/rejected spellings still sent by some clients.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return ApplicationStatusPending, nil
	case "accepted", "approved":
		return ApplicationStatusAccepted, nil
	case "declined", "rejected":
		return ApplicationStatusDeclined, nil
	case "withdrawn":
		return ApplicationStatusWithdrawn, nil
	default:
		return "", fmt.Errorf("%w: unsupported application status %q", ErrInvalidInput, raw)
	}
}

// IsCurrent is false for tombstoned applications.
func (s ApplicationStatus) IsCurrent() bool {
	return s != ApplicationStatusWithdrawn
}

// CanDecide reports whether a brand may move an application from s to next.
func (s ApplicationStatus) CanDecide(next ApplicationStatus) error {
	if s == ApplicationStatusWithdrawn {
		return fmt.Errorf("%w: application was withdrawn", ErrConflict)
	}
	switch next {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusDeclined:
		return nil
	default:
		return fmt.Errorf("%w: brands cannot set status %q", ErrInvalidInput, next)
	}
}

func (s ApplicationStatus) CanWithdraw() error {
	if s == ApplicationStatusWithdrawn {
		return fmt.Errorf("%w: application already withdrawn", ErrNotFound)
	}
	return nil
}
