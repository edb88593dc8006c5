package domain

const (
	EventCampaignCreated          = "campaign.created"
	EventCampaignUpdated          = "campaign.updated"
	EventCampaignDeleted          = "campaign.deleted"
	EventCampaignExpired          = "campaign.expired"
	EventApplicationSubmitted     = "application.submitted"
	EventApplicationStatusChanged = "application.status_changed"
	EventApplicationWithdrawn     = "application.withdrawn"
	EventProfileUpdated           = "profile.updated"

	EventIdentityUserCreated = "identity.user_created"
)

func IsCanonicalEmittedEvent(eventType string) bool {
	switch eventType {
	case EventCampaignCreated, EventCampaignUpdated, EventCampaignDeleted, EventCampaignExpired,
		EventApplicationSubmitted, EventApplicationStatusChanged, EventApplicationWithdrawn,
		EventProfileUpdated:
		return true
	default:
		return false
	}
}

func CanonicalPartitionKeyPath(eventType string) string {
	switch eventType {
	case EventCampaignCreated, EventCampaignUpdated, EventCampaignDeleted, EventCampaignExpired,
		EventApplicationSubmitted, EventApplicationStatusChanged, EventApplicationWithdrawn:
		return "data.campaign_id"
	case EventProfileUpdated:
		return "data.user_id"
	default:
		return ""
	}
}
