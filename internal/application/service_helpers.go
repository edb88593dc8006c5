package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
)

const eventSchemaVersion = "1.0"

type campaignEventData struct {
	CampaignID          string `json:"campaign_id"`
	CreatorUserID       string `json:"creator_user_id"`
	Title               string `json:"title,omitempty"`
	Status              string `json:"status,omitempty"`
	EndDate             string `json:"end_date,omitempty"`
	DeletedApplications *int64 `json:"deleted_applications,omitempty"`
}

type applicationEventData struct {
	ApplicationID    string `json:"application_id"`
	CampaignID       string `json:"campaign_id"`
	InfluencerUserID string `json:"influencer_user_id"`
	Status           string `json:"status"`
	PreviousStatus   string `json:"previous_status,omitempty"`
}

type profileEventData struct {
	UserID      string `json:"user_id"`
	ProfileType string `json:"profile_type"`
	UpdatedAt   string `json:"updated_at"`
}

// enqueueEvent writes the canonical envelope to the outbox. The relay worker
// publishes it later.
func (s *Service) enqueueEvent(ctx context.Context, eventType, partitionKey string, data any) error {
	occurredAt := s.nowFn()
	eventID := uuid.New()
	partitionKeyPath := domain.CanonicalPartitionKeyPath(eventType)
	envelope := map[string]any{
		"event_id":           eventID.String(),
		"event_type":         eventType,
		"occurred_at":        occurredAt.Format(time.RFC3339),
		"source_service":     s.cfg.ServiceName,
		"schema_version":     eventSchemaVersion,
		"partition_key_path": partitionKeyPath,
		"partition_key":      partitionKey,
		"data":               data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:          eventID,
		EventType:        eventType,
		PartitionKey:     partitionKey,
		PartitionKeyPath: partitionKeyPath,
		Payload:          payload,
		OccurredAt:       occurredAt,
		SchemaVersion:    eventSchemaVersion,
	})
}

func (s *Service) enqueueCampaignEvent(ctx context.Context, eventType string, c domain.Campaign, deletedApplications *int64) {
	data := campaignEventData{
		CampaignID:          c.CampaignID.String(),
		CreatorUserID:       c.CreatorUserID.String(),
		Title:               c.Title,
		Status:              string(c.Status),
		DeletedApplications: deletedApplications,
	}
	if c.EndDate != nil {
		data.EndDate = c.EndDate.UTC().Format(time.RFC3339)
	}
	_ = s.enqueueEvent(ctx, eventType, c.CampaignID.String(), data)
}

func (s *Service) enqueueApplicationEvent(ctx context.Context, eventType string, app domain.Application, previous domain.ApplicationStatus) {
	_ = s.enqueueEvent(ctx, eventType, app.CampaignID.String(), applicationEventData{
		ApplicationID:    app.ApplicationID.String(),
		CampaignID:       app.CampaignID.String(),
		InfluencerUserID: app.InfluencerUserID.String(),
		Status:           string(app.Status),
		PreviousStatus:   string(previous),
	})
}

func (s *Service) enqueueProfileUpdated(ctx context.Context, userID uuid.UUID, profileType string) {
	_ = s.enqueueEvent(ctx, domain.EventProfileUpdated, userID.String(), profileEventData{
		UserID:      userID.String(),
		ProfileType: profileType,
		UpdatedAt:   s.nowFn().Format(time.RFC3339),
	})
}

func hashRequest(v any) string {
	raw, _ := json.Marshal(v)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// replayIdempotent returns the stored response for a completed request with
// the same body. A different body, or a request still in flight, conflicts.
func (s *Service) replayIdempotent(ctx context.Context, key string, request any, out any) (bool, error) {
	if key == "" {
		return false, nil
	}
	rec, err := s.idempotency.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if rec == nil || !rec.ExpiresAt.After(s.nowFn()) {
		return false, nil
	}
	if rec.RequestHash != hashRequest(request) {
		return false, fmt.Errorf("%w: key reused with a different request", domain.ErrIdempotencyConflict)
	}
	if rec.Status != "completed" {
		return false, fmt.Errorf("%w: request already in progress", domain.ErrIdempotencyConflict)
	}
	if err := json.Unmarshal(rec.ResponseBody, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) reserveIdempotency(ctx context.Context, key string, request any) error {
	if key == "" {
		return nil
	}
	return s.idempotency.Reserve(ctx, key, hashRequest(request), s.nowFn().Add(s.cfg.IdempotencyTTL))
}

func (s *Service) completeIdempotency(ctx context.Context, key string, code int, response any) {
	if key == "" {
		return
	}
	body, err := json.Marshal(response)
	if err != nil {
		return
	}
	_ = s.idempotency.Complete(ctx, key, code, body, s.nowFn())
}

// releaseIdempotency frees a reservation whose request failed. It runs even
// when the caller's context is already cancelled.
func (s *Service) releaseIdempotency(ctx context.Context, key string) {
	if key == "" {
		return
	}
	_ = s.idempotency.Release(context.WithoutCancel(ctx), key)
}

func scopedIdempotencyKey(userID uuid.UUID, key string) string {
	if key == "" {
		return ""
	}
	return userID.String() + ":" + key
}

func cacheKeyCampaign(campaignID uuid.UUID) string {
	return "campaign:" + campaignID.String()
}

func cacheKeyApplyRate(userID uuid.UUID) string {
	return "apply_rate:" + userID.String()
}

func (s *Service) pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{UserID: u.UserID.String(), Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

func toBrandProfileResponse(p domain.BrandProfile) BrandProfileResponse {
	return BrandProfileResponse{
		BrandID: p.BrandID.String(), UserID: p.UserID.String(), CompanyName: p.CompanyName, Industry: p.Industry,
		Website: p.Website, Description: p.Description, LogoURL: p.LogoURL, ContactName: p.ContactName,
		ContactEmail: p.ContactEmail, ContactPhone: p.ContactPhone, PreferredNiches: p.PreferredNiches,
		TypicalBudgetMin: p.TypicalBudgetMin, TypicalBudgetMax: p.TypicalBudgetMax, TargetAudience: p.TargetAudience,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toInfluencerProfileResponse(p domain.InfluencerProfile) InfluencerProfileResponse {
	return InfluencerProfileResponse{
		ProfileID: p.ProfileID.String(), UserID: p.UserID.String(), Name: p.Name, Handle: p.Handle, Bio: p.Bio,
		Niche: p.Niche, Location: p.Location, FollowerCount: p.FollowerCount, EngagementRate: p.EngagementRate,
		SocialAccounts: p.SocialAccounts, Portfolio: p.Portfolio, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toCampaignResponse(c domain.Campaign) CampaignResponse {
	return CampaignResponse{
		CampaignID: c.CampaignID.String(), CreatorUserID: c.CreatorUserID.String(), Title: c.Title,
		Description: c.Description, Budget: c.Budget, Status: string(c.Status), Niche: c.Niche,
		TargetAudience: c.TargetAudience, ContentTypes: c.ContentTypes, Requirements: c.Requirements,
		StartDate: c.StartDate, EndDate: c.EndDate, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func toCampaignSummary(c domain.Campaign) *CampaignSummary {
	return &CampaignSummary{
		CampaignID: c.CampaignID.String(), Title: c.Title, Status: string(c.Status), Budget: c.Budget, EndDate: c.EndDate,
	}
}

func toInfluencerSummary(p domain.InfluencerProfile) *InfluencerSummary {
	return &InfluencerSummary{
		UserID: p.UserID.String(), Name: p.Name, Handle: p.Handle, Niche: p.Niche,
		FollowerCount: p.FollowerCount, EngagementRate: p.EngagementRate,
	}
}

func toApplicationResponse(a domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID: a.ApplicationID.String(), CampaignID: a.CampaignID.String(),
		InfluencerUserID: a.InfluencerUserID.String(), Status: string(a.Status), Pitch: a.Pitch,
		Message: a.Message, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
