package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viralforge/campaign-marketplace/internal/adapters/postgres"
	"github.com/viralforge/campaign-marketplace/internal/adapters/postgres/pgtest"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
)

var baseTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func newRepos(t *testing.T) postgres.Repositories {
	t.Helper()
	return postgres.NewRepositories(pgtest.SetupSQLiteTestDB(t))
}

func createUser(t *testing.T, repos postgres.Repositories, token string, role domain.Role) domain.User {
	t.Helper()
	user, err := repos.Users.Create(context.Background(), ports.CreateUserParams{
		TokenIdentifier: token,
		Email:           token + "@example.com",
		Role:            role,
		CreatedAt:       baseTime,
	})
	require.NoError(t, err)
	return user
}

func TestUserRepositoryLookupsAndTokenBinding(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	created := createUser(t, repos, "tok-1", domain.RoleBrand)
	byToken, err := repos.Users.GetByTokenIdentifier(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, byToken.UserID)

	byEmail, err := repos.Users.GetByEmail(ctx, "  TOK-1@example.com ")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, byEmail.UserID)

	_, err = repos.Users.Create(ctx, ports.CreateUserParams{TokenIdentifier: "tok-1", Role: domain.RoleBrand, CreatedAt: baseTime})
	assert.ErrorIs(t, err, domain.ErrConflict)

	legacy, err := repos.Users.Create(ctx, ports.CreateUserParams{Email: "legacy@example.com", Role: domain.RoleInfluencer, CreatedAt: baseTime})
	require.NoError(t, err)
	assert.Empty(t, legacy.TokenIdentifier)

	bound, err := repos.Users.BindTokenIdentifier(ctx, legacy.UserID, "tok-legacy", baseTime.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "tok-legacy", bound.TokenIdentifier)

	_, err = repos.Users.BindTokenIdentifier(ctx, legacy.UserID, "tok-other", baseTime.Add(2*time.Minute))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repos.Users.GetByTokenIdentifier(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileUpsertKeepsOneRowPerOwner(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	owner := createUser(t, repos, "brand-1", domain.RoleBrand)

	first, err := repos.Brands.Upsert(ctx, ports.UpsertBrandProfileParams{
		UserID:          owner.UserID,
		CompanyName:     "Acme",
		PreferredNiches: []string{"fitness"},
		Now:             baseTime,
	})
	require.NoError(t, err)

	second, err := repos.Brands.Upsert(ctx, ports.UpsertBrandProfileParams{
		UserID:      owner.UserID,
		CompanyName: "Acme Corp",
		Website:     "https://acme.example",
		Now:         baseTime.Add(time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, first.BrandID, second.BrandID)
	assert.Equal(t, "Acme Corp", second.CompanyName)
	assert.Equal(t, "https://acme.example", second.Website)
	assert.Empty(t, second.PreferredNiches)
	assert.True(t, second.CreatedAt.Equal(baseTime))
	assert.True(t, second.UpdatedAt.Equal(baseTime.Add(time.Hour)))

	influencer := createUser(t, repos, "inf-1", domain.RoleInfluencer)
	for i := 0; i < 3; i++ {
		_, err := repos.Influencers.Upsert(ctx, ports.UpsertInfluencerProfileParams{
			UserID:         influencer.UserID,
			Name:           "Ana",
			FollowerCount:  int64(1000 * (i + 1)),
			SocialAccounts: []domain.SocialAccount{{Platform: "instagram", Handle: "@ana"}},
			Now:            baseTime.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	rows, err := repos.Influencers.ListByUserIDs(ctx, []uuid.UUID{influencer.UserID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3000), rows[0].FollowerCount)
	assert.Equal(t, "@ana", rows[0].SocialAccounts[0].Handle)
}

func TestInfluencerSearchPushesDownInclusiveFollowerBounds(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	for i, followers := range []int64{500, 1000, 5000, 100000, 200000} {
		user := createUser(t, repos, uuid.NewString(), domain.RoleInfluencer)
		_, err := repos.Influencers.Upsert(ctx, ports.UpsertInfluencerProfileParams{
			UserID:        user.UserID,
			Name:          "creator",
			Niche:         "Fitness",
			Location:      "Lisbon",
			FollowerCount: followers,
			Now:           baseTime.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
	minFollowers, maxFollowers := int64(1000), int64(100000)
	rows, err := repos.Influencers.Search(ctx, domain.InfluencerFilter{
		Niche:        "fitness",
		Location:     "LISBON",
		MinFollowers: &minFollowers,
		MaxFollowers: &maxFollowers,
	})
	require.NoError(t, err)
	got := make([]int64, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.FollowerCount)
	}
	assert.Equal(t, []int64{1000, 5000, 100000}, got)
}

func TestCampaignUpdateAndSearch(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	owner := createUser(t, repos, "brand-2", domain.RoleBrand)

	campaign, err := repos.Campaigns.Create(ctx, ports.CreateCampaignParams{
		CreatorUserID: owner.UserID,
		Title:         "Spring drop",
		Budget:        500,
		Status:        domain.CampaignStatusDraft,
		ContentTypes:  []string{"reel"},
		CreatedAt:     baseTime,
	})
	require.NoError(t, err)

	title := "Spring launch"
	status := domain.CampaignStatusActive
	types := []string{"reel", "story"}
	updated, err := repos.Campaigns.Update(ctx, ports.UpdateCampaignParams{
		CampaignID:   campaign.CampaignID,
		Title:        &title,
		Status:       &status,
		ContentTypes: &types,
		UpdatedAt:    baseTime.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring launch", updated.Title)
	assert.Equal(t, domain.CampaignStatusActive, updated.Status)
	assert.Equal(t, []string{"reel", "story"}, updated.ContentTypes)
	assert.Equal(t, 500.0, updated.Budget)

	_, err = repos.Campaigns.Update(ctx, ports.UpdateCampaignParams{CampaignID: uuid.New(), Title: &title, UpdatedAt: baseTime})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	minBudget := 500.0
	rows, err := repos.Campaigns.Search(ctx, domain.CampaignFilter{Status: domain.CampaignStatusActive, MinBudget: &minBudget})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, campaign.CampaignID, rows[0].CampaignID)
}

func TestCampaignDeleteCascadeRemovesApplications(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	owner := createUser(t, repos, "brand-3", domain.RoleBrand)
	campaign, err := repos.Campaigns.Create(ctx, ports.CreateCampaignParams{
		CreatorUserID: owner.UserID, Title: "C", Status: domain.CampaignStatusActive, CreatedAt: baseTime,
	})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		inf := createUser(t, repos, uuid.NewString(), domain.RoleInfluencer)
		_, _, err := repos.Applications.Apply(ctx, ports.ApplyParams{CampaignID: campaign.CampaignID, InfluencerUserID: inf.UserID, Now: baseTime})
		require.NoError(t, err)
	}

	deleted, err := repos.Campaigns.DeleteCascade(ctx, campaign.CampaignID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repos.Campaigns.GetByID(ctx, campaign.CampaignID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	apps, err := repos.Applications.ListByCampaignIDs(ctx, []uuid.UUID{campaign.CampaignID})
	require.NoError(t, err)
	assert.Empty(t, apps)

	_, err = repos.Campaigns.DeleteCascade(ctx, campaign.CampaignID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpireActiveBeforeLeavesBoundaryActive(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	owner := createUser(t, repos, "brand-4", domain.RoleBrand)
	now := baseTime.Add(24 * time.Hour)

	mk := func(status domain.CampaignStatus, end *time.Time) domain.Campaign {
		c, err := repos.Campaigns.Create(ctx, ports.CreateCampaignParams{
			CreatorUserID: owner.UserID, Title: "c", Status: status, EndDate: end, CreatedAt: baseTime,
		})
		require.NoError(t, err)
		return c
	}
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	boundary := now
	pastActive := mk(domain.CampaignStatusActive, &past)
	pastDraft := mk(domain.CampaignStatusDraft, &past)
	futureActive := mk(domain.CampaignStatusActive, &future)
	boundaryActive := mk(domain.CampaignStatusActive, &boundary)
	noEnd := mk(domain.CampaignStatusActive, nil)

	ids, err := repos.Campaigns.ExpireActiveBefore(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{pastActive.CampaignID}, ids)

	for _, tc := range []struct {
		id   uuid.UUID
		want domain.CampaignStatus
	}{
		{pastActive.CampaignID, domain.CampaignStatusExpired},
		{pastDraft.CampaignID, domain.CampaignStatusDraft},
		{futureActive.CampaignID, domain.CampaignStatusActive},
		{boundaryActive.CampaignID, domain.CampaignStatusActive},
		{noEnd.CampaignID, domain.CampaignStatusActive},
	} {
		got, err := repos.Campaigns.GetByID(ctx, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Status)
	}

	again, err := repos.Campaigns.ExpireActiveBefore(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestApplyRevivesExistingRow(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	owner := createUser(t, repos, "brand-5", domain.RoleBrand)
	inf := createUser(t, repos, "inf-5", domain.RoleInfluencer)
	campaign, err := repos.Campaigns.Create(ctx, ports.CreateCampaignParams{
		CreatorUserID: owner.UserID, Title: "c", Status: domain.CampaignStatusActive, CreatedAt: baseTime,
	})
	require.NoError(t, err)

	first, created, err := repos.Applications.Apply(ctx, ports.ApplyParams{
		CampaignID: campaign.CampaignID, InfluencerUserID: inf.UserID, Pitch: "hi", Now: baseTime,
	})
	require.NoError(t, err)
	assert.True(t, created)

	note := "not this time"
	_, err = repos.Applications.UpdateStatus(ctx, ports.UpdateApplicationStatusParams{
		ApplicationID: first.ApplicationID, Status: domain.ApplicationStatusWithdrawn, Message: &note, UpdatedAt: baseTime.Add(time.Minute),
	})
	require.NoError(t, err)

	second, created, err := repos.Applications.Apply(ctx, ports.ApplyParams{
		CampaignID: campaign.CampaignID, InfluencerUserID: inf.UserID, Pitch: "again", Now: baseTime.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ApplicationID, second.ApplicationID)
	assert.Equal(t, domain.ApplicationStatusPending, second.Status)
	assert.Equal(t, "again", second.Pitch)
	assert.Empty(t, second.Message)
	assert.True(t, second.CreatedAt.Equal(baseTime.Add(time.Hour)))

	all, err := repos.Applications.ListByInfluencer(ctx, inf.UserID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOutboxAndDedupRepositories(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	eventID := uuid.New()
	require.NoError(t, repos.Outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID: eventID, EventType: domain.EventCampaignCreated, PartitionKey: "k",
		Payload: []byte(`{"a":1}`), OccurredAt: baseTime, SchemaVersion: "v1",
	}))
	pending, err := repos.Outbox.FetchUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.JSONEq(t, `{"a":1}`, string(pending[0].Payload))

	require.NoError(t, repos.Outbox.MarkFailed(ctx, eventID, "boom", baseTime))
	pending, err = repos.Outbox.FetchUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)

	require.NoError(t, repos.Outbox.MarkPublished(ctx, eventID, baseTime))
	pending, err = repos.Outbox.FetchUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	dup, err := repos.EventDedup.IsDuplicate(ctx, "evt-1", baseTime)
	require.NoError(t, err)
	assert.False(t, dup)
	require.NoError(t, repos.EventDedup.MarkProcessed(ctx, "evt-1", domain.EventIdentityUserCreated, baseTime.Add(time.Hour)))
	dup, err = repos.EventDedup.IsDuplicate(ctx, "evt-1", baseTime)
	require.NoError(t, err)
	assert.True(t, dup)
}

func TestIdempotencyReserveConflicts(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	expires := time.Now().UTC().Add(time.Hour)

	require.NoError(t, repos.Idempotency.Reserve(ctx, "key-1", "hash-a", expires))
	err := repos.Idempotency.Reserve(ctx, "key-1", "hash-a", expires)
	assert.ErrorIs(t, err, domain.ErrIdempotencyConflict)

	require.NoError(t, repos.Idempotency.Complete(ctx, "key-1", 201, []byte(`{"ok":true}`), time.Now().UTC()))
	rec, err := repos.Idempotency.Get(ctx, "key-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "completed", rec.Status)
	assert.Equal(t, 201, rec.ResponseCode)
	assert.Equal(t, "hash-a", rec.RequestHash)

	missing, err := repos.Idempotency.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIdempotencyReleaseOnlyDropsReservations(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	expires := time.Now().UTC().Add(time.Hour)

	require.NoError(t, repos.Idempotency.Reserve(ctx, "pending", "hash-a", expires))
	require.NoError(t, repos.Idempotency.Release(ctx, "pending"))
	rec, err := repos.Idempotency.Get(ctx, "pending")
	require.NoError(t, err)
	assert.Nil(t, rec)
	require.NoError(t, repos.Idempotency.Reserve(ctx, "pending", "hash-a", expires))

	require.NoError(t, repos.Idempotency.Reserve(ctx, "done", "hash-b", expires))
	require.NoError(t, repos.Idempotency.Complete(ctx, "done", 201, []byte(`{}`), time.Now().UTC()))
	require.NoError(t, repos.Idempotency.Release(ctx, "done"))
	rec, err = repos.Idempotency.Get(ctx, "done")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "completed", rec.Status)
}

func TestEventDedupMarkerExpiresAndRefreshes(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	require.NoError(t, repos.EventDedup.MarkProcessed(ctx, "evt-9", domain.EventIdentityUserCreated, baseTime.Add(time.Hour)))
	dup, err := repos.EventDedup.IsDuplicate(ctx, "evt-9", baseTime.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, dup)

	require.NoError(t, repos.EventDedup.MarkProcessed(ctx, "evt-9", domain.EventIdentityUserCreated, baseTime.Add(3*time.Hour)))
	dup, err = repos.EventDedup.IsDuplicate(ctx, "evt-9", baseTime.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, dup)
}
