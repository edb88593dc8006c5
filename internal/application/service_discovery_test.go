package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viralforge/campaign-marketplace/internal/domain"
)

func (h *harness) seedInfluencer(t *testing.T, name string, req UpsertInfluencerProfileRequest) {
	t.Helper()
	req.Name = name
	_, err := h.svc.UpsertInfluencerProfile(context.Background(), influencerClaims(name), req)
	require.NoError(t, err)
	h.advance(time.Second)
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestDiscoverInfluencersFollowerBoundsAreInclusive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedInfluencer(t, "small", UpsertInfluencerProfileRequest{FollowerCount: 500})
	h.seedInfluencer(t, "mid", UpsertInfluencerProfileRequest{FollowerCount: 5000})
	h.seedInfluencer(t, "large", UpsertInfluencerProfileRequest{FollowerCount: 50000})

	page, err := h.svc.DiscoverInfluencers(ctx, domain.InfluencerFilter{
		MinFollowers: int64Ptr(1000),
		MaxFollowers: int64Ptr(100000),
	})
	require.NoError(t, err)
	names := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		names = append(names, item.Name)
	}
	assert.ElementsMatch(t, []string{"mid", "large"}, names)
	assert.Equal(t, 2, page.Total)

	page, err = h.svc.DiscoverInfluencers(ctx, domain.InfluencerFilter{MinFollowers: int64Ptr(5000), MaxFollowers: int64Ptr(5000)})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "mid", page.Items[0].Name)

	_, err = h.svc.DiscoverInfluencers(ctx, domain.InfluencerFilter{MinFollowers: int64Ptr(10), MaxFollowers: int64Ptr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDiscoverInfluencersFiltersSortsAndPaginates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedInfluencer(t, "Zoe Fit", UpsertInfluencerProfileRequest{Niche: "Fitness", Location: "Lisbon", FollowerCount: 9000, EngagementRate: 3.5})
	h.seedInfluencer(t, "Adam Lifts", UpsertInfluencerProfileRequest{Niche: "fitness", Location: "Porto", FollowerCount: 20000, EngagementRate: 5})
	h.seedInfluencer(t, "Mia Moves", UpsertInfluencerProfileRequest{Niche: "fitness", Location: "Lisbon", FollowerCount: 1000, EngagementRate: 5})
	h.seedInfluencer(t, "Chef Rui", UpsertInfluencerProfileRequest{Niche: "food", Location: "Lisbon", FollowerCount: 70000, EngagementRate: 8})

	page, err := h.svc.DiscoverInfluencers(ctx, domain.InfluencerFilter{
		Niche:         "FITNESS",
		MinEngagement: float64Ptr(3.5),
		MaxEngagement: float64Ptr(5),
		SortBy:        domain.InfluencerSortEngagement,
		SortOrder:     domain.SortDesc,
	})
	require.NoError(t, err)
	names := []string{}
	for _, item := range page.Items {
		names = append(names, item.Name)
	}
	// Equal engagement keeps creation order.
	assert.Equal(t, []string{"Adam Lifts", "Mia Moves", "Zoe Fit"}, names)

	page, err = h.svc.DiscoverInfluencers(ctx, domain.InfluencerFilter{Location: "lisbon", Search: "MO"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mia Moves", page.Items[0].Name)

	page, err = h.svc.DiscoverInfluencers(ctx, domain.InfluencerFilter{
		SortBy:    domain.InfluencerSortName,
		SortOrder: domain.SortAsc,
		Limit:     2,
		Offset:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Chef Rui", page.Items[0].Name)
	assert.Equal(t, "Mia Moves", page.Items[1].Name)

	page, err = h.svc.DiscoverInfluencers(ctx, domain.InfluencerFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 20, page.Limit)
}

func TestDiscoverCampaignsTiesAndDefaults(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	brand := brandClaims("acme")

	var tied []string
	for _, title := range []string{"alpha", "beta", "gamma"} {
		c := h.createCampaign(t, brand, CreateCampaignRequest{Title: title, Status: "active", Budget: 1000})
		tied = append(tied, c.CampaignID)
	}
	h.createCampaign(t, brand, CreateCampaignRequest{Title: "hidden draft", Budget: 5000})

	page, err := h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{Sort: domain.CampaignSortPaymentHigh})
	require.NoError(t, err)
	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.CampaignID)
	}
	assert.ElementsMatch(t, tied, ids)

	page, err = h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{Status: domain.CampaignStatusDraft})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "hidden draft", page.Items[0].Title)
}

func TestDiscoverCampaignsFiltersAndComparators(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	brand := brandClaims("acme")
	soon := h.now.Add(24 * time.Hour)
	later := h.now.Add(240 * time.Hour)

	h.createCampaign(t, brand, CreateCampaignRequest{Title: "Gym reels", Status: "active", Budget: 300, Niche: "fitness", ContentTypes: []string{"reel"}, EndDate: &later})
	h.createCampaign(t, brand, CreateCampaignRequest{Title: "Protein story", Status: "active", Budget: 900, Niche: "fitness", ContentTypes: []string{"story"}, EndDate: &soon})
	h.createCampaign(t, brand, CreateCampaignRequest{Title: "Open brief", Description: "any gym content", Status: "active", Budget: 600, Niche: "fitness"})
	h.createCampaign(t, brand, CreateCampaignRequest{Title: "Food", Status: "active", Budget: 10000, Niche: "food"})

	titles := func(p CampaignPage) []string {
		out := []string{}
		for _, item := range p.Items {
			out = append(out, item.Title)
		}
		return out
	}

	page, err := h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{Niche: "fitness", Sort: domain.CampaignSortPaymentLow})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gym reels", "Open brief", "Protein story"}, titles(page))

	page, err = h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{Niche: "fitness", Sort: domain.CampaignSortDeadline})
	require.NoError(t, err)
	assert.Equal(t, []string{"Protein story", "Gym reels", "Open brief"}, titles(page))

	page, err = h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{Sort: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Open brief", "Protein story", "Gym reels"}, titles(page))

	page, err = h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{Search: "GYM"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Gym reels", "Open brief"}, titles(page))

	page, err = h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{ContentTypes: []string{"Story", "carousel"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Protein story"}, titles(page))

	page, err = h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{MinBudget: float64Ptr(600), MaxBudget: float64Ptr(900)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Open brief", "Protein story"}, titles(page))

	_, err = h.svc.DiscoverCampaigns(ctx, domain.CampaignFilter{MinBudget: float64Ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecommendedCampaignsFollowProfileNiche(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	brand := brandClaims("acme")
	creator := influencerClaims("ana")

	page, err := h.svc.RecommendedCampaigns(ctx, creator, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	h.seedInfluencer(t, "ana", UpsertInfluencerProfileRequest{Niche: "fitness"})
	h.createCampaign(t, brand, CreateCampaignRequest{Title: "older", Status: "active", Niche: "Fitness"})
	h.createCampaign(t, brand, CreateCampaignRequest{Title: "newer", Status: "active", Niche: "fitness"})
	h.createCampaign(t, brand, CreateCampaignRequest{Title: "draft", Niche: "fitness"})
	h.createCampaign(t, brand, CreateCampaignRequest{Title: "other", Status: "active", Niche: "food"})

	page, err = h.svc.RecommendedCampaigns(ctx, creator, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "newer", page.Items[0].Title)
	assert.Equal(t, "older", page.Items[1].Title)
}
