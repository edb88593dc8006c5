package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestFilterInfluencersFollowerRange(t *testing.T) {
	t.Parallel()

	rows := []InfluencerProfile{
		{Name: "a", FollowerCount: 500},
		{Name: "b", FollowerCount: 5_000},
		{Name: "c", FollowerCount: 50_000},
	}
	got := FilterInfluencers(rows, InfluencerFilter{MinFollowers: ptr(int64(1000)), MaxFollowers: ptr(int64(100_000))})

	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"b", "c"}, names)
}

func TestFilterInfluencersBoundsAreInclusive(t *testing.T) {
	t.Parallel()

	rows := []InfluencerProfile{{Name: "edge", FollowerCount: 1000, EngagementRate: 2.5}}
	f := InfluencerFilter{
		MinFollowers:  ptr(int64(1000)),
		MaxFollowers:  ptr(int64(1000)),
		MinEngagement: ptr(2.5),
		MaxEngagement: ptr(2.5),
	}
	assert.Len(t, FilterInfluencers(rows, f), 1)

	f.MinEngagement = ptr(2.51)
	assert.Empty(t, FilterInfluencers(rows, f))
}

func TestMatchesInfluencerSearchAndEquality(t *testing.T) {
	t.Parallel()

	p := InfluencerProfile{Name: "Mia Moves", Handle: "@miamoves", Niche: "Fitness", Location: "Lisbon"}
	assert.True(t, MatchesInfluencer(p, InfluencerFilter{Niche: "fitness", Location: "LISBON"}))
	assert.True(t, MatchesInfluencer(p, InfluencerFilter{Search: "@MIA"}))
	assert.False(t, MatchesInfluencer(p, InfluencerFilter{Search: "chef"}))
	assert.False(t, MatchesInfluencer(p, InfluencerFilter{Niche: "food"}))
}

func TestSortInfluencersIsStable(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows := []InfluencerProfile{
		{Name: "first", FollowerCount: 10, CreatedAt: base},
		{Name: "second", FollowerCount: 30, CreatedAt: base.Add(time.Hour)},
		{Name: "third", FollowerCount: 10, CreatedAt: base.Add(2 * time.Hour)},
	}

	SortInfluencers(rows, "followers", SortAsc)
	assert.Equal(t, "first", rows[0].Name)
	assert.Equal(t, "third", rows[1].Name)
	assert.Equal(t, "second", rows[2].Name)

	SortInfluencers(rows, "newest", SortDesc)
	assert.Equal(t, "third", rows[0].Name)

	SortInfluencers(rows, "name", ParseSortOrder("ASC"))
	assert.Equal(t, []string{"first", "second", "third"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestCoerceNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42.0, CoerceNumber(int64(42)))
	assert.Equal(t, 1.5, CoerceNumber(" 1.5 "))
	assert.Zero(t, CoerceNumber("n/a"))
	assert.Zero(t, CoerceNumber(nil))
	assert.Zero(t, CoerceNumber(time.Time{}))
	assert.Zero(t, CoerceNumber(struct{}{}))
}

func TestSortInfluencersCoercesTextKeys(t *testing.T) {
	t.Parallel()

	rows := []InfluencerProfile{
		{Name: "big", Handle: "300", Location: "Berlin"},
		{Name: "named", Handle: "@nova", Location: "10115"},
		{Name: "small", Handle: " 25 ", Location: "Paris"},
		{Name: "blank", Handle: "", Location: "2.5"},
	}
	names := func() []string { return []string{rows[0].Name, rows[1].Name, rows[2].Name, rows[3].Name} }

	SortInfluencers(rows, InfluencerSortHandle, SortAsc)
	assert.Equal(t, []string{"named", "blank", "small", "big"}, names())

	SortInfluencers(rows, InfluencerSortLocation, SortDesc)
	assert.Equal(t, []string{"named", "blank", "small", "big"}, names())
}

func TestSortCampaignsPaymentHighTies(t *testing.T) {
	t.Parallel()

	rows := []Campaign{
		{CampaignID: uuid.New(), Budget: 1000},
		{CampaignID: uuid.New(), Budget: 1000},
		{CampaignID: uuid.New(), Budget: 1000},
	}
	want := []uuid.UUID{rows[0].CampaignID, rows[1].CampaignID, rows[2].CampaignID}

	assert.NotPanics(t, func() { SortCampaigns(rows, CampaignSortPaymentHigh) })
	got := []uuid.UUID{rows[0].CampaignID, rows[1].CampaignID, rows[2].CampaignID}
	assert.ElementsMatch(t, want, got)
}

func TestSortCampaignsComparators(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	soon := base.Add(24 * time.Hour)
	later := base.Add(48 * time.Hour)
	rows := []Campaign{
		{Title: "cheap-late", Budget: 10, EndDate: &later, CreatedAt: base},
		{Title: "open", Budget: 50, CreatedAt: base.Add(time.Hour)},
		{Title: "rich-soon", Budget: 90, EndDate: &soon, CreatedAt: base.Add(2 * time.Hour)},
	}
	titles := func() []string { return []string{rows[0].Title, rows[1].Title, rows[2].Title} }

	SortCampaigns(rows, CampaignSortPaymentHigh)
	assert.Equal(t, []string{"rich-soon", "open", "cheap-late"}, titles())
	SortCampaigns(rows, CampaignSortPaymentLow)
	assert.Equal(t, []string{"cheap-late", "open", "rich-soon"}, titles())
	SortCampaigns(rows, CampaignSortDeadline)
	assert.Equal(t, []string{"rich-soon", "cheap-late", "open"}, titles())
	SortCampaigns(rows, "unknown")
	assert.Equal(t, []string{"rich-soon", "open", "cheap-late"}, titles())
}

func TestMatchesCampaign(t *testing.T) {
	t.Parallel()

	c := Campaign{Title: "Gym Reels", Description: "summer", Status: CampaignStatusActive, Niche: "fitness", Budget: 500, ContentTypes: []string{"reel"}}
	assert.True(t, MatchesCampaign(c, CampaignFilter{Status: CampaignStatusActive, Search: "SUMMER", ContentTypes: []string{"Story", "REEL"}}))
	assert.True(t, MatchesCampaign(c, CampaignFilter{MinBudget: ptr(500.0), MaxBudget: ptr(500.0)}))
	assert.False(t, MatchesCampaign(c, CampaignFilter{Status: CampaignStatusDraft}))
	assert.False(t, MatchesCampaign(c, CampaignFilter{ContentTypes: []string{"story"}}))
	assert.False(t, MatchesCampaign(c, CampaignFilter{MaxBudget: ptr(499.0)}))
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	rows := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{2, 3}, Paginate(rows, 2, 1))
	assert.Equal(t, []int{5}, Paginate(rows, 10, 4))
	assert.Equal(t, []int{}, Paginate(rows, 2, 9))
	assert.Equal(t, rows, Paginate(rows, 0, -3))
}
