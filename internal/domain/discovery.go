package domain

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// InfluencerFilter bounds are inclusive on both ends, for the pushed-down
// follower range and the in-memory engagement range alike.
type InfluencerFilter struct {
	Niche         string
	Location      string
	MinFollowers  *int64
	MaxFollowers  *int64
	MinEngagement *float64
	MaxEngagement *float64
	Search        string
	SortBy        string
	SortOrder     SortOrder
	Limit         int
	Offset        int
}

type CampaignFilter struct {
	Status       CampaignStatus
	Niche        string
	Search       string
	ContentTypes []string
	MinBudget    *float64
	MaxBudget    *float64
	Sort         string
	Limit        int
	Offset       int
}

const (
	InfluencerSortFollowers  = "followers"
	InfluencerSortEngagement = "engagement"
	InfluencerSortName       = "name"
	InfluencerSortNewest     = "newest"
	InfluencerSortHandle     = "handle"
	InfluencerSortLocation   = "location"

	CampaignSortNewest      = "newest"
	CampaignSortPaymentHigh = "payment-high"
	CampaignSortPaymentLow  = "payment-low"
	CampaignSortDeadline    = "deadline"
)

// CoerceNumber turns a sort value into a float64. Text keys such as handle and
// location reach it as strings: numeric ones are parsed, anything missing or
// non-numeric counts as zero.
func CoerceNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	case time.Time:
		if n.IsZero() {
			return 0
		}
		return float64(n.UnixNano())
	default:
		return 0
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func MatchesInfluencer(p InfluencerProfile, f InfluencerFilter) bool {
	if f.Niche != "" && !strings.EqualFold(p.Niche, f.Niche) {
		return false
	}
	if f.Location != "" && !strings.EqualFold(p.Location, f.Location) {
		return false
	}
	if f.MinFollowers != nil && p.FollowerCount < *f.MinFollowers {
		return false
	}
	if f.MaxFollowers != nil && p.FollowerCount > *f.MaxFollowers {
		return false
	}
	if f.MinEngagement != nil && p.EngagementRate < *f.MinEngagement {
		return false
	}
	if f.MaxEngagement != nil && p.EngagementRate > *f.MaxEngagement {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		if !containsFold(p.Name, needle) && !containsFold(p.Handle, needle) {
			return false
		}
	}
	return true
}

func FilterInfluencers(rows []InfluencerProfile, f InfluencerFilter) []InfluencerProfile {
	out := make([]InfluencerProfile, 0, len(rows))
	for _, p := range rows {
		if MatchesInfluencer(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func influencerSortValue(p InfluencerProfile, key string) any {
	switch key {
	case InfluencerSortFollowers:
		return p.FollowerCount
	case InfluencerSortEngagement:
		return p.EngagementRate
	case InfluencerSortNewest:
		return p.CreatedAt
	case InfluencerSortHandle:
		return p.Handle
	case InfluencerSortLocation:
		return p.Location
	default:
		return nil
	}
}

// SortInfluencers sorts in place. Rows with equal keys keep their incoming order.
func SortInfluencers(rows []InfluencerProfile, sortBy string, order SortOrder) {
	key := strings.ToLower(strings.TrimSpace(sortBy))
	if key == "" {
		return
	}
	slices.SortStableFunc(rows, func(a, b InfluencerProfile) int {
		var c int
		if key == InfluencerSortName {
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		} else {
			c = cmp.Compare(CoerceNumber(influencerSortValue(a, key)), CoerceNumber(influencerSortValue(b, key)))
		}
		if order == SortDesc {
			return -c
		}
		return c
	})
}

func MatchesCampaign(c Campaign, f CampaignFilter) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Niche != "" && !strings.EqualFold(c.Niche, f.Niche) {
		return false
	}
	if f.MinBudget != nil && c.Budget < *f.MinBudget {
		return false
	}
	if f.MaxBudget != nil && c.Budget > *f.MaxBudget {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		if !containsFold(c.Title, needle) && !containsFold(c.Description, needle) {
			return false
		}
	}
	if wanted := NormalizeTags(f.ContentTypes); len(wanted) > 0 {
		have := NormalizeTags(c.ContentTypes)
		matched := false
		for _, tag := range wanted {
			if slices.Contains(have, tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func FilterCampaigns(rows []Campaign, f CampaignFilter) []Campaign {
	out := make([]Campaign, 0, len(rows))
	for _, c := range rows {
		if MatchesCampaign(c, f) {
			out = append(out, c)
		}
	}
	return out
}

func compareDeadline(a, b Campaign) int {
	switch {
	case a.EndDate == nil && b.EndDate == nil:
		return 0
	case a.EndDate == nil:
		return 1
	case b.EndDate == nil:
		return -1
	default:
		return a.EndDate.Compare(*b.EndDate)
	}
}

var campaignComparators = map[string]func(a, b Campaign) int{
	CampaignSortNewest:      func(a, b Campaign) int { return b.CreatedAt.Compare(a.CreatedAt) },
	CampaignSortPaymentHigh: func(a, b Campaign) int { return cmp.Compare(b.Budget, a.Budget) },
	CampaignSortPaymentLow:  func(a, b Campaign) int { return cmp.Compare(a.Budget, b.Budget) },
	CampaignSortDeadline:    compareDeadline,
}

// SortCampaigns sorts in place using the comparator registered for key,
// falling back to newest first.
func SortCampaigns(rows []Campaign, key string) {
	compare, ok := campaignComparators[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		compare = campaignComparators[CampaignSortNewest]
	}
	slices.SortStableFunc(rows, compare)
}

func Paginate[T any](rows []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
