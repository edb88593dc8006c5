package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type brandProfileRepository struct {
	db *gorm.DB
}

// Upsert is a single INSERT .. ON CONFLICT (user_id) statement, so concurrent
// first writes for one owner still converge on one row.
func (r *brandProfileRepository) Upsert(ctx context.Context, params ports.UpsertBrandProfileParams) (domain.BrandProfile, error) {
	rec := brandProfileModel{
		BrandID:          uuid.New(),
		UserID:           params.UserID,
		CompanyName:      params.CompanyName,
		Industry:         params.Industry,
		Website:          params.Website,
		Description:      params.Description,
		LogoURL:          params.LogoURL,
		ContactName:      params.ContactName,
		ContactEmail:     params.ContactEmail,
		ContactPhone:     params.ContactPhone,
		PreferredNiches:  nonNilStrings(params.PreferredNiches),
		TypicalBudgetMin: params.TypicalBudgetMin,
		TypicalBudgetMax: params.TypicalBudgetMax,
		TargetAudience:   params.TargetAudience,
		CreatedAt:        params.Now,
		UpdatedAt:        params.Now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "industry", "website", "description", "logo_url",
			"contact_name", "contact_email", "contact_phone", "preferred_niches",
			"typical_budget_min", "typical_budget_max", "target_audience", "updated_at",
		}),
	}).Create(&rec).Error
	if err != nil {
		return domain.BrandProfile{}, err
	}
	return r.GetByUserID(ctx, params.UserID)
}

func (r *brandProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.BrandProfile, error) {
	var rec brandProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		return domain.BrandProfile{}, notFoundOr(err)
	}
	return toDomainBrandProfile(rec), nil
}

type influencerProfileRepository struct {
	db *gorm.DB
}

func (r *influencerProfileRepository) Upsert(ctx context.Context, params ports.UpsertInfluencerProfileParams) (domain.InfluencerProfile, error) {
	rec := influencerProfileModel{
		ProfileID:      uuid.New(),
		UserID:         params.UserID,
		Name:           params.Name,
		Handle:         params.Handle,
		Bio:            params.Bio,
		Niche:          params.Niche,
		Location:       params.Location,
		FollowerCount:  params.FollowerCount,
		EngagementRate: params.EngagementRate,
		SocialAccounts: params.SocialAccounts,
		Portfolio:      params.Portfolio,
		CreatedAt:      params.Now,
		UpdatedAt:      params.Now,
	}
	if rec.SocialAccounts == nil {
		rec.SocialAccounts = []domain.SocialAccount{}
	}
	if rec.Portfolio == nil {
		rec.Portfolio = []domain.PortfolioItem{}
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "handle", "bio", "niche", "location", "follower_count",
			"engagement_rate", "social_accounts", "portfolio", "updated_at",
		}),
	}).Create(&rec).Error
	if err != nil {
		return domain.InfluencerProfile{}, err
	}
	return r.GetByUserID(ctx, params.UserID)
}

func (r *influencerProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.InfluencerProfile, error) {
	var rec influencerProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		return domain.InfluencerProfile{}, notFoundOr(err)
	}
	return toDomainInfluencerProfile(rec), nil
}

func (r *influencerProfileRepository) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.InfluencerProfile, error) {
	if len(userIDs) == 0 {
		return []domain.InfluencerProfile{}, nil
	}
	var rows []influencerProfileModel
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.InfluencerProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainInfluencerProfile(row))
	}
	return out, nil
}

func (r *influencerProfileRepository) Search(ctx context.Context, filter domain.InfluencerFilter) ([]domain.InfluencerProfile, error) {
	q := r.db.WithContext(ctx).Model(&influencerProfileModel{})
	if filter.Niche != "" {
		q = q.Where("LOWER(niche) = LOWER(?)", filter.Niche)
	}
	if filter.Location != "" {
		q = q.Where("LOWER(location) = LOWER(?)", filter.Location)
	}
	if filter.MinFollowers != nil {
		q = q.Where("follower_count >= ?", *filter.MinFollowers)
	}
	if filter.MaxFollowers != nil {
		q = q.Where("follower_count <= ?", *filter.MaxFollowers)
	}
	var rows []influencerProfileModel
	if err := q.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.InfluencerProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainInfluencerProfile(row))
	}
	return out, nil
}
