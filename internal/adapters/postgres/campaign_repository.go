package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type campaignRepository struct {
	db *gorm.DB
}

func (r *campaignRepository) Create(ctx context.Context, params ports.CreateCampaignParams) (domain.Campaign, error) {
	rec := campaignModel{
		CampaignID:     uuid.New(),
		CreatorUserID:  params.CreatorUserID,
		Title:          params.Title,
		Description:    params.Description,
		Budget:         params.Budget,
		Status:         string(params.Status),
		Niche:          params.Niche,
		TargetAudience: params.TargetAudience,
		ContentTypes:   nonNilStrings(params.ContentTypes),
		Requirements:   params.Requirements,
		StartDate:      params.StartDate,
		EndDate:        params.EndDate,
		CreatedAt:      params.CreatedAt,
		UpdatedAt:      params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Campaign{}, err
	}
	return toDomainCampaign(rec), nil
}

func (r *campaignRepository) GetByID(ctx context.Context, campaignID uuid.UUID) (domain.Campaign, error) {
	var rec campaignModel
	if err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Take(&rec).Error; err != nil {
		return domain.Campaign{}, notFoundOr(err)
	}
	return toDomainCampaign(rec), nil
}

func (r *campaignRepository) ListByIDs(ctx context.Context, campaignIDs []uuid.UUID) ([]domain.Campaign, error) {
	if len(campaignIDs) == 0 {
		return []domain.Campaign{}, nil
	}
	var rows []campaignModel
	if err := r.db.WithContext(ctx).Where("campaign_id IN ?", campaignIDs).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainCampaigns(rows), nil
}

func (r *campaignRepository) Update(ctx context.Context, params ports.UpdateCampaignParams) (domain.Campaign, error) {
	updates := map[string]any{
		"updated_at": params.UpdatedAt,
	}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Budget != nil {
		updates["budget"] = *params.Budget
	}
	if params.Status != nil {
		updates["status"] = string(*params.Status)
	}
	if params.Niche != nil {
		updates["niche"] = *params.Niche
	}
	if params.TargetAudience != nil {
		updates["target_audience"] = *params.TargetAudience
	}
	if params.ContentTypes != nil {
		updates["content_types"] = jsonStrings(*params.ContentTypes)
	}
	if params.Requirements != nil {
		updates["requirements"] = *params.Requirements
	}
	if params.StartDate != nil {
		updates["start_date"] = *params.StartDate
	}
	if params.EndDate != nil {
		updates["end_date"] = *params.EndDate
	}

	res := r.db.WithContext(ctx).Model(&campaignModel{}).Where("campaign_id = ?", params.CampaignID).Updates(updates)
	if res.Error != nil {
		return domain.Campaign{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, params.CampaignID)
}

func (r *campaignRepository) DeleteCascade(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	var deletedApplications int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("campaign_id = ?", campaignID).Delete(&applicationModel{})
		if res.Error != nil {
			return res.Error
		}
		deletedApplications = res.RowsAffected
		res = tx.Where("campaign_id = ?", campaignID).Delete(&campaignModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedApplications, nil
}

func (r *campaignRepository) ListByCreator(ctx context.Context, creatorUserID uuid.UUID) ([]domain.Campaign, error) {
	var rows []campaignModel
	if err := r.db.WithContext(ctx).Where("creator_user_id = ?", creatorUserID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainCampaigns(rows), nil
}

func (r *campaignRepository) Search(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	q := r.db.WithContext(ctx).Model(&campaignModel{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Niche != "" {
		q = q.Where("LOWER(niche) = LOWER(?)", filter.Niche)
	}
	if filter.MinBudget != nil {
		q = q.Where("budget >= ?", *filter.MinBudget)
	}
	if filter.MaxBudget != nil {
		q = q.Where("budget <= ?", *filter.MaxBudget)
	}
	var rows []campaignModel
	if err := q.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainCampaigns(rows), nil
}

// ExpireActiveBefore is a single UPDATE .. RETURNING. A campaign ending
// exactly at now stays active.
func (r *campaignRepository) ExpireActiveBefore(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var expired []campaignModel
	err := r.db.WithContext(ctx).Model(&expired).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "campaign_id"}}}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", string(domain.CampaignStatusActive), now).
		Updates(map[string]any{
			"status":     string(domain.CampaignStatusExpired),
			"updated_at": now,
		}).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(expired))
	for _, row := range expired {
		ids = append(ids, row.CampaignID)
	}
	return ids, nil
}

func toDomainCampaigns(rows []campaignModel) []domain.Campaign {
	out := make([]domain.Campaign, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainCampaign(row))
	}
	return out
}
