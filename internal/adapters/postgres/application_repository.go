package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
	"gorm.io/gorm"
)

type applicationRepository struct {
	db *gorm.DB
}

// Apply looks the pair up and then patches or inserts inside one transaction.
// The (campaign_id, influencer_user_id) unique index turns a lost insert race
// into ErrConflict.
func (r *applicationRepository) Apply(ctx context.Context, params ports.ApplyParams) (domain.Application, bool, error) {
	var (
		applicationID uuid.UUID
		created       bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing applicationModel
		err := tx.Where("campaign_id = ? AND influencer_user_id = ?", params.CampaignID, params.InfluencerUserID).
			Take(&existing).Error
		switch {
		case err == nil:
			applicationID = existing.ApplicationID
			return tx.Model(&applicationModel{}).
				Where("application_id = ?", existing.ApplicationID).
				Updates(map[string]any{
					"status":     string(domain.ApplicationStatusPending),
					"pitch":      params.Pitch,
					"message":    "",
					"created_at": params.Now,
					"updated_at": params.Now,
				}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec := applicationModel{
				ApplicationID:    uuid.New(),
				CampaignID:       params.CampaignID,
				InfluencerUserID: params.InfluencerUserID,
				Status:           string(domain.ApplicationStatusPending),
				Pitch:            params.Pitch,
				CreatedAt:        params.Now,
				UpdatedAt:        params.Now,
			}
			if err := tx.Create(&rec).Error; err != nil {
				if isUniqueViolation(err) {
					return domain.ErrConflict
				}
				return err
			}
			applicationID = rec.ApplicationID
			created = true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return domain.Application{}, false, err
	}
	app, err := r.GetByID(ctx, applicationID)
	if err != nil {
		return domain.Application{}, false, err
	}
	return app, created, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, applicationID uuid.UUID) (domain.Application, error) {
	var rec applicationModel
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).Take(&rec).Error; err != nil {
		return domain.Application{}, notFoundOr(err)
	}
	return toDomainApplication(rec), nil
}

func (r *applicationRepository) GetByCampaignAndInfluencer(ctx context.Context, campaignID, influencerUserID uuid.UUID) (domain.Application, error) {
	var rec applicationModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND influencer_user_id = ?", campaignID, influencerUserID).
		Take(&rec).Error
	if err != nil {
		return domain.Application{}, notFoundOr(err)
	}
	return toDomainApplication(rec), nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, params ports.UpdateApplicationStatusParams) (domain.Application, error) {
	updates := map[string]any{
		"status":     string(params.Status),
		"updated_at": params.UpdatedAt,
	}
	if params.Message != nil {
		updates["message"] = *params.Message
	}
	res := r.db.WithContext(ctx).Model(&applicationModel{}).Where("application_id = ?", params.ApplicationID).Updates(updates)
	if res.Error != nil {
		return domain.Application{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Application{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, params.ApplicationID)
}

func (r *applicationRepository) ListByCampaignIDs(ctx context.Context, campaignIDs []uuid.UUID) ([]domain.Application, error) {
	if len(campaignIDs) == 0 {
		return []domain.Application{}, nil
	}
	var rows []applicationModel
	if err := r.db.WithContext(ctx).Where("campaign_id IN ?", campaignIDs).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainApplications(rows), nil
}

func (r *applicationRepository) ListByInfluencer(ctx context.Context, influencerUserID uuid.UUID) ([]domain.Application, error) {
	var rows []applicationModel
	if err := r.db.WithContext(ctx).Where("influencer_user_id = ?", influencerUserID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainApplications(rows), nil
}

func toDomainApplications(rows []applicationModel) []domain.Application {
	out := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainApplication(row))
	}
	return out
}
