package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		return domain.User{}, notFoundOr(err)
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByTokenIdentifier(ctx context.Context, tokenIdentifier string) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("token_identifier = ?", tokenIdentifier).Take(&rec).Error; err != nil {
		return domain.User{}, notFoundOr(err)
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)).Take(&rec).Error; err != nil {
		return domain.User{}, notFoundOr(err)
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) Create(ctx context.Context, params ports.CreateUserParams) (domain.User, error) {
	rec := userModel{
		UserID:          uuid.New(),
		TokenIdentifier: optionalString(params.TokenIdentifier),
		Email:           optionalString(domain.NormalizeEmail(params.Email)),
		Role:            string(params.Role),
		CreatedAt:       params.CreatedAt,
		UpdatedAt:       params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrConflict
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) BindTokenIdentifier(ctx context.Context, userID uuid.UUID, tokenIdentifier string, now time.Time) (domain.User, error) {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("user_id = ? AND (token_identifier IS NULL OR token_identifier = '')", userID).
		Updates(map[string]any{
			"token_identifier": tokenIdentifier,
			"updated_at":       now,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.User{}, domain.ErrConflict
		}
		return domain.User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.User{}, domain.ErrConflict
	}
	return r.GetByID(ctx, userID)
}
