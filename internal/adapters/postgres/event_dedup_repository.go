package postgres

import (
	"context"
	"time"

	"github.com/viralforge/campaign-marketplace/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// eventDedupRepository remembers inbound identity events so a redelivered
// user.created never provisions the same marketplace user twice.
type eventDedupRepository struct {
	db *gorm.DB
}

// IsDuplicate treats an expired marker as unseen.
func (r *eventDedupRepository) IsDuplicate(ctx context.Context, eventID string, now time.Time) (bool, error) {
	var rows []eventDedupModel
	err := r.db.WithContext(ctx).
		Select("event_id").
		Where("event_id = ? AND expires_at > ?", eventID, now).
		Limit(1).
		Find(&rows).Error
	return len(rows) > 0, err
}

// MarkProcessed upserts the marker, refreshing the window of a replayed event.
func (r *eventDedupRepository) MarkProcessed(ctx context.Context, eventID, eventType string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"event_type", "processed_at", "expires_at"}),
		}).
		Create(&eventDedupModel{
			EventID:     eventID,
			EventType:   eventType,
			ProcessedAt: time.Now().UTC(),
			ExpiresAt:   expiresAt,
		}).Error
}

var _ ports.EventDedupRepository = (*eventDedupRepository)(nil)
