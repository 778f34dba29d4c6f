package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreRepo manages per-client score summaries.
type ScoreRepo struct {
	db *gorm.DB
}

// Get returns the client's summary, or nil when no scoring event has
// ever been recorded for this client.
func (r *ScoreRepo) Get(ctx context.Context, clientID string) (*ScoreSummary, error) {
	var s ScoreSummary
	err := r.db.WithContext(ctx).First(&s, "client_id = ?", clientID).Error
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert writes the summary as a single insert-or-update keyed by
// client_id.
func (r *ScoreRepo) Upsert(ctx context.Context, s *ScoreSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_attempts", "correct_count", "current_streak",
				"best_streak", "points", "last_updated",
			}),
		}).
		Create(s).Error
}
