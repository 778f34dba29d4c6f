package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HintRepo manages issued hints.
type HintRepo struct {
	db *gorm.DB
}

// Create appends a hint row.
func (r *HintRepo) Create(ctx context.Context, h *Hint) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(h).Error
}

// CountForSession returns how many hints the session has consumed.
func (r *HintRepo) CountForSession(ctx context.Context, sessionID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Hint{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error
	return int(n), err
}

// ForSession returns the session's hints oldest-first.
func (r *HintRepo) ForSession(ctx context.Context, sessionID string) ([]Hint, error) {
	var hints []Hint
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&hints).Error
	return hints, err
}
