package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepo manages problem sessions.
type SessionRepo struct {
	db *gorm.DB
}

// Create inserts a new session, assigning an id if absent.
func (r *SessionRepo) Create(ctx context.Context, s *ProblemSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

// Get fetches a session by id.
func (r *SessionRepo) Get(ctx context.Context, id string) (*ProblemSession, error) {
	var s ProblemSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// MarkRevealed sets revealed_at once. Already-revealed sessions are left
// untouched; the call is idempotent and reports no error either way.
func (r *SessionRepo) MarkRevealed(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&ProblemSession{}).
		Where("id = ? AND revealed_at IS NULL", id).
		Update("revealed_at", at).Error
}

// List returns sessions newest-first with their submissions nested.
// The cursor is compound: before restricts to sessions created strictly
// earlier, with beforeID breaking ties on the boundary timestamp so
// same-instant rows are never skipped between pages. Ordering is
// (created_at, id) descending to match.
func (r *SessionRepo) List(ctx context.Context, limit int, before time.Time, beforeID string) ([]ProblemSession, error) {
	q := r.db.WithContext(ctx).
		Preload("Submissions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if !before.IsZero() {
		if beforeID != "" {
			q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", before, before, beforeID)
		} else {
			q = q.Where("created_at < ?", before)
		}
	}

	var sessions []ProblemSession
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// ClearAll removes every session and its dependents.
func (r *SessionRepo) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&Submission{}, &Hint{}, &Solution{}, &ProblemSession{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
