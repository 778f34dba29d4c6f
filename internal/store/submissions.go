package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionRepo manages graded submissions.
type SubmissionRepo struct {
	db *gorm.DB
}

// Create inserts an incorrect submission. Incorrect rows carry no
// uniqueness constraint, so plain insert semantics apply.
func (r *SubmissionRepo) Create(ctx context.Context, sub *Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(sub).Error
}

// CreateCorrectOrReuse inserts a correct submission, falling back to the
// session's existing correct row when the partial unique index fires.
// Exactly one correct row per session wins; both callers in a duplicate
// race receive a row satisfying the key. The bool reports reuse.
func (r *SubmissionRepo) CreateCorrectOrReuse(ctx context.Context, sub *Submission) (*Submission, bool, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(sub).Error
	if err == nil {
		return sub, false, nil
	}
	if !IsDuplicate(err) {
		return nil, false, err
	}

	existing, ferr := r.CorrectForSession(ctx, sub.SessionID)
	if ferr != nil {
		return nil, false, ferr
	}
	if existing == nil {
		// The winning row vanished between insert and fetch; surface the
		// original conflict.
		return nil, false, err
	}
	return existing, true, nil
}

// CorrectForSession returns the session's correct submission, or nil.
func (r *SubmissionRepo) CorrectForSession(ctx context.Context, sessionID string) (*Submission, error) {
	var sub Submission
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND is_correct = ?", sessionID, true).
		First(&sub).Error
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
