package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SolutionRepo manages worked solutions, one per session.
type SolutionRepo struct {
	db *gorm.DB
}

// CreateOrReuse inserts a solution for the session, returning the
// existing row instead when the unique index on session_id fires. For
// any session, exactly one solution row is ever the visible winner.
func (r *SolutionRepo) CreateOrReuse(ctx context.Context, sessionID string, steps []string) (*Solution, error) {
	sol := &Solution{ID: uuid.NewString(), SessionID: sessionID}
	if err := sol.SetStepList(steps); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Create(sol).Error
	if err == nil {
		return sol, nil
	}
	if !IsDuplicate(err) {
		return nil, err
	}

	existing, ferr := r.ForSession(ctx, sessionID)
	if ferr != nil {
		return nil, ferr
	}
	if existing == nil {
		return nil, err
	}
	return existing, nil
}

// ForSession returns the session's solution, or nil when none exists.
func (r *SolutionRepo) ForSession(ctx context.Context, sessionID string) (*Solution, error) {
	var sol Solution
	err := r.db.WithContext(ctx).First(&sol, "session_id = ?", sessionID).Error
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sol, nil
}
