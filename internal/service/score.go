package service

import (
	"context"

	"github.com/abhisek/mathquest/internal/retry"
	"github.com/abhisek/mathquest/internal/store"
)

// GetScore returns the client's running score, or nil when no client id
// was presented or nothing has been recorded for it yet. A nil score
// renders as null, which the UI reads as "not started".
func (s *Service) GetScore(ctx context.Context, clientID string) (*Score, error) {
	if clientID == "" {
		return nil, nil
	}

	sum, err := retry.Do(ctx, s.cfg.ReadRetry, func(ctx context.Context) (*store.ScoreSummary, error) {
		return s.store.Scores().Get(ctx, clientID)
	})
	if err != nil {
		return nil, err
	}
	if sum == nil {
		return nil, nil
	}
	return scoreFromState(*stateFromSummary(sum)), nil
}
