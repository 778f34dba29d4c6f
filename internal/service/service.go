// Package service orchestrates the request handlers' work: generation,
// grading, hint issuing, solution reveal, and score upkeep. Handlers do
// transport; everything behind them lives here.
package service

import (
	"context"
	"time"

	"github.com/abhisek/mathquest/internal/problem"
	"github.com/abhisek/mathquest/internal/retry"
	"github.com/abhisek/mathquest/internal/score"
	"github.com/abhisek/mathquest/internal/store"
)

// Config holds the service's retry policies. Generation has its own
// policy inside the generator; these cover datastore access.
type Config struct {
	// ReadRetry wraps datastore reads.
	ReadRetry retry.Policy

	// WriteRetry wraps datastore writes.
	WriteRetry retry.Policy
}

// DefaultConfig returns the recommended policies.
func DefaultConfig() Config {
	return Config{
		ReadRetry:  retry.Policy{MaxAttempts: 3, BaseDelay: 50 * time.Millisecond},
		WriteRetry: retry.Policy{MaxAttempts: 3, BaseDelay: 100 * time.Millisecond},
	}
}

// Service wires the generator and store together.
type Service struct {
	store *store.Store
	gen   *problem.Generator
	cfg   Config
}

// New creates a Service.
func New(st *store.Store, gen *problem.Generator, cfg Config) *Service {
	return &Service{store: st, gen: gen, cfg: cfg}
}

// Score is the score payload returned from every scoring endpoint.
type Score struct {
	TotalAttempts int     `json:"total_attempts"`
	CorrectCount  int     `json:"correct_count"`
	CurrentStreak int     `json:"current_streak"`
	BestStreak    int     `json:"best_streak"`
	Points        int     `json:"points"`
	Accuracy      float64 `json:"accuracy"`
}

func scoreFromState(s score.State) *Score {
	return &Score{
		TotalAttempts: s.TotalAttempts,
		CorrectCount:  s.CorrectCount,
		CurrentStreak: s.CurrentStreak,
		BestStreak:    s.BestStreak,
		Points:        s.Points,
		Accuracy:      score.Accuracy(s),
	}
}

func stateFromSummary(sum *store.ScoreSummary) *score.State {
	if sum == nil {
		return nil
	}
	return &score.State{
		TotalAttempts: sum.TotalAttempts,
		CorrectCount:  sum.CorrectCount,
		CurrentStreak: sum.CurrentStreak,
		BestStreak:    sum.BestStreak,
		Points:        sum.Points,
	}
}

func summaryFromState(clientID string, s score.State) *store.ScoreSummary {
	return &store.ScoreSummary{
		ClientID:      clientID,
		TotalAttempts: s.TotalAttempts,
		CorrectCount:  s.CorrectCount,
		CurrentStreak: s.CurrentStreak,
		BestStreak:    s.BestStreak,
		Points:        s.Points,
		LastUpdated:   time.Now().UTC(),
	}
}

// applyScoreEvent reads the client's prior state, applies ev, and writes
// the result back as one upsert. Identity arrives as an explicit
// parameter; nothing here reads ambient state.
func (s *Service) applyScoreEvent(ctx context.Context, clientID string, ev score.Event) (*Score, error) {
	prior, err := retry.Do(ctx, s.cfg.ReadRetry, func(ctx context.Context) (*store.ScoreSummary, error) {
		return s.store.Scores().Get(ctx, clientID)
	})
	if err != nil {
		return nil, err
	}

	next := score.Apply(stateFromSummary(prior), ev)

	_, err = retry.Do(ctx, s.cfg.WriteRetry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Scores().Upsert(ctx, summaryFromState(clientID, next))
	})
	if err != nil {
		return nil, err
	}

	return scoreFromState(next), nil
}
