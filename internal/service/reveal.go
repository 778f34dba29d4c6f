package service

import (
	"context"
	"time"

	"github.com/abhisek/mathquest/internal/problem"
	"github.com/abhisek/mathquest/internal/retry"
	"github.com/abhisek/mathquest/internal/store"
)

// RevealResult is the payload for a revealed solution.
type RevealResult struct {
	Steps []string `json:"steps"`
}

// RevealSolution returns the session's worked steps, marking the session
// revealed on first call. Repeat calls return the same persisted steps;
// nothing is regenerated. Sessions that somehow predate their solution
// row get one generated lazily, with the insert-or-reuse resolver
// picking a single winner under concurrent reveals.
func (s *Service) RevealSolution(ctx context.Context, sessionID string) (*RevealResult, error) {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sol, err := retry.Do(ctx, s.cfg.ReadRetry, func(ctx context.Context) (*store.Solution, error) {
		return s.store.Solutions().ForSession(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}

	if sol == nil {
		d, ok := problem.ParseDifficulty(sess.Difficulty)
		if !ok {
			d = problem.DifficultyMedium
		}
		steps, gerr := s.gen.Solution(ctx, sess.ProblemText, sess.CorrectAnswer, d)
		if gerr != nil {
			return nil, gerr
		}
		sol, err = retry.Do(ctx, s.cfg.WriteRetry, func(ctx context.Context) (*store.Solution, error) {
			return s.store.Solutions().CreateOrReuse(ctx, sessionID, steps)
		})
		if err != nil {
			return nil, err
		}
	}

	_, err = retry.Do(ctx, s.cfg.WriteRetry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Sessions().MarkRevealed(ctx, sessionID, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	steps, err := sol.StepList()
	if err != nil {
		return nil, err
	}
	return &RevealResult{Steps: steps}, nil
}
