package service

import (
	"context"

	"github.com/abhisek/mathquest/internal/problem"
	"github.com/abhisek/mathquest/internal/retry"
	"github.com/abhisek/mathquest/internal/store"
)

// GenerateResult is the payload for a freshly generated problem.
type GenerateResult struct {
	SessionID   string `json:"session_id"`
	ProblemText string `json:"problem_text"`
	Difficulty  string `json:"difficulty"`
	ProblemType string `json:"problem_type"`
}

// GenerateProblem creates a word problem and persists the session with
// its worked solution. The solution is generated in the same call as the
// problem and stored eagerly, so reveal never has to generate.
func (s *Service) GenerateProblem(ctx context.Context, d problem.Difficulty, t problem.Type) (*GenerateResult, error) {
	p, err := s.gen.Problem(ctx, d, t)
	if err != nil {
		return nil, err
	}

	sess := &store.ProblemSession{
		ProblemText:   p.Text,
		CorrectAnswer: p.Answer,
		Difficulty:    string(d),
		ProblemType:   string(t),
	}
	_, err = retry.Do(ctx, s.cfg.WriteRetry, func(ctx context.Context) (struct{}, error) {
		cerr := s.store.Sessions().Create(ctx, sess)
		// A retried insert that already landed conflicts with its own
		// id; that means the write succeeded.
		if store.IsDuplicate(cerr) {
			cerr = nil
		}
		return struct{}{}, cerr
	})
	if err != nil {
		return nil, err
	}

	// A session create retried across a transient failure may hit the
	// solution's unique key on the second pass; the resolver absorbs it.
	_, err = retry.Do(ctx, s.cfg.WriteRetry, func(ctx context.Context) (*store.Solution, error) {
		return s.store.Solutions().CreateOrReuse(ctx, sess.ID, p.Steps)
	})
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		SessionID:   sess.ID,
		ProblemText: sess.ProblemText,
		Difficulty:  sess.Difficulty,
		ProblemType: sess.ProblemType,
	}, nil
}
