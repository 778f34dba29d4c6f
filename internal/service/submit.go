package service

import (
	"context"
	"fmt"

	"github.com/abhisek/mathquest/internal/problem"
	"github.com/abhisek/mathquest/internal/retry"
	"github.com/abhisek/mathquest/internal/score"
	"github.com/abhisek/mathquest/internal/store"
)

// SubmitResult is the payload for a graded submission.
type SubmitResult struct {
	SubmissionID string `json:"submission_id"`
	IsCorrect    bool   `json:"is_correct"`
	Feedback     string `json:"feedback"`
	Score        *Score `json:"score"`
}

// SubmitAnswer grades an answer against the session and records it.
//
// Gating runs in a fixed order: the revealed check first, then the
// solved check. A revealed session rejects submissions regardless of
// prior solved state. The checks are read-then-act and therefore racy
// on their own; the partial unique index on correct submissions is what
// guarantees a single winner, and losing the race resolves to the
// winner's row rather than an error.
func (s *Service) SubmitAnswer(ctx context.Context, clientID, sessionID string, userAnswer float64) (*SubmitResult, error) {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.RevealedAt != nil {
		return nil, ErrSolutionRevealed
	}

	existing, err := retry.Do(ctx, s.cfg.ReadRetry, func(ctx context.Context) (*store.Submission, error) {
		return s.store.Submissions().CorrectForSession(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySolved
	}

	isCorrect := problem.FormatAnswer(userAnswer) == problem.FormatAnswer(sess.CorrectAnswer)
	feedback := feedbackFor(isCorrect, sess.CorrectAnswer)

	sub := &store.Submission{
		SessionID:    sessionID,
		UserAnswer:   userAnswer,
		IsCorrect:    isCorrect,
		FeedbackText: feedback,
	}

	if isCorrect {
		row, reused, rerr := s.store.Submissions().CreateCorrectOrReuse(ctx, sub)
		if rerr != nil {
			return nil, rerr
		}
		if reused {
			// Another request solved the session first (double-click).
			// Report the winner's submission without double-scoring.
			current, gerr := s.GetScore(ctx, clientID)
			if gerr != nil {
				return nil, gerr
			}
			return &SubmitResult{
				SubmissionID: row.ID,
				IsCorrect:    true,
				Feedback:     row.FeedbackText,
				Score:        current,
			}, nil
		}
		sub = row
	} else {
		_, err = retry.Do(ctx, s.cfg.WriteRetry, func(ctx context.Context) (struct{}, error) {
			cerr := s.store.Submissions().Create(ctx, sub)
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
	}

	sc, err := s.applyScoreEvent(ctx, clientID, score.SubmissionEvent(isCorrect))
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		SubmissionID: sub.ID,
		IsCorrect:    isCorrect,
		Feedback:     feedback,
		Score:        sc,
	}, nil
}

func (s *Service) getSession(ctx context.Context, sessionID string) (*store.ProblemSession, error) {
	sess, err := retry.Do(ctx, s.cfg.ReadRetry, func(ctx context.Context) (*store.ProblemSession, error) {
		sess, err := s.store.Sessions().Get(ctx, sessionID)
		if store.IsNotFound(err) {
			// Missing rows are a domain outcome, not a transient fault.
			return nil, nil
		}
		return sess, err
	})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func feedbackFor(correct bool, answer float64) string {
	if correct {
		return fmt.Sprintf("Correct! The answer is %s.", problem.FormatAnswer(answer))
	}
	return "Not quite. Check your work and try again."
}
