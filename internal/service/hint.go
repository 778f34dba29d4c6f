package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathquest/internal/retry"
	"github.com/abhisek/mathquest/internal/score"
	"github.com/abhisek/mathquest/internal/store"
)

// HintResult is the payload for an issued hint.
type HintResult struct {
	HintID           string `json:"hint_id"`
	HintText         string `json:"hint_text"`
	HintCount        int    `json:"hint_count"`
	MaxHints         int    `json:"max_hints"`
	DeductionApplied int    `json:"deduction_applied"`
	Score            *Score `json:"score"`
}

// RequestHint issues the next hint for a session, generating it from the
// problem and the hints already given. userAnswer, when non-empty, is
// the student's latest wrong attempt and steers the hint.
func (s *Service) RequestHint(ctx context.Context, clientID, sessionID, userAnswer string) (*HintResult, error) {
	// The session, the hint count, and the hint history have no ordering
	// dependency; fetch them together.
	var (
		sess  *store.ProblemSession
		count int
		prior []store.Hint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sess, err = s.getSession(gctx, sessionID)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = retry.Do(gctx, s.cfg.ReadRetry, func(ctx context.Context) (int, error) {
			return s.store.Hints().CountForSession(ctx, sessionID)
		})
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = retry.Do(gctx, s.cfg.ReadRetry, func(ctx context.Context) ([]store.Hint, error) {
			return s.store.Hints().ForSession(ctx, sessionID)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if count >= score.MaxHints {
		return nil, ErrMaxHints
	}
	hintNumber := count + 1

	priorTexts := make([]string, len(prior))
	for i, h := range prior {
		priorTexts[i] = h.HintText
	}

	text, err := s.gen.Hint(ctx, sess.ProblemText, priorTexts, hintNumber, userAnswer)
	if err != nil {
		return nil, err
	}

	hint := &store.Hint{SessionID: sessionID, HintText: text}
	_, err = retry.Do(ctx, s.cfg.WriteRetry, func(ctx context.Context) (struct{}, error) {
		cerr := s.store.Hints().Create(ctx, hint)
		if store.IsDuplicate(cerr) {
			cerr = nil
		}
		return struct{}{}, cerr
	})
	if err != nil {
		return nil, err
	}

	sc, err := s.applyScoreEvent(ctx, clientID, score.HintEvent(hintNumber))
	if err != nil {
		return nil, err
	}

	return &HintResult{
		HintID:           hint.ID,
		HintText:         text,
		HintCount:        hintNumber,
		MaxHints:         score.MaxHints,
		DeductionApplied: score.HintPenalty(hintNumber),
		Score:            sc,
	}, nil
}
