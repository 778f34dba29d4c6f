package service

import (
	"context"
	"time"

	"github.com/abhisek/mathquest/internal/retry"
	"github.com/abhisek/mathquest/internal/store"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryEntry is one past session with its graded attempts.
type HistoryEntry struct {
	SessionID   string    `json:"session_id"`
	ProblemText string    `json:"problem_text"`
	Difficulty  string    `json:"difficulty"`
	ProblemType string    `json:"problem_type"`
	CreatedAt   time.Time `json:"created_at"`
	Solved      bool      `json:"solved"`
	Revealed    bool      `json:"revealed"`
	Attempts    []Attempt `json:"attempts"`
}

// Attempt is one graded submission within a history entry.
type Attempt struct {
	UserAnswer float64   `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryPage is a newest-first page of entries. NextBefore and
// NextBeforeID together form the compound cursor for the following
// page; both are zero on the last one.
type HistoryPage struct {
	Entries      []HistoryEntry `json:"entries"`
	NextBefore   *time.Time     `json:"next_before,omitempty"`
	NextBeforeID string         `json:"next_before_id,omitempty"`
}

// History returns past sessions newest-first. limit outside [1,100]
// falls back to the default page size; before/beforeID, when set,
// restrict to sessions strictly earlier in (created_at, id) order.
func (s *Service) History(ctx context.Context, limit int, before time.Time, beforeID string) (*HistoryPage, error) {
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	sessions, err := retry.Do(ctx, s.cfg.ReadRetry, func(ctx context.Context) ([]store.ProblemSession, error) {
		return s.store.Sessions().List(ctx, limit, before, beforeID)
	})
	if err != nil {
		return nil, err
	}

	page := &HistoryPage{Entries: make([]HistoryEntry, 0, len(sessions))}
	for _, sess := range sessions {
		entry := HistoryEntry{
			SessionID:   sess.ID,
			ProblemText: sess.ProblemText,
			Difficulty:  sess.Difficulty,
			ProblemType: sess.ProblemType,
			CreatedAt:   sess.CreatedAt,
			Revealed:    sess.RevealedAt != nil,
			Attempts:    make([]Attempt, 0, len(sess.Submissions)),
		}
		for _, sub := range sess.Submissions {
			if sub.IsCorrect {
				entry.Solved = true
			}
			entry.Attempts = append(entry.Attempts, Attempt{
				UserAnswer: sub.UserAnswer,
				IsCorrect:  sub.IsCorrect,
				CreatedAt:  sub.CreatedAt,
			})
		}
		page.Entries = append(page.Entries, entry)
	}

	if len(sessions) == limit {
		last := sessions[len(sessions)-1]
		at := last.CreatedAt
		page.NextBefore = &at
		page.NextBeforeID = last.ID
	}
	return page, nil
}

// ClearHistory removes every stored session and its dependents. Score
// summaries are kept; wiping history does not rewrite the ledger.
func (s *Service) ClearHistory(ctx context.Context) error {
	_, err := retry.Do(ctx, s.cfg.WriteRetry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Sessions().ClearAll(ctx)
	})
	return err
}
