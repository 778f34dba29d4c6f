// Package score computes aggregate score state transitions. Everything
// here is pure: the caller reads prior state, applies an event, and
// writes the result back as a single upsert keyed by client id.
package score

import "math"

// Point deltas for submission outcomes.
const (
	CorrectPoints    = 10
	IncorrectPenalty = 2
)

// MaxHints is the per-session hint budget.
const MaxHints = 5

// hintPenalties is the deduction schedule for the nth hint (1-indexed).
// The first hint is free.
var hintPenalties = [MaxHints]int{0, 2, 3, 4, 5}

// State is the aggregate score for one anonymous client.
type State struct {
	TotalAttempts int
	CorrectCount  int
	CurrentStreak int
	BestStreak    int
	Points        int
}

// Event is a scoring event. Exactly one of the constructors below
// produces a valid Event.
type Event struct {
	kind       eventKind
	correct    bool
	hintNumber int
}

type eventKind int

const (
	eventSubmission eventKind = iota
	eventHint
)

// SubmissionEvent records a graded submission.
func SubmissionEvent(correct bool) Event {
	return Event{kind: eventSubmission, correct: correct}
}

// HintEvent records the nth hint (1-indexed) taken on a session.
func HintEvent(n int) Event {
	return Event{kind: eventHint, hintNumber: n}
}

// HintPenalty returns the point deduction for the nth hint (1-indexed).
// Out-of-range values cost the maximum scheduled penalty.
func HintPenalty(n int) int {
	if n < 1 {
		return 0
	}
	if n > MaxHints {
		return hintPenalties[MaxHints-1]
	}
	return hintPenalties[n-1]
}

// Apply computes the next state from prior and ev. A nil prior means the
// first-ever event for a client and behaves as all-zero state.
func Apply(prior *State, ev Event) State {
	var next State
	if prior != nil {
		next = *prior
	}

	switch ev.kind {
	case eventSubmission:
		next.TotalAttempts++
		if ev.correct {
			next.CorrectCount++
			next.CurrentStreak++
			if next.CurrentStreak > next.BestStreak {
				next.BestStreak = next.CurrentStreak
			}
			next.Points += CorrectPoints
		} else {
			next.CurrentStreak = 0
			next.Points -= IncorrectPenalty
		}
	case eventHint:
		next.Points -= HintPenalty(ev.hintNumber)
	}

	if next.Points < 0 {
		next.Points = 0
	}
	return next
}

// Accuracy derives the percentage of correct attempts, rounded to one
// decimal. Zero attempts yields zero.
func Accuracy(s State) float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	pct := float64(s.CorrectCount) * 100 / float64(s.TotalAttempts)
	return math.Round(pct*10) / 10
}
