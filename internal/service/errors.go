package service

import "errors"

// Gating rejections. These are well-defined alternate outcomes with
// their own response shapes, not failures.
var (
	// ErrAlreadySolved means a correct submission already exists for the
	// session.
	ErrAlreadySolved = errors.New("session already solved")

	// ErrSolutionRevealed means the solution has been shown, so no
	// further submissions are accepted. Checked before ErrAlreadySolved,
	// always; a revealed session reports this even when also solved.
	ErrSolutionRevealed = errors.New("solution already revealed")

	// ErrMaxHints means the session's hint budget is exhausted.
	ErrMaxHints = errors.New("hint limit reached")
)

// ErrSessionNotFound means the referenced session does not exist.
var ErrSessionNotFound = errors.New("session not found")
