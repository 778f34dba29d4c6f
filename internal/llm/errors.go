package llm

import "fmt"

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrTimeout indicates a single generation attempt exceeded its time box.
type ErrTimeout struct {
	Err error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("generation timed out: %v", e.Err)
}

func (e *ErrTimeout) Unwrap() error { return e.Err }

// ErrInvalidContent indicates the model produced output that could not be
// recovered into the expected JSON shape. Raw carries the original text
// for operator diagnostics; it is never returned to end users.
type ErrInvalidContent struct {
	Raw string
	Err error
}

func (e *ErrInvalidContent) Error() string {
	return fmt.Sprintf("invalid generated content: %v", e.Err)
}

func (e *ErrInvalidContent) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
