package llm

import (
	"context"
	"log"
	"time"
)

// RequestLogEntry records one generation call for the operational audit
// trail. Raw response bodies stay here and in the log table only; they
// are never part of an API response.
type RequestLogEntry struct {
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	InputTokens  int
	OutputTokens int
}

// RequestLogger persists request log entries. Implemented by the store.
type RequestLogger interface {
	LogRequest(ctx context.Context, entry RequestLogEntry) error
}

// LoggingProvider is a decorator that records every generation call.
type LoggingProvider struct {
	inner  Provider
	logger RequestLogger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, logger RequestLogger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	entry := RequestLogEntry{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		entry.Model = resp.Model
		entry.InputTokens = resp.Usage.InputTokens
		entry.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	// Logging must never fail the generation path. Use a fresh context so
	// the entry is written even when the request context is already dead.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if logErr := l.logger.LogRequest(logCtx, entry); logErr != nil {
		log.Printf("llm: failed to log request: %v", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
