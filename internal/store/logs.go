package store

import (
	"context"

	"github.com/abhisek/mathquest/internal/llm"
	"gorm.io/gorm"
)

// RequestLogRepo persists generation audit rows. Implements
// llm.RequestLogger.
type RequestLogRepo struct {
	db *gorm.DB
}

// LogRequest records one generation call.
func (r *RequestLogRepo) LogRequest(ctx context.Context, entry llm.RequestLogEntry) error {
	return r.db.WithContext(ctx).Create(&RequestLog{
		Provider:     entry.Provider,
		Model:        entry.Model,
		Purpose:      entry.Purpose,
		LatencyMs:    entry.LatencyMs,
		Success:      entry.Success,
		ErrorMessage: entry.ErrorMessage,
		InputTokens:  entry.InputTokens,
		OutputTokens: entry.OutputTokens,
	}).Error
}
