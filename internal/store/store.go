// Package store owns all persistence. The datastore is the only shared
// mutable resource in the system: correctness under concurrent requests
// comes from its unique constraints plus the insert-or-reuse resolvers
// here, never from application-level locking.
package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config selects the database backend.
type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver string

	// DSN is the connection string (postgres) or file path (sqlite).
	DSN string
}

// Store holds the gorm handle and hands out repositories.
type Store struct {
	db *gorm.DB
}

// Open connects, configures error translation, and auto-migrates the
// schema. TranslateError is what turns driver-specific unique-violation
// errors into gorm.ErrDuplicatedKey for the resolvers.
func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&ProblemSession{},
		&Submission{},
		&Hint{},
		&Solution{},
		&ScoreSummary{},
		&RequestLog{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Sessions returns the session repository.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{db: s.db} }

// Submissions returns the submission repository.
func (s *Store) Submissions() *SubmissionRepo { return &SubmissionRepo{db: s.db} }

// Hints returns the hint repository.
func (s *Store) Hints() *HintRepo { return &HintRepo{db: s.db} }

// Solutions returns the solution repository.
func (s *Store) Solutions() *SolutionRepo { return &SolutionRepo{db: s.db} }

// Scores returns the score repository.
func (s *Store) Scores() *ScoreRepo { return &ScoreRepo{db: s.db} }

// RequestLogs returns the request log repository.
func (s *Store) RequestLogs() *RequestLogRepo { return &RequestLogRepo{db: s.db} }

// IsDuplicate reports whether err is a unique-constraint violation,
// using the translated error kind rather than message text.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
