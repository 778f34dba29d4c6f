package store

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ProblemSession is one generated problem and everything hanging off it.
type ProblemSession struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	ProblemText   string     `gorm:"not null" json:"problem_text"`
	CorrectAnswer float64    `gorm:"not null" json:"-"`
	Difficulty    string     `gorm:"not null;index" json:"difficulty"`
	ProblemType   string     `gorm:"not null" json:"problem_type"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	RevealedAt    *time.Time `json:"revealed_at"`

	Submissions []Submission `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
	Hints       []Hint       `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	Solution    *Solution    `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

// Submission is one graded answer for a session. The partial unique
// index lets the database enforce at most one correct submission per
// session, so concurrent duplicates collapse to a single winner.
type Submission struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	SessionID    string    `gorm:"not null;index;uniqueIndex:ux_submissions_one_correct,where:is_correct = true" json:"session_id"`
	UserAnswer   float64   `gorm:"not null" json:"user_answer"`
	IsCorrect    bool      `gorm:"not null" json:"is_correct"`
	FeedbackText string    `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
}

// Hint is one issued hint. Append-only, capped at five per session by
// the service layer.
type Hint struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"not null;index" json:"session_id"`
	HintText  string    `gorm:"not null" json:"hint_text"`
	CreatedAt time.Time `json:"created_at"`
}

// Solution holds the worked steps for a session. One per session.
type Solution struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	SessionID string         `gorm:"not null;uniqueIndex" json:"session_id"`
	Steps     datatypes.JSON `gorm:"not null" json:"steps"`
	CreatedAt time.Time      `json:"created_at"`
}

// StepList decodes the stored steps.
func (s *Solution) StepList() ([]string, error) {
	var steps []string
	if err := json.Unmarshal(s.Steps, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// SetStepList encodes steps into the JSON column.
func (s *Solution) SetStepList(steps []string) error {
	b, err := json.Marshal(steps)
	if err != nil {
		return err
	}
	s.Steps = datatypes.JSON(b)
	return nil
}

// ScoreSummary is the per-client aggregate, upserted on every scoring
// event. ClientID is the opaque cookie identity.
type ScoreSummary struct {
	ClientID      string    `gorm:"primaryKey" json:"-"`
	TotalAttempts int       `gorm:"not null" json:"total_attempts"`
	CorrectCount  int       `gorm:"not null" json:"correct_count"`
	CurrentStreak int       `gorm:"not null" json:"current_streak"`
	BestStreak    int       `gorm:"not null" json:"best_streak"`
	Points        int       `gorm:"not null" json:"points"`
	LastUpdated   time.Time `json:"last_updated"`
}

// RequestLog is the operational audit row for one generation call.
// Never exposed through the API.
type RequestLog struct {
	ID           uint      `gorm:"primaryKey"`
	Provider     string    `gorm:"not null"`
	Model        string    `gorm:"not null"`
	Purpose      string    `gorm:"index"`
	LatencyMs    int64     `gorm:"not null"`
	Success      bool      `gorm:"not null"`
	ErrorMessage string
	InputTokens  int
	OutputTokens int
	CreatedAt    time.Time
}
