package problem

import "strings"

// Difficulty is the requested difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty value case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

// Type is the kind of arithmetic the problem exercises.
type Type string

const (
	TypeAddition       Type = "addition"
	TypeSubtraction    Type = "subtraction"
	TypeMultiplication Type = "multiplication"
	TypeDivision       Type = "division"
	TypeMixed          Type = "mixed"
)

// ParseType parses a problem type case-insensitively.
func ParseType(s string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeAddition:
		return TypeAddition, true
	case TypeSubtraction:
		return TypeSubtraction, true
	case TypeMultiplication:
		return TypeMultiplication, true
	case TypeDivision:
		return TypeDivision, true
	case TypeMixed:
		return TypeMixed, true
	}
	return "", false
}

// Problem is a generated word problem ready for persistence.
type Problem struct {
	// Text is the word problem shown to the student.
	Text string

	// Answer is the correct numeric answer.
	Answer float64

	// AnswerText is Answer rendered through the canonical format.
	AnswerText string

	// Steps is the worked solution. The last entry always matches the
	// final-answer grammar with the canonically formatted number.
	Steps []string
}
