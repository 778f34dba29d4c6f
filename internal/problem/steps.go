package problem

import (
	"fmt"
	"regexp"
	"strings"
)

// finalStepRe matches the final-answer grammar: "Final answer: <number>"
// with no trailing words, units, or punctuation.
var finalStepRe = regexp.MustCompile(`^Final answer: (-?\d+(?:\.\d+)?)$`)

const (
	minTotalSteps = 2
	maxTotalSteps = 15
	maxStepLen    = 280
)

// stepBounds gives the allowed count of working steps (everything before
// the final line) per difficulty tier. The easy tier admits a single
// working step: one-operation problems legitimately resolve in one line.
var stepBounds = map[Difficulty]struct{ Min, Max int }{
	DifficultyEasy:   {1, 4},
	DifficultyMedium: {3, 6},
	DifficultyHard:   {4, 9},
}

// ValidationError describes why generated content failed a check.
type ValidationError struct {
	Check   string // short identifier, e.g. "steps", "final-answer"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("check %q: %s", e.Check, e.Message)
}

// ValidateSteps enforces the structural rules on a generated step
// sequence and resolves the authoritative answer.
//
// The number parsed from the final step takes precedence; a missing or
// malformed final step falls back to finalAnswer; with neither, the
// payload is rejected. When the final step's number is numerically valid
// but not canonically formatted, the step is rewritten rather than
// rejected, so the persisted record stays canonical while tolerating
// minor generation drift.
//
// Returns the canonicalized steps and the resolved answer.
func ValidateSteps(steps []string, finalAnswer *float64, d Difficulty) ([]string, float64, error) {
	bounds, ok := stepBounds[d]
	if !ok {
		return nil, 0, &ValidationError{Check: "steps", Message: fmt.Sprintf("unknown difficulty %q", d)}
	}

	cleaned := make([]string, 0, len(steps))
	for _, s := range steps {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		// Overlong steps are content-quality noise, not grounds for
		// rejection; truncate and move on.
		if len(s) > maxStepLen {
			s = s[:maxStepLen]
		}
		cleaned = append(cleaned, s)
	}
	if len(cleaned) == 0 {
		return nil, 0, &ValidationError{Check: "steps", Message: "no steps provided"}
	}

	var answer float64
	last := cleaned[len(cleaned)-1]
	if m := finalStepRe.FindStringSubmatch(last); m != nil {
		parsed, ok := ParseAnswer(m[1])
		if !ok {
			return nil, 0, &ValidationError{Check: "final-answer", Message: fmt.Sprintf("unparseable number %q", m[1])}
		}
		answer = parsed
		cleaned[len(cleaned)-1] = "Final answer: " + FormatAnswer(answer)
	} else if finalAnswer != nil {
		answer = *finalAnswer
		cleaned = append(cleaned, "Final answer: "+FormatAnswer(answer))
	} else {
		return nil, 0, &ValidationError{Check: "final-answer", Message: "final step malformed and no final_answer field supplied"}
	}

	total := len(cleaned)
	if total < minTotalSteps || total > maxTotalSteps {
		return nil, 0, &ValidationError{Check: "steps", Message: fmt.Sprintf("%d steps outside allowed range %d-%d", total, minTotalSteps, maxTotalSteps)}
	}
	working := total - 1
	if working < bounds.Min || working > bounds.Max {
		return nil, 0, &ValidationError{
			Check:   "steps",
			Message: fmt.Sprintf("%d working steps outside %q range %d-%d", working, d, bounds.Min, bounds.Max),
		}
	}

	return cleaned, answer, nil
}
