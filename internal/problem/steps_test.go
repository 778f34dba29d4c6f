package problem

import (
	"strings"
	"testing"
)

func workingSteps(n int) []string {
	steps := make([]string, n)
	for i := range steps {
		steps[i] = "Add the next number to the running total."
	}
	return steps
}

func TestValidateSteps_Accepts(t *testing.T) {
	steps := append(workingSteps(3), "Final answer: 15")
	got, answer, err := ValidateSteps(steps, nil, DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != 15 {
		t.Fatalf("answer = %v, want 15", answer)
	}
	if got[len(got)-1] != "Final answer: 15" {
		t.Fatalf("final step = %q", got[len(got)-1])
	}
}

func TestValidateSteps_RejectsBadFinalGrammar(t *testing.T) {
	bad := []string{
		"Final answer: 15 apples",
		"The final answer is 15",
		"Final answer: 15.",
		"final answer: 15",
	}
	for _, last := range bad {
		steps := append(workingSteps(3), last)
		if _, _, err := ValidateSteps(steps, nil, DifficultyMedium); err == nil {
			t.Errorf("final step %q accepted without a fallback answer", last)
		}
	}
}

func TestValidateSteps_RepairsNonCanonicalNumber(t *testing.T) {
	steps := append(workingSteps(3), "Final answer: 15.5")
	got, answer, err := ValidateSteps(steps, nil, DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != 15.5 {
		t.Fatalf("answer = %v, want 15.5", answer)
	}
	if got[len(got)-1] != "Final answer: 15.50" {
		t.Fatalf("final step not repaired: %q", got[len(got)-1])
	}
}

func TestValidateSteps_FinalStepWinsOverField(t *testing.T) {
	field := 99.0
	steps := append(workingSteps(3), "Final answer: 15")
	_, answer, err := ValidateSteps(steps, &field, DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != 15 {
		t.Fatalf("final step should take precedence, got %v", answer)
	}
}

func TestValidateSteps_FallsBackToField(t *testing.T) {
	field := 42.0
	steps := append(workingSteps(3), "So the total works out nicely.")
	got, answer, err := ValidateSteps(steps, &field, DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != 42 {
		t.Fatalf("answer = %v, want 42", answer)
	}
	if got[len(got)-1] != "Final answer: 42" {
		t.Fatalf("canonical final step not appended: %q", got[len(got)-1])
	}
}

func TestValidateSteps_RejectsWhenBothMissing(t *testing.T) {
	steps := append(workingSteps(3), "And that is how it goes.")
	if _, _, err := ValidateSteps(steps, nil, DifficultyMedium); err == nil {
		t.Fatal("expected rejection when final step and field are both absent")
	}
}

func TestValidateSteps_SingleWorkingStep(t *testing.T) {
	// One-operation problems resolve in one working line plus the final
	// step; easy accepts that, the higher tiers still demand more work.
	steps := []string{"Step 1: add 8 and 7 to get 15.", "Final answer: 15"}

	got, answer, err := ValidateSteps(steps, nil, DifficultyEasy)
	if err != nil {
		t.Fatalf("easy should accept a two-entry sequence: %v", err)
	}
	if answer != 15 || len(got) != 2 {
		t.Fatalf("got %v (answer %v)", got, answer)
	}

	if _, _, err := ValidateSteps(steps, nil, DifficultyMedium); err == nil {
		t.Error("medium should reject a single working step")
	}
	if _, _, err := ValidateSteps(steps, nil, DifficultyHard); err == nil {
		t.Error("hard should reject a single working step")
	}
}

func TestValidateSteps_CountBounds(t *testing.T) {
	if _, _, err := ValidateSteps([]string{"Final answer: 1"}, nil, DifficultyEasy); err == nil {
		t.Error("single-entry sequence accepted")
	}
	if _, _, err := ValidateSteps([]string{}, nil, DifficultyEasy); err == nil {
		t.Error("empty sequence accepted")
	}

	long := append(workingSteps(19), "Final answer: 1")
	if _, _, err := ValidateSteps(long, nil, DifficultyHard); err == nil {
		t.Error("20-entry sequence accepted")
	}
}

func TestValidateSteps_DifficultySubRanges(t *testing.T) {
	// 7 working steps is fine for hard, too many for easy.
	steps := append(workingSteps(7), "Final answer: 8")
	if _, _, err := ValidateSteps(steps, nil, DifficultyHard); err != nil {
		t.Errorf("hard should allow 7 working steps: %v", err)
	}
	if _, _, err := ValidateSteps(steps, nil, DifficultyEasy); err == nil {
		t.Error("easy should reject 7 working steps")
	}
}

func TestValidateSteps_CleansBlanksAndTruncates(t *testing.T) {
	steps := []string{
		"First, add the tens.",
		"   ",
		strings.Repeat("x", 1000),
		"Then add the ones.",
		"Final answer: 21",
	}
	got, _, err := ValidateSteps(steps, nil, DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("blank step survived: %d entries", len(got))
	}
	for _, s := range got {
		if len(s) > maxStepLen {
			t.Fatalf("step not truncated: %d chars", len(s))
		}
	}
}
