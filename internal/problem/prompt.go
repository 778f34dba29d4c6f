package problem

import (
	"fmt"
	"strings"
)

const problemSystemPrompt = `You are a math teacher writing word problems for students.

Rules:
- Write a single self-contained word problem in plain ASCII text. No LaTeX, no Unicode math symbols.
- The problem must have exactly one numeric answer.
- Integer answers are preferred; when the answer is not an integer, it must round cleanly to two decimal places.
- Provide the worked solution as an ordered list of short steps.
- The last step must be exactly "Final answer: <number>" with nothing after the number.
- Keep every step to one or two sentences.
- Respond with JSON only.`

const hintSystemPrompt = `You are a patient math tutor. A student is stuck on a word problem and asked for a hint.

Rules:
- Give one short hint that nudges the student toward the next step.
- Never state the final answer.
- Do not repeat a hint the student has already received.
- Reply with the hint text alone: no JSON, no markdown, no preamble.`

// difficultyGuides describes the number ranges and step budget per tier.
var difficultyGuides = map[Difficulty]string{
	DifficultyEasy:   "Use small numbers (1-20). One operation. 1-4 solution steps before the final answer.",
	DifficultyMedium: "Use numbers up to 100. One or two operations. 3-6 solution steps before the final answer.",
	DifficultyHard:   "Use numbers up to 1000, decimals allowed. Multiple operations. 4-9 solution steps before the final answer.",
}

var typeGuides = map[Type]string{
	TypeAddition:       "The problem must be solved with addition.",
	TypeSubtraction:    "The problem must be solved with subtraction.",
	TypeMultiplication: "The problem must be solved with multiplication.",
	TypeDivision:       "The problem must be solved with division. The quantities must divide cleanly or give a two-decimal result.",
	TypeMixed:          "Combine at least two different operations.",
}

// buildProblemPrompt constructs the user message for problem generation.
func buildProblemPrompt(d Difficulty, t Type) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty: %s\n", d)
	fmt.Fprintf(&b, "Operation: %s\n\n", t)
	b.WriteString(difficultyGuides[d])
	b.WriteString("\n")
	b.WriteString(typeGuides[t])
	b.WriteString("\n\nReturn JSON with fields: problem_text (string), final_answer (number), steps (array of strings ending with the final-answer line).")

	return b.String()
}

// buildHintPrompt constructs the user message for hint generation.
func buildHintPrompt(problemText string, prior []string, hintNumber int, userAnswer string) string {
	var b strings.Builder

	b.WriteString("Problem:\n")
	b.WriteString(problemText)
	fmt.Fprintf(&b, "\n\nThis is hint number %d for this student.\n", hintNumber)

	if len(prior) > 0 {
		b.WriteString("\nHints already given:\n")
		for i, h := range prior {
			fmt.Fprintf(&b, "%d. %s\n", i+1, h)
		}
	}

	if userAnswer != "" {
		fmt.Fprintf(&b, "\nThe student's latest (incorrect) answer was: %s\n", userAnswer)
	}

	return b.String()
}

// buildSolutionPrompt constructs the user message for regenerating a
// worked solution for an existing problem.
func buildSolutionPrompt(problemText string, answer float64, d Difficulty) string {
	var b strings.Builder

	b.WriteString("Problem:\n")
	b.WriteString(problemText)
	fmt.Fprintf(&b, "\n\nThe correct answer is %s.\n", FormatAnswer(answer))
	fmt.Fprintf(&b, "Difficulty: %s\n", d)
	b.WriteString(difficultyGuides[d])
	b.WriteString("\n\nReturn JSON with a single field: steps (array of strings ending with the final-answer line).")

	return b.String()
}
