package problem

import "github.com/abhisek/mathquest/internal/llm"

// ProblemSchema is the JSON Schema for a generated word problem.
var ProblemSchema = &llm.Schema{
	Name:        "word-problem",
	Description: "A math word problem with its numeric answer and worked solution steps",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"problem_text", "final_answer", "steps"},
		"properties": map[string]any{
			"problem_text": map[string]any{
				"type":        "string",
				"description": "The word problem shown to the student",
			},
			"final_answer": map[string]any{
				"type":        "number",
				"description": "The single correct numeric answer",
			},
			"steps": map[string]any{
				"type":        "array",
				"description": "Worked solution steps, last entry 'Final answer: <number>'",
				"items":       map[string]any{"type": "string"},
			},
		},
	},
}

// SolutionSchema is the JSON Schema for a regenerated worked solution.
var SolutionSchema = &llm.Schema{
	Name:        "worked-solution",
	Description: "Worked solution steps for an existing word problem",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"steps"},
		"properties": map[string]any{
			"steps": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	},
}
