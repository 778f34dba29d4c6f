package problem

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/retry"
)

const (
	maxProblemTextLen = 500
	maxHintLen        = 400
)

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for one generation call.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// Retry bounds each generation call against transient provider
	// failures; a per-attempt timeout abandons slow calls.
	Retry retry.Policy

	// MaxRegenerations is how many times structurally invalid content is
	// regenerated (a fresh call, never a re-parse of the same output)
	// before the failure surfaces.
	MaxRegenerations int
}

// DefaultConfig returns the recommended generator configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
		Retry: retry.Policy{
			MaxAttempts: 3,
			BaseDelay:   500 * time.Millisecond,
			Timeout:     30 * time.Second,
		},
		MaxRegenerations: 2,
	}
}

// Generator produces problems, hints, and worked solutions through an
// LLM provider. All output passes extraction, schema validation, and the
// step-sequence rules before it is returned.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// problemOutput is the raw generated payload before validation.
type problemOutput struct {
	ProblemText string   `json:"problem_text"`
	FinalAnswer *float64 `json:"final_answer"`
	Steps       []string `json:"steps"`
}

// Problem generates one word problem with its worked solution.
func (g *Generator) Problem(ctx context.Context, d Difficulty, t Type) (*Problem, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen")

	req := llm.Request{
		System:      problemSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildProblemPrompt(d, t)}},
		Schema:      ProblemSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt <= g.cfg.MaxRegenerations; attempt++ {
		resp, err := g.generate(ctx, req)
		if err != nil {
			return nil, err
		}

		p, perr := parseProblem(resp.Text, d)
		if perr == nil {
			return p, nil
		}
		// Invalid content is never re-parsed; regenerate from scratch.
		lastErr = perr
	}

	return nil, lastErr
}

// Hint generates one hint for an existing problem. prior holds hints
// already issued so the model does not repeat itself; userAnswer, when
// non-empty, is the student's latest incorrect attempt.
func (g *Generator) Hint(ctx context.Context, problemText string, prior []string, hintNumber int, userAnswer string) (string, error) {
	ctx = llm.WithPurpose(ctx, "hint-gen")

	req := llm.Request{
		System:      hintSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildHintPrompt(problemText, prior, hintNumber, userAnswer)}},
		MaxTokens:   256,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.generate(ctx, req)
	if err != nil {
		return "", err
	}

	hint := strings.TrimSpace(resp.Text)
	if hint == "" {
		return "", &llm.ErrInvalidContent{Raw: resp.Text, Err: fmt.Errorf("empty hint")}
	}
	if len(hint) > maxHintLen {
		hint = hint[:maxHintLen]
	}
	return hint, nil
}

// Solution regenerates the worked solution for an existing problem whose
// answer is already known. Used when a session predates its solution row.
func (g *Generator) Solution(ctx context.Context, problemText string, answer float64, d Difficulty) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "solution-gen")

	req := llm.Request{
		System:      problemSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildSolutionPrompt(problemText, answer, d)}},
		Schema:      SolutionSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt <= g.cfg.MaxRegenerations; attempt++ {
		resp, err := g.generate(ctx, req)
		if err != nil {
			return nil, err
		}

		steps, serr := parseSolution(resp.Text, answer, d)
		if serr == nil {
			return steps, nil
		}
		lastErr = serr
	}

	return nil, lastErr
}

// generate runs one provider call under the configured retry policy.
func (g *Generator) generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return retry.Do(ctx, g.cfg.Retry, func(ctx context.Context) (*llm.Response, error) {
		return g.provider.Generate(ctx, req)
	})
}

// parseProblem runs the full recovery pipeline on raw model output.
func parseProblem(raw string, d Difficulty) (*Problem, error) {
	doc, err := llm.ParseStrict(llm.ExtractJSON(raw), raw)
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateSchema(ProblemSchema, doc); err != nil {
		return nil, err
	}

	var out problemOutput
	if err := json.Unmarshal(doc, &out); err != nil {
		return nil, &llm.ErrInvalidContent{Raw: raw, Err: err}
	}

	text := strings.TrimSpace(out.ProblemText)
	if text == "" {
		return nil, &llm.ErrInvalidContent{Raw: raw, Err: &ValidationError{Check: "problem-text", Message: "empty problem_text"}}
	}
	if len(text) > maxProblemTextLen {
		return nil, &llm.ErrInvalidContent{Raw: raw, Err: &ValidationError{Check: "problem-text", Message: "problem_text too long"}}
	}

	steps, answer, verr := ValidateSteps(out.Steps, out.FinalAnswer, d)
	if verr != nil {
		return nil, &llm.ErrInvalidContent{Raw: raw, Err: verr}
	}

	return &Problem{
		Text:       text,
		Answer:     answer,
		AnswerText: FormatAnswer(answer),
		Steps:      steps,
	}, nil
}

// parseSolution recovers a steps array for a problem with a known answer.
func parseSolution(raw string, answer float64, d Difficulty) ([]string, error) {
	doc, err := llm.ParseStrict(llm.ExtractJSON(raw), raw)
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateSchema(SolutionSchema, doc); err != nil {
		return nil, err
	}

	var out struct {
		Steps []string `json:"steps"`
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return nil, &llm.ErrInvalidContent{Raw: raw, Err: err}
	}

	steps, resolved, verr := ValidateSteps(out.Steps, &answer, d)
	if verr != nil {
		return nil, &llm.ErrInvalidContent{Raw: raw, Err: verr}
	}
	if FormatAnswer(resolved) != FormatAnswer(answer) {
		return nil, &llm.ErrInvalidContent{
			Raw: raw,
			Err: &ValidationError{Check: "final-answer", Message: "steps disagree with the known answer"},
		}
	}
	return steps, nil
}
