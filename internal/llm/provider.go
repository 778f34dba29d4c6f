package llm

import "context"

// Provider is the abstraction over a generative-language backend.
// Handlers never talk to an SDK directly; they build a Request, call
// Generate, and run the returned text through the extraction pipeline.
type Provider interface {
	// Generate sends a prompt to the backend and returns its raw output.
	// When the request carries a Schema, providers that support native
	// structured output enable it, but the returned Text is still treated
	// as untrusted: callers extract and validate it themselves.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Every call in this service is
	// single-turn, so this holds one user message.
	Messages []Message

	// Schema, when set, asks the provider for JSON shaped to this schema
	// via its native structured-output mechanism. The prompt carries the
	// shape instructions regardless, so providers may also ignore it.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means deterministic.
	Temperature float64
}

// Message is one entry in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response should conform to.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "word-problem".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response holds the backend's output.
type Response struct {
	// Text is the raw generated output. May be fenced, wrapped in prose,
	// or otherwise mangled; see ExtractJSON.
	Text string

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
