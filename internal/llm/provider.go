package llm

import (
	"context"
	"encoding/json"
)

// Provider is the generation-service boundary. A single Generate call sends
// one prompt and returns the model's completion; there is no retry layer.
type Provider interface {
	// Generate sends the request and returns the completion. When the
	// request carries a Schema the provider asks for structured output and
	// validates the returned JSON before handing it back.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Quiz generation sends one user message.
	Messages []Message

	// Schema, when set, requests JSON output conforming to it.
	// When nil the completion is free text.
	Schema *Schema

	// MaxTokens caps the completion length. Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
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

// UserPrompt builds a single-turn request from a user prompt.
func UserPrompt(prompt string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: prompt}}}
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name for
	// OpenAI). Kebab-case.
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Text is the completion exactly as returned. For schema requests it is
	// the validated JSON document.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// JSON returns the completion as raw JSON.
func (r *Response) JSON() json.RawMessage {
	return json.RawMessage(r.Text)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
