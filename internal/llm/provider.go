// Package llm is the tutor's gateway to hosted language models. Each
// backend adapts one SDK to Provider; retry and event logging wrap any
// of them.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a model.
type Provider interface {
	// Generate returns the answer to req. With req.Schema set the answer
	// is a JSON object already validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is a provider-neutral prompt.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema // nil for free-form text
	MaxTokens   int
	Temperature float64 // 0 leaves the backend default
}

// UserRequest builds a single-turn request.
func UserRequest(system, question string) Request {
	return Request{System: system, Messages: []Message{{Role: RoleUser, Content: question}}}
}

// Schema is a named JSON Schema document. Name doubles as the schema
// name sent to backends with native structured output and as the key
// of the compiled-schema cache, so it must be unique per definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Response is a model answer. Content is a JSON object for structured
// requests and a JSON string literal for free-form ones; Text unwraps
// the latter.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // StopEnd, StopMaxTokens or StopFiltered
}

// Text returns the answer as plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	if len(r.Content) > 0 && r.Content[0] == '"' {
		var s string
		if json.Unmarshal(r.Content, &s) == nil {
			return s
		}
	}
	return string(r.Content)
}
