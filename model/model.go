package model

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hupe1980/agendamesh/core"
)

// ToolDefinition declaratively exposes a callable function to the model.
// Unified across vendors so downstream logic does not need per-provider
// branching.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a JSON Schema object (minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input for one generation call: the
// full ordered conversation, the callable tool schemas and the sampling
// temperature chosen by the caller (the judge runs at zero).
type Request struct {
	Messages    []core.Message   `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	Temperature float64          `json:"temperature"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the model's answer to a Request: either prose, one or more
// requested tool calls, or both.
type Response struct {
	Message      core.Message `json:"message"`
	FinishReason string       `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface the orchestrator needs to drive generation.
// Generate is a synchronous round trip; a transport failure is returned as an
// error and is treated by callers as a hard failure of the whole turn.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests. Responses are
// scripted in order; every received Request is recorded for assertions.
type MockModel struct {
	info     Info
	script   []Response
	Requests []Request
}

// NewMockModel constructs a MockModel with tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{Name: name, Provider: "mock", SupportsTools: true},
	}
}

// EnqueueText scripts a plain assistant answer.
func (m *MockModel) EnqueueText(text string) {
	m.script = append(m.script, Response{
		Message:      core.AssistantMessage(text),
		FinishReason: "stop",
	})
}

// EnqueueToolCalls scripts an assistant turn requesting the given tool calls.
// Calls without an ID get a generated one, matching provider behavior.
func (m *MockModel) EnqueueToolCalls(calls ...core.ToolCall) {
	for i := range calls {
		if calls[i].ID == "" {
			calls[i].ID = uuid.NewString()
		}
	}
	m.script = append(m.script, Response{
		Message:      core.Message{Role: core.RoleAssistant, ToolCalls: calls},
		FinishReason: "tool_calls",
	})
}

// EnqueueResponse scripts an arbitrary response.
func (m *MockModel) EnqueueResponse(resp Response) {
	m.script = append(m.script, resp)
}

// Generate implements Model by replaying the scripted responses in order.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.Requests = append(m.Requests, req)
	if len(m.script) == 0 {
		return nil, fmt.Errorf("mock model: no scripted response left")
	}
	resp := m.script[0]
	m.script = m.script[1:]
	return &resp, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

// Call is a convenience for scripting tool calls with JSON object arguments.
func Call(name string, args map[string]any) core.ToolCall {
	raw, _ := json.Marshal(args)
	return core.ToolCall{ID: uuid.NewString(), Name: name, Arguments: raw}
}
