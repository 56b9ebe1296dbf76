package core

import "encoding/json"

// Conversation roles. Plain strings keep the message model trivially
// serializable and provider-agnostic.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a model-issued request to invoke a named tool. Arguments carry
// the raw, not-yet-validated payload exactly as the provider returned it; some
// providers emit an object, others a JSON-encoded string, so normalization is
// deferred to the dispatcher.
type ToolCall struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Message is one element of the conversation history sent to a model.
// ToolName and ToolCallID are set only for tool-role results; ToolCalls only
// for assistant messages requesting invocations.
type Message struct {
	Role       string     `json:"role"`
	Text       string     `json:"content,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// SystemMessage builds a system-role message.
func SystemMessage(text string) Message { return Message{Role: RoleSystem, Text: text} }

// UserMessage builds a user-role message.
func UserMessage(text string) Message { return Message{Role: RoleUser, Text: text} }

// AssistantMessage builds a plain assistant text message.
func AssistantMessage(text string) Message { return Message{Role: RoleAssistant, Text: text} }

// ToolMessage builds a tool-role result message tagged with the tool name and
// the originating call ID.
func ToolMessage(name, callID, content string) Message {
	return Message{Role: RoleTool, Text: content, ToolName: name, ToolCallID: callID}
}

// HasToolCalls reports whether the message requests any tool invocations.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }
