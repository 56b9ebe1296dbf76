// Package tool implements the function-calling subsystem: the Tool interface,
// the registry of callable tools with their schemas, the dispatcher that
// normalizes untrusted model-produced arguments, and the schedule mutation
// tools themselves.
//
// Every tool returns a JSON-serializable object (never a scalar or nil); the
// dispatcher enforces this contract and converts every failure mode into a
// structured error object so a misbehaving call can never terminate the
// conversation loop.
package tool

import (
	"fmt"

	"github.com/hupe1980/agendamesh/internal/util"
)

// Result is the object every tool yields. Keys and shapes are part of the
// model-facing contract: the model narrates from them, so they stay stable.
type Result = map[string]any

// Tool defines a named, schema-described capability the language model may
// request to be invoked on its behalf.
//
// Implementations should provide clear names and descriptions (they guide the
// model), define a proper JSON schema for parameters, and handle bad input
// gracefully: argument problems are reported inside the Result, reserving the
// error return for collaborator faults that must fail the turn.
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case).
	Name() string

	// Description returns the model-facing description of what the tool does.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool against the turn's working set with normalized
	// arguments. The returned Result is always a non-nil object.
	Call(tc *Context, args map[string]any) (Result, error)
}

// ValidationError re-exports the shared argument validation error type.
type ValidationError = util.ValidationError

// ToolError represents a failure during tool execution with a categorization
// code for downstream handling.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error codes used by the dispatcher and tools.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
)

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

// errorResult is the uniform shape for model-facing structured errors.
func errorResult(format string, args ...any) Result {
	return Result{"error": fmt.Sprintf(format, args...)}
}
