package tool

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/internal/util"
)

// RawArgumentKey is where the dispatcher parks an argument payload it could
// not decode into an object, so the failure is explicable to the model
// instead of crashing the call.
const RawArgumentKey = "_raw"

// NormalizeArguments converts the raw, provider-dependent argument payload of
// a tool call into an argument object. Providers variously emit a JSON
// object, a JSON-encoded string containing an object, or garbage; each case
// is handled explicitly:
//
//	object            -> decoded map
//	string of object  -> inner decode
//	anything else     -> {"_raw": <original text>}
func NormalizeArguments(raw json.RawMessage) map[string]any {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return map[string]any{}
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &obj); err == nil {
			return obj
		}
		return map[string]any{RawArgumentKey: inner}
	}

	return map[string]any{RawArgumentKey: trimmed}
}

// Dispatch resolves and executes one model-requested tool call against the
// turn's working set and always produces a Result: unknown tools, argument
// mismatches, tool faults and even panics become structured error objects
// fed back to the model, which decides how to recover. Nothing raised here
// may terminate the conversation loop.
func Dispatch(tc *Context, registry *Registry, call core.ToolCall) (result Result) {
	logger := tc.Logger()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("tool.dispatch.panic", "tool", call.Name, "recover", r)
			result = errorResult("Failed calling tool %s: internal error", call.Name)
		}
	}()

	impl, ok := registry.Get(call.Name)
	if !ok {
		logger.Warn("tool.dispatch.unknown", "tool", call.Name)
		return errorResult("Unknown tool: %s", call.Name)
	}

	args := NormalizeArguments(call.Arguments)
	if err := util.ValidateParameters(args, impl.Parameters()); err != nil {
		logger.Warn("tool.dispatch.validation_failed", "tool", call.Name, "error", err.Error())
		return errorResult("Failed calling tool %s: %v", call.Name, err)
	}

	out, err := impl.Call(tc, args)
	if err != nil {
		logger.Error("tool.call.error", "tool", call.Name, "error", err.Error())
		return errorResult("Failed calling tool %s: %v", call.Name, err)
	}
	if out == nil {
		// Tools must return an object; guard the hard contract.
		logger.Error("tool.call.nil_result", "tool", call.Name)
		return errorResult("Tool %s returned no result", call.Name)
	}

	logger.Info("tool.call.success",
		"tool", call.Name,
		"fc_id", tc.CallID(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out
}
