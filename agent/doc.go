// Package agent implements the tool-calling conversation loop for the
// schedule assistant.
//
// The Orchestrator drives a single user turn: it seeds the conversation with
// the system prompt, calls the language model, dispatches any requested tool
// calls against the working schedule, and feeds the results back until the
// model produces a plain-text answer. That answer is then checked by a
// second-pass Validator before it is returned to the caller.
package agent
