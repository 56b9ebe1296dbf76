// Package model defines the normalized request/response contract between the
// orchestration layer and tool-calling-capable language models, plus a mock
// implementation for tests. Provider adapters live in the subpackages
// model/openai and model/anthropic.
package model
