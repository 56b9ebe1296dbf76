package agent

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/tidwall/gjson"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/logging"
	"github.com/hupe1980/agendamesh/model"
)

// Verdict is the outcome of a second-pass response check.
type Verdict struct {
	// Valid reports whether the answer may be shown to the user.
	Valid bool
	// Reasons carries the judge's short explanation. It is diagnostic only
	// and must never be surfaced to the user.
	Reasons string
	// FailOpen reports that the check could not be completed and the answer
	// was accepted without judgment.
	FailOpen bool
}

// Validator asks a model to judge whether a finished answer respects the
// system prompt. A broken or unreachable judge never blocks the user flow:
// every failure path accepts the answer and is counted.
type Validator struct {
	llm      model.Model
	logger   logging.Logger
	failOpen atomic.Int64
}

// NewValidator creates a validator backed by the given model.
func NewValidator(llm model.Model, logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Validator{llm: llm, logger: logger}
}

type judgePayload struct {
	SystemPrompt      string `json:"system_prompt"`
	UserPrompt        string `json:"user_prompt"`
	AssistantResponse string `json:"assistant_response"`
}

// Validate judges the assistant's final answer. The judge runs at
// temperature zero and must emit a JSON object with a boolean "valid" field;
// anything else fails open.
func (v *Validator) Validate(ctx context.Context, systemPrompt, userPrompt, answer string) Verdict {
	payload, err := json.Marshal(judgePayload{
		SystemPrompt:      systemPrompt,
		UserPrompt:        userPrompt,
		AssistantResponse: answer,
	})
	if err != nil {
		return v.acceptWithoutJudgment("encoding judge payload", err.Error())
	}

	resp, err := v.llm.Generate(ctx, model.Request{
		Messages: []core.Message{
			core.SystemMessage(judgeSystemPrompt),
			core.UserMessage(string(payload)),
		},
		Temperature: 0,
	})
	if err != nil {
		return v.acceptWithoutJudgment("judge call failed", err.Error())
	}

	text := resp.Message.Text
	if !gjson.Valid(text) {
		return v.acceptWithoutJudgment("judge output is not JSON", text)
	}

	valid := gjson.Get(text, "valid")
	if valid.Type != gjson.True && valid.Type != gjson.False {
		return v.acceptWithoutJudgment("judge output has no boolean valid flag", text)
	}

	return Verdict{
		Valid:   valid.Type == gjson.True,
		Reasons: gjson.Get(text, "reasons").String(),
	}
}

// FailOpenCount reports how often validation was skipped because the judge
// could not be consulted or produced unusable output.
func (v *Validator) FailOpenCount() int64 {
	return v.failOpen.Load()
}

func (v *Validator) acceptWithoutJudgment(reason, detail string) Verdict {
	v.failOpen.Add(1)
	v.logger.Warn("agent.validator.fail_open", "reason", reason, "detail", detail)
	return Verdict{Valid: true, Reasons: reason, FailOpen: true}
}
