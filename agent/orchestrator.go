package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/logging"
	"github.com/hupe1980/agendamesh/model"
	"github.com/hupe1980/agendamesh/store"
	"github.com/hupe1980/agendamesh/tool"
)

// FailureResponse replaces the model's answer whenever a turn cannot produce
// a trustworthy response, such as when the round ceiling is hit or the
// second-pass check rejects the answer.
const FailureResponse = "Our system was unable to process your request, please contact support."

// ErrMaxRounds is returned together with the failure response when the model
// keeps requesting tools without ever producing a final answer.
var ErrMaxRounds = errors.New("agent: maximum model rounds exceeded")

// turnState tracks where the conversation loop currently is.
type turnState int

const (
	stateAwaitingModel turnState = iota
	stateDispatchingTools
	stateDone
)

// OrchestratorOptions configures an Orchestrator instance.
//
// Use functional options with NewOrchestrator to override defaults.
type OrchestratorOptions struct {
	// Temperature is passed through to the model on every round.
	Temperature float64
	// MaxRounds caps how often the model may be called within one user turn.
	MaxRounds int
	// ModelTimeout bounds each individual model call. Zero disables the bound.
	ModelTimeout time.Duration
	// PrincipalID scopes storage mutations to the acting user.
	PrincipalID int64
	// Now supplies the clock used to build the system prompt.
	Now func() time.Time
	// Logger receives per-round diagnostics.
	Logger logging.Logger
	// Validator overrides the default second-pass checker.
	Validator *Validator
}

// Orchestrator drives one user turn through the model and the tool set.
type Orchestrator struct {
	llm          model.Model
	registry     *tool.Registry
	entryStore   store.EntryStore
	validator    *Validator
	temperature  float64
	maxRounds    int
	modelTimeout time.Duration
	principalID  int64
	now          func() time.Time
	logger       logging.Logger
}

// Result is the outcome of a single user turn.
type Result struct {
	// Response is the text to show the user.
	Response string
	// Rounds is the number of model calls the turn consumed.
	Rounds int
	// Overridden reports whether the model's answer was replaced by
	// FailureResponse after the second-pass check rejected it.
	Overridden bool
}

// NewOrchestrator creates an orchestrator with sensible defaults: temperature
// 0.5, a ceiling of 10 model rounds per turn, a 60 second model timeout, and
// a validator backed by the same model.
func NewOrchestrator(llm model.Model, registry *tool.Registry, entryStore store.EntryStore, optFns ...func(o *OrchestratorOptions)) *Orchestrator {
	opts := OrchestratorOptions{
		Temperature:  0.5,
		MaxRounds:    10,
		ModelTimeout: 60 * time.Second,
		Now:          time.Now,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Validator == nil {
		opts.Validator = NewValidator(llm, opts.Logger)
	}

	return &Orchestrator{
		llm:          llm,
		registry:     registry,
		entryStore:   entryStore,
		validator:    opts.Validator,
		temperature:  opts.Temperature,
		maxRounds:    opts.MaxRounds,
		modelTimeout: opts.ModelTimeout,
		principalID:  opts.PrincipalID,
		now:          opts.Now,
		logger:       opts.Logger,
	}
}

// Run executes one user turn against the given working schedule. Tool calls
// mutate the schedule in place; the caller owns persistence of the session.
//
// A nil error with Result.Overridden set means the turn completed but the
// answer was rejected by the second-pass check. ErrMaxRounds is returned with
// a usable failure Result so callers can still show something to the user.
func (o *Orchestrator) Run(ctx context.Context, userPrompt string, schedule *core.Schedule) (*Result, error) {
	systemPrompt := buildSystemPrompt(o.now())
	history := []core.Message{
		core.SystemMessage(systemPrompt),
		core.UserMessage(userPrompt),
	}

	tc := tool.NewContext(ctx, schedule, o.entryStore, o.principalID, o.logger)

	rounds := 0
	state := stateAwaitingModel

	for state != stateDone {
		if rounds >= o.maxRounds {
			o.logger.Warn("agent.turn.max_rounds", "max_rounds", o.maxRounds)
			return &Result{Response: FailureResponse, Rounds: rounds, Overridden: true}, ErrMaxRounds
		}
		rounds++

		resp, err := o.generate(ctx, history)
		if err != nil {
			return nil, fmt.Errorf("model round %d: %w", rounds, err)
		}
		msg := resp.Message

		if msg.HasToolCalls() {
			state = stateDispatchingTools

			// Some providers omit call IDs; they are required to pair
			// results with requests in the transcript.
			for i := range msg.ToolCalls {
				if msg.ToolCalls[i].ID == "" {
					msg.ToolCalls[i].ID = uuid.New().String()
				}
			}
			history = append(history, msg)

			for _, call := range msg.ToolCalls {
				o.logger.Debug("agent.tool.dispatch", "tool", call.Name, "call_id", call.ID, "round", rounds)
				result := tool.Dispatch(tc.WithCallID(call.ID), o.registry, call)
				history = append(history, core.ToolMessage(call.Name, call.ID, marshalResult(call.Name, result)))
			}

			state = stateAwaitingModel
			continue
		}

		state = stateDone

		verdict := o.validator.Validate(ctx, systemPrompt, userPrompt, msg.Text)
		if !verdict.Valid {
			o.logger.Warn("agent.turn.rejected", "reasons", verdict.Reasons, "rounds", rounds)
			return &Result{Response: FailureResponse, Rounds: rounds, Overridden: true}, nil
		}

		return &Result{Response: msg.Text, Rounds: rounds}, nil
	}

	// Unreachable; the loop exits through a return above.
	return nil, errors.New("agent: turn ended in an unexpected state")
}

// generate performs one bounded model call with the current transcript.
func (o *Orchestrator) generate(ctx context.Context, history []core.Message) (*model.Response, error) {
	if o.modelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.modelTimeout)
		defer cancel()
	}

	return o.llm.Generate(ctx, model.Request{
		Messages:    history,
		Tools:       o.registry.Definitions(),
		Temperature: o.temperature,
	})
}

func marshalResult(name string, result tool.Result) string {
	payload, err := json.Marshal(result)
	if err != nil {
		payload, _ = json.Marshal(tool.Result{"error": fmt.Sprintf("Tool %s returned an unserializable result", name)})
	}
	return string(payload)
}
