// Package agendamesh provides a high-level façade over the agent
// orchestration loop and its services (tools, sessions, entry storage and
// logging) for building a natural-language schedule assistant. Most
// applications interact with this package by:
//  1. Creating an Assistant via New() with a model and an entry store
//  2. Calling HandleUserPrompt for each user message
//
// The façade delegates the tool-calling loop to agent.Orchestrator while
// keeping setup and usage ergonomics concise. All defaults are safe for local
// development; production deployments typically supply a Redis session store
// and a structured logger.
package agendamesh

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/agendamesh/agent"
	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/logging"
	"github.com/hupe1980/agendamesh/model"
	"github.com/hupe1980/agendamesh/session"
	"github.com/hupe1980/agendamesh/store"
	"github.com/hupe1980/agendamesh/tool"
)

// Options configures the Assistant instance.
type Options struct {
	// Tools advertised to the model. Defaults to the standard schedule set.
	Tools []tool.Tool

	// SessionStore persists working schedules between turns. Defaults to an
	// in-memory implementation.
	SessionStore session.Store

	// PrincipalID scopes storage mutations to the acting user.
	PrincipalID int64

	// Temperature is forwarded to the model on every round.
	Temperature float64

	// MaxRounds caps model calls per user turn.
	MaxRounds int

	// ModelTimeout bounds each individual model call.
	ModelTimeout time.Duration

	// Now supplies the clock used for prompts and default date ranges.
	Now func() time.Time

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentQuery is a free-form user request against the schedule.
type AgentQuery struct {
	UserPrompt string `json:"user_prompt"`
}

// AgentResponse is the assistant's reply for one turn.
type AgentResponse struct {
	// Response is the text to show the user.
	Response string `json:"response"`
	// ApprovalRequired signals that the caller should ask the user to
	// confirm before treating the result as final.
	ApprovalRequired bool `json:"approval_required"`
	// Schedule is the working set after the turn, already persisted to the
	// session store.
	Schedule *core.Schedule `json:"schedule"`
}

// Assistant is the high-level façade aggregating the orchestrator and its
// services.
type Assistant struct {
	opts         Options
	entryStore   store.EntryStore
	sessionStore session.Store
	registry     *tool.Registry
	orchestrator *agent.Orchestrator
}

// New creates an Assistant with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(llm model.Model, entryStore store.EntryStore, optFns ...func(o *Options)) *Assistant {
	opts := Options{
		Tools:        tool.ScheduleTools(),
		SessionStore: session.NewInMemoryStore(),
		Temperature:  0.5,
		MaxRounds:    10,
		ModelTimeout: 60 * time.Second,
		Now:          time.Now,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	registry := tool.NewRegistry(opts.Tools...)

	orchestrator := agent.NewOrchestrator(llm, registry, entryStore, func(o *agent.OrchestratorOptions) {
		o.Temperature = opts.Temperature
		o.MaxRounds = opts.MaxRounds
		o.ModelTimeout = opts.ModelTimeout
		o.PrincipalID = opts.PrincipalID
		o.Now = opts.Now
		o.Logger = opts.Logger
	})

	return &Assistant{
		opts:         opts,
		entryStore:   entryStore,
		sessionStore: opts.SessionStore,
		registry:     registry,
		orchestrator: orchestrator,
	}
}

// ReloadTools replaces the advertised tool set. Takes effect on the next
// turn.
func (a *Assistant) ReloadTools(tools []tool.Tool) {
	a.registry.Replace(tools)
}

// HandleUserPrompt runs one assistant turn for the given session.
//
// The session's working schedule is loaded (or seeded with the current
// calendar week), refreshed from entry storage, mutated by whatever tools the
// model invokes, and saved back before the response is returned. A turn that
// hit the round ceiling still yields a usable response.
func (a *Assistant) HandleUserPrompt(ctx context.Context, sessionID string, query AgentQuery) (*AgentResponse, error) {
	sched, err := a.loadSchedule(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := a.orchestrator.Run(ctx, query.UserPrompt, sched)
	if err != nil && !errors.Is(err, agent.ErrMaxRounds) {
		return nil, err
	}

	if err := a.sessionStore.Save(ctx, sessionID, sched); err != nil {
		return nil, err
	}

	return &AgentResponse{
		Response:         result.Response,
		ApprovalRequired: true,
		Schedule:         sched,
	}, nil
}

// loadSchedule restores the session's working schedule and resyncs its
// entries from storage so concurrent changes become visible.
func (a *Assistant) loadSchedule(ctx context.Context, sessionID string) (*core.Schedule, error) {
	stored, err := a.sessionStore.Get(ctx, sessionID)

	var rng core.DateRange
	switch {
	case err == nil:
		rng = stored.Range
	case errors.Is(err, session.ErrNotFound):
		rng = currentWeekRange(a.opts.Now())
	default:
		return nil, err
	}

	sched, err := a.entryStore.GetSchedule(ctx, a.opts.PrincipalID, rng)
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// currentWeekRange spans the calendar week of the given day, Monday through
// Sunday.
func currentWeekRange(now time.Time) core.DateRange {
	day := core.NormalizeDate(now)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return core.NewDateRange(monday, monday.AddDate(0, 0, 6))
}
