package tool

import (
	"context"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/logging"
	"github.com/hupe1980/agendamesh/store"
)

// Context carries everything a tool invocation may touch: the turn's shared
// working set, the storage collaborator, the owning principal for destructive
// operations, and logging. One Context is created per tool call so the call
// ID stays correlated in logs.
type Context struct {
	ctx         context.Context
	schedule    *core.Schedule
	store       store.EntryStore
	principalID int64
	logger      logging.Logger
	callID      string
}

// NewContext builds a tool context for one invocation.
func NewContext(ctx context.Context, schedule *core.Schedule, entryStore store.EntryStore, principalID int64, logger logging.Logger) *Context {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Context{
		ctx:         ctx,
		schedule:    schedule,
		store:       entryStore,
		principalID: principalID,
		logger:      logger,
	}
}

// WithCallID returns a copy tagged with the model's function call identifier.
func (c *Context) WithCallID(id string) *Context {
	nc := *c
	nc.callID = id
	return &nc
}

// Context returns the cancellation context for blocking collaborator calls.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Schedule returns the turn's mutable working set.
func (c *Context) Schedule() *core.Schedule { return c.schedule }

// Store returns the storage collaborator.
func (c *Context) Store() store.EntryStore { return c.store }

// PrincipalID returns the principal whose entries destructive operations are
// scoped to.
func (c *Context) PrincipalID() int64 { return c.principalID }

// Logger returns the structured logger for this invocation.
func (c *Context) Logger() logging.Logger { return c.logger }

// CallID returns the function call identifier, if the model supplied one.
func (c *Context) CallID() string { return c.callID }
