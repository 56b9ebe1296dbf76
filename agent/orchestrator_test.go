package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/model"
	"github.com/hupe1980/agendamesh/store"
	"github.com/hupe1980/agendamesh/tool"
)

func fixedNow() time.Time {
	return time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
}

func testSchedule(t *testing.T, entryStore *store.InMemoryStore, entries ...core.Entry) *core.Schedule {
	t.Helper()
	stored := make([]core.Entry, 0, len(entries))
	for _, e := range entries {
		e := e
		_, err := entryStore.AddEntry(context.Background(), &e)
		require.NoError(t, err)
		stored = append(stored, e)
	}

	from, err := core.ParseEntryDate("2025-11-10")
	require.NoError(t, err)
	to, err := core.ParseEntryDate("2025-11-16")
	require.NoError(t, err)
	return core.NewSchedule(core.NewDateRange(from, to), stored)
}

func newTestOrchestrator(llm model.Model, entryStore *store.InMemoryStore, optFns ...func(o *OrchestratorOptions)) *Orchestrator {
	registry := tool.NewRegistry(tool.ScheduleTools()...)
	fns := append([]func(o *OrchestratorOptions){func(o *OrchestratorOptions) {
		o.Now = fixedNow
	}}, optFns...)
	return NewOrchestrator(llm, registry, entryStore, fns...)
}

func TestRunPlainAnswer(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.EnqueueText("I can only help with scheduling tasks.")
	mock.EnqueueText(`{"valid": true, "reasons": "polite refusal"}`)

	entryStore := store.NewInMemoryStore()
	o := newTestOrchestrator(mock, entryStore)

	result, err := o.Run(context.Background(), "tell me about the weather", testSchedule(t, entryStore))
	require.NoError(t, err)

	assert.Equal(t, "I can only help with scheduling tasks.", result.Response)
	assert.Equal(t, 1, result.Rounds)
	assert.False(t, result.Overridden)

	// First request carries the full tool catalogue and the system prompt.
	require.Len(t, mock.Requests, 2)
	assert.Len(t, mock.Requests[0].Tools, 6)
	assert.Equal(t, core.RoleSystem, mock.Requests[0].Messages[0].Role)
	assert.Contains(t, mock.Requests[0].Messages[0].Text, "The current date is: 2025-11-10")
}

func TestRunToolRoundTrip(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.EnqueueToolCalls(model.Call("get_schedule_table", map[string]any{}))
	mock.EnqueueText("You have one appointment with Dr. Patel on the 12th.")
	mock.EnqueueText(`{"valid": true, "reasons": "grounded"}`)

	entryStore := store.NewInMemoryStore()
	date, err := core.ParseEntryDate("2025-11-12")
	require.NoError(t, err)
	sched := testSchedule(t, entryStore, core.Entry{
		Date:      date,
		StartTime: core.ClockTime{Hour: 9},
		EndTime:   core.ClockTime{Hour: 10},
		Title:     "Checkup",
		Provider:  "Dr. Patel",
	})

	o := newTestOrchestrator(mock, entryStore)
	result, err := o.Run(context.Background(), "what is on my schedule?", sched)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Rounds)
	assert.Equal(t, "You have one appointment with Dr. Patel on the 12th.", result.Response)

	// The second model request must replay the assistant's tool call and the
	// tool result message in order.
	second := mock.Requests[1].Messages
	require.Len(t, second, 4)
	assert.True(t, second[2].HasToolCalls())
	assert.Equal(t, core.RoleTool, second[3].Role)
	assert.Equal(t, "get_schedule_table", second[3].ToolName)
	assert.Equal(t, second[2].ToolCalls[0].ID, second[3].ToolCallID)
	assert.Contains(t, second[3].Text, "Checkup")
}

func TestRunMutatingTurn(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.EnqueueToolCalls(
		model.Call("add_entry", map[string]any{
			"date": "2025-11-12", "start_time": "09:00", "end_time": "11:00",
			"title": "New patient appointment", "provider": "Dr. Patel",
		}),
		model.Call("add_entry", map[string]any{
			"date": "2025-11-13", "start_time": "09:00", "end_time": "11:00",
			"title": "New patient appointment", "provider": "Dr. Patel",
		}),
	)
	mock.EnqueueText("Added two appointments with Dr. Patel.")
	mock.EnqueueText(`{"valid": true, "reasons": "confirmed by tools"}`)

	entryStore := store.NewInMemoryStore()
	sched := testSchedule(t, entryStore)

	o := newTestOrchestrator(mock, entryStore)
	result, err := o.Run(context.Background(), "book Dr. Patel for the 12th and 13th, 9 to 11", sched)
	require.NoError(t, err)

	assert.Equal(t, "Added two appointments with Dr. Patel.", result.Response)
	assert.Equal(t, 2, sched.Len())
	assert.Equal(t, 2, entryStore.Len())
}

func TestRunZeroMatchDelete(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.EnqueueToolCalls(model.Call("delete_by_filter", map[string]any{
		"provider":  "Dr. Lee",
		"from_date": "2025-11-10",
		"to_date":   "2025-11-16",
	}))
	mock.EnqueueText("No appointments with Dr. Lee matched this week; nothing was deleted.")
	mock.EnqueueText(`{"valid": true, "reasons": "accurate"}`)

	entryStore := store.NewInMemoryStore()
	sched := testSchedule(t, entryStore)

	o := newTestOrchestrator(mock, entryStore)
	result, err := o.Run(context.Background(), "delete all of Dr. Lee's appointments this week", sched)
	require.NoError(t, err)

	assert.Contains(t, result.Response, "nothing was deleted")

	// The tool result fed back to the model distinguishes "matched nothing"
	// from the no-filters policy error.
	toolMsg := mock.Requests[1].Messages[3]
	assert.Equal(t, core.RoleTool, toolMsg.Role)
	assert.Contains(t, toolMsg.Text, `"matched_filters_but_nothing_found":true`)
	assert.Contains(t, toolMsg.Text, `"total_deleted":0`)
}

func TestRunRejectedAnswerIsOverridden(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.EnqueueText("I deleted everything, you are welcome!")
	mock.EnqueueText(`{"valid": false, "reasons": "claims a mutation without tool evidence"}`)

	entryStore := store.NewInMemoryStore()
	o := newTestOrchestrator(mock, entryStore)

	result, err := o.Run(context.Background(), "hi", testSchedule(t, entryStore))
	require.NoError(t, err)

	assert.Equal(t, FailureResponse, result.Response)
	assert.True(t, result.Overridden)
}

func TestRunJudgeGarbageFailsOpen(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.EnqueueText("You have no appointments today.")
	mock.EnqueueText("as an evaluator I think this is fine") // not JSON

	entryStore := store.NewInMemoryStore()
	o := newTestOrchestrator(mock, entryStore)

	result, err := o.Run(context.Background(), "anything today?", testSchedule(t, entryStore))
	require.NoError(t, err)

	// An unusable verdict must not block the turn; the candidate answer is
	// returned unchanged.
	assert.Equal(t, "You have no appointments today.", result.Response)
	assert.False(t, result.Overridden)
}

func TestRunMaxRounds(t *testing.T) {
	mock := model.NewMockModel("test")
	// The model keeps asking for tools and never answers.
	mock.EnqueueToolCalls(model.Call("get_schedule_table", map[string]any{}))
	mock.EnqueueToolCalls(model.Call("get_schedule_table", map[string]any{}))

	entryStore := store.NewInMemoryStore()
	o := newTestOrchestrator(mock, entryStore, func(o *OrchestratorOptions) {
		o.MaxRounds = 2
	})

	result, err := o.Run(context.Background(), "loop forever", testSchedule(t, entryStore))
	require.ErrorIs(t, err, ErrMaxRounds)
	require.NotNil(t, result)
	assert.Equal(t, FailureResponse, result.Response)
	assert.Equal(t, 2, result.Rounds)
}

func TestRunModelFailure(t *testing.T) {
	mock := model.NewMockModel("test") // empty script: every call fails

	entryStore := store.NewInMemoryStore()
	o := newTestOrchestrator(mock, entryStore)

	_, err := o.Run(context.Background(), "hi", testSchedule(t, entryStore))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model round 1")
}
