package agendamesh_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agendamesh"
	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/model"
	"github.com/hupe1980/agendamesh/store"
)

// Wednesday Nov 12 2025; the surrounding calendar week is Nov 10-16.
func fixedNow() time.Time {
	return time.Date(2025, 11, 12, 15, 0, 0, 0, time.UTC)
}

func newTestAssistant(t *testing.T, mock *model.MockModel) (*agendamesh.Assistant, *store.InMemoryStore) {
	t.Helper()
	entryStore := store.NewInMemoryStore()

	date, err := core.ParseEntryDate("2025-11-13")
	require.NoError(t, err)
	_, err = entryStore.AddEntry(context.Background(), &core.Entry{
		Date:      date,
		StartTime: core.ClockTime{Hour: 9},
		EndTime:   core.ClockTime{Hour: 10},
		Title:     "Checkup",
		Provider:  "Dr. Patel",
	})
	require.NoError(t, err)

	assistant := agendamesh.New(mock, entryStore, func(o *agendamesh.Options) {
		o.Now = fixedNow
	})
	return assistant, entryStore
}

func TestHandleUserPromptSeedsCurrentWeek(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.EnqueueText("You have one appointment this week.")
	mock.EnqueueText(`{"valid": true, "reasons": "ok"}`)

	assistant, _ := newTestAssistant(t, mock)

	resp, err := assistant.HandleUserPrompt(context.Background(), "s1", agendamesh.AgentQuery{
		UserPrompt: "what is coming up?",
	})
	require.NoError(t, err)

	assert.Equal(t, "You have one appointment this week.", resp.Response)
	assert.True(t, resp.ApprovalRequired)
	require.NotNil(t, resp.Schedule)
	assert.Equal(t, "2025-11-10", resp.Schedule.Range.From.Format(core.DateLayout))
	assert.Equal(t, "2025-11-16", resp.Schedule.Range.To.Format(core.DateLayout))
	assert.Equal(t, 1, resp.Schedule.Len())
}

func TestHandleUserPromptPersistsViewAcrossTurns(t *testing.T) {
	mock := model.NewMockModel("test")
	// Turn 1: the model narrows the view to December.
	mock.EnqueueToolCalls(model.Call("filter_date_range", map[string]any{
		"from_date": "2025-12-01",
		"to_date":   "2025-12-07",
	}))
	mock.EnqueueText("Now showing December 1 to 7.")
	mock.EnqueueText(`{"valid": true, "reasons": "ok"}`)
	// Turn 2: a plain question against the narrowed view.
	mock.EnqueueText("Nothing scheduled in that week.")
	mock.EnqueueText(`{"valid": true, "reasons": "ok"}`)

	assistant, _ := newTestAssistant(t, mock)
	ctx := context.Background()

	resp, err := assistant.HandleUserPrompt(ctx, "s1", agendamesh.AgentQuery{UserPrompt: "show me Dec 1-7"})
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", resp.Schedule.Range.From.Format(core.DateLayout))

	resp, err = assistant.HandleUserPrompt(ctx, "s1", agendamesh.AgentQuery{UserPrompt: "anything there?"})
	require.NoError(t, err)
	// The narrowed window survived the turn boundary and the November entry
	// is no longer in view.
	assert.Equal(t, "2025-12-01", resp.Schedule.Range.From.Format(core.DateLayout))
	assert.Equal(t, 0, resp.Schedule.Len())
}

func TestHandleUserPromptIsolatesSessions(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.EnqueueToolCalls(model.Call("filter_date_range", map[string]any{
		"from_date": "2025-12-01",
		"to_date":   "2025-12-07",
	}))
	mock.EnqueueText("Now showing December 1 to 7.")
	mock.EnqueueText(`{"valid": true, "reasons": "ok"}`)
	mock.EnqueueText("You have one appointment this week.")
	mock.EnqueueText(`{"valid": true, "reasons": "ok"}`)

	assistant, _ := newTestAssistant(t, mock)
	ctx := context.Background()

	_, err := assistant.HandleUserPrompt(ctx, "s1", agendamesh.AgentQuery{UserPrompt: "show me Dec 1-7"})
	require.NoError(t, err)

	// A different session still starts on the current week.
	resp, err := assistant.HandleUserPrompt(ctx, "s2", agendamesh.AgentQuery{UserPrompt: "what is coming up?"})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-10", resp.Schedule.Range.From.Format(core.DateLayout))
	assert.Equal(t, 1, resp.Schedule.Len())
}
