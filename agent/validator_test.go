package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agendamesh/core"
	"github.com/hupe1980/agendamesh/model"
)

func TestValidateAccepts(t *testing.T) {
	mock := model.NewMockModel("judge")
	mock.EnqueueText(`{"valid": true, "reasons": "in scope"}`)

	v := NewValidator(mock, nil)
	verdict := v.Validate(context.Background(), "system", "user", "answer")

	assert.True(t, verdict.Valid)
	assert.False(t, verdict.FailOpen)
	assert.Equal(t, "in scope", verdict.Reasons)
	assert.EqualValues(t, 0, v.FailOpenCount())

	// The judge runs at temperature zero with the payload as the user turn.
	require.Len(t, mock.Requests, 1)
	assert.Zero(t, mock.Requests[0].Temperature)
	assert.Empty(t, mock.Requests[0].Tools)
	require.Len(t, mock.Requests[0].Messages, 2)
	assert.Equal(t, core.RoleUser, mock.Requests[0].Messages[1].Role)
	assert.Contains(t, mock.Requests[0].Messages[1].Text, `"assistant_response"`)
}

func TestValidateRejects(t *testing.T) {
	mock := model.NewMockModel("judge")
	mock.EnqueueText(`{"valid": false, "reasons": "off topic"}`)

	v := NewValidator(mock, nil)
	verdict := v.Validate(context.Background(), "system", "user", "answer")

	assert.False(t, verdict.Valid)
	assert.Equal(t, "off topic", verdict.Reasons)
}

func TestValidateFailsOpenOnBadJSON(t *testing.T) {
	mock := model.NewMockModel("judge")
	mock.EnqueueText("Sure! The response looks fine to me.")

	v := NewValidator(mock, nil)
	verdict := v.Validate(context.Background(), "system", "user", "answer")

	assert.True(t, verdict.Valid)
	assert.True(t, verdict.FailOpen)
	assert.EqualValues(t, 1, v.FailOpenCount())
}

func TestValidateFailsOpenOnNonBooleanFlag(t *testing.T) {
	mock := model.NewMockModel("judge")
	mock.EnqueueText(`{"valid": "yes", "reasons": "string instead of bool"}`)

	v := NewValidator(mock, nil)
	verdict := v.Validate(context.Background(), "system", "user", "answer")

	assert.True(t, verdict.Valid)
	assert.True(t, verdict.FailOpen)
}

func TestValidateFailsOpenOnJudgeError(t *testing.T) {
	mock := model.NewMockModel("judge") // empty script: the call errors

	v := NewValidator(mock, nil)

	verdict := v.Validate(context.Background(), "system", "user", "answer")
	assert.True(t, verdict.Valid)
	assert.True(t, verdict.FailOpen)

	verdict = v.Validate(context.Background(), "system", "user", "answer")
	assert.True(t, verdict.FailOpen)
	assert.EqualValues(t, 2, v.FailOpenCount())
}
