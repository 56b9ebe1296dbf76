package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleArgs struct {
	Date     string   `json:"date" description:"Calendar date"`
	Note     string   `json:"note,omitempty" description:"Optional note"`
	Count    *int     `json:"count" description:"Optional pointer"`
	EntryIDs []string `json:"entry_ids" description:"ID list"`
	hidden   string
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleArgs{})

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "date")
	assert.Contains(t, props, "note")
	assert.Contains(t, props, "count")
	assert.Contains(t, props, "entry_ids")
	assert.NotContains(t, props, "hidden")

	dateSchema := props["date"].(map[string]any)
	assert.Equal(t, "string", dateSchema["type"])
	assert.Equal(t, "Calendar date", dateSchema["description"])

	idsSchema := props["entry_ids"].(map[string]any)
	assert.Equal(t, "array", idsSchema["type"])
	assert.Equal(t, map[string]any{"type": "string"}, idsSchema["items"])

	// Pointer and omitempty fields are optional.
	req, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"date", "entry_ids"}, req)
}

func TestCreateSchemaEmptyStruct(t *testing.T) {
	schema := CreateSchema(struct{}{})
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
	assert.NotContains(t, schema, "required")
}

func TestValidateParameters(t *testing.T) {
	schema := CreateSchema(sampleArgs{})

	err := ValidateParameters(map[string]any{
		"date":      "2025-11-16",
		"entry_ids": []any{"1", "2"},
	}, schema)
	assert.NoError(t, err)

	err = ValidateParameters(map[string]any{"date": "2025-11-16"}, schema)
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "entry_ids", vErr.Field)

	err = ValidateParameters(map[string]any{
		"date":      42,
		"entry_ids": []any{},
	}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected type string")
}

func TestValidateParametersToleratesExtras(t *testing.T) {
	schema := CreateSchema(sampleArgs{})

	err := ValidateParameters(map[string]any{
		"date":      "2025-11-16",
		"entry_ids": []any{},
		"surprise":  true,
	}, schema)
	assert.NoError(t, err)
}

func TestValidateParametersIntegerCoercion(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"x": map[string]any{"type": "integer"}},
		"required":   []any{"x"},
	}

	// JSON numbers arrive as float64; whole values count as integers.
	assert.NoError(t, ValidateParameters(map[string]any{"x": float64(5)}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"x": 5.5}, schema))
	assert.Error(t, ValidateParameters(map[string]any{}, schema))
}
