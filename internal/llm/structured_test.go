package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priorityPayload struct {
	Priority string `json:"priority"`
}

type subtaskPayload struct {
	Subtasks []string `json:"subtasks"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	result, err := ExtractJSON[priorityPayload](`{"priority":"high"}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "high", result.Priority)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"subtasks\":[\"Outline\",\"Draft\"]}\n```"
	result, err := ExtractJSON[subtaskPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Outline", "Draft"}, result.Subtasks)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Sure! Here you go:\n{\"priority\":\"low\"}\nLet me know if you need more."
	result, err := ExtractJSON[priorityPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "low", result.Priority)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"subtasks":["Fix {braces} in template","Escape \"quotes\" }"]}`
	result, err := ExtractJSON[subtaskPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fix {braces} in template", `Escape "quotes" }`}, result.Subtasks)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[priorityPayload]("high, probably", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_Unclosed(t *testing.T) {
	_, err := ExtractJSON[priorityPayload](`{"priority":"high"`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_WrongShape(t *testing.T) {
	_, err := ExtractJSON[subtaskPayload](`{"subtasks":"not a list"}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	validator := func(p priorityPayload) error {
		if p.Priority != "low" && p.Priority != "medium" && p.Priority != "high" {
			return errors.New("priority out of range")
		}
		return nil
	}
	_, err := ExtractJSON(`{"priority":"urgent"}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}
