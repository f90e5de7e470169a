package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "fenced object",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "fenced array",
			input:    "```json\n[\"x\", \"y\"]\n```",
			expected: `["x", "y"]`,
		},
		{
			name:     "object with surrounding prose",
			input:    "Here is the result:\n{\"a\": 1}\nHope that helps!",
			expected: `{"a": 1}`,
		},
		{
			name:     "array with surrounding prose",
			input:    "Sure! [\"x\"] is the answer.",
			expected: `["x"]`,
		},
		{
			name:     "plain text untouched",
			input:    "no json here",
			expected: "no json here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFences(tt.input))
		})
	}
}

func TestDecodeStringArray(t *testing.T) {
	t.Run("valid array", func(t *testing.T) {
		skills, ok := decodeStringArray(`["Backend", "Frontend", "DevOps"]`)
		require.True(t, ok)
		assert.Equal(t, []string{"Backend", "Frontend", "DevOps"}, skills)
	})

	t.Run("fenced array", func(t *testing.T) {
		skills, ok := decodeStringArray("```json\n[\"APIs\", \"Testing\"]\n```")
		require.True(t, ok)
		assert.Equal(t, []string{"APIs", "Testing"}, skills)
	})

	t.Run("blank entries dropped", func(t *testing.T) {
		skills, ok := decodeStringArray(`["Backend", "  ", ""]`)
		require.True(t, ok)
		assert.Equal(t, []string{"Backend"}, skills)
	})

	t.Run("all blank is not ok", func(t *testing.T) {
		_, ok := decodeStringArray(`["", " "]`)
		assert.False(t, ok)
	})

	t.Run("malformed", func(t *testing.T) {
		_, ok := decodeStringArray("not json at all")
		assert.False(t, ok)
	})
}

func TestDecodeObject(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		var scores map[string]float64
		require.True(t, decodeObject(`{"Backend": 85, "Frontend": 60}`, &scores))
		assert.Equal(t, 85.0, scores["Backend"])
		assert.Equal(t, 60.0, scores["Frontend"])
	})

	t.Run("fenced object with prose", func(t *testing.T) {
		var scores map[string]float64
		input := "Here you go:\n```json\n{\"Backend\": 70}\n```\nDone."
		require.True(t, decodeObject(input, &scores))
		assert.Equal(t, 70.0, scores["Backend"])
	})

	t.Run("malformed", func(t *testing.T) {
		var scores map[string]float64
		assert.False(t, decodeObject("oops", &scores))
	})
}
