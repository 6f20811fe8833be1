package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "commas and newlines",
			input:    "cat, dog\nmouse,, elephant",
			expected: []string{"cat", "dog", "mouse", "elephant"},
		},
		{
			name:     "single word",
			input:    "  hello  ",
			expected: []string{"hello"},
		},
		{
			name:     "multi-word phrase kept whole",
			input:    "look after, give up",
			expected: []string{"look after", "give up"},
		},
		{
			name:     "only separators",
			input:    " ,\n, ,",
			expected: []string{},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := ParseWords(tt.input)
			if len(tt.expected) == 0 {
				assert.Empty(t, words)
				return
			}
			assert.Equal(t, tt.expected, words)
		})
	}
}

func TestWordQueue_Pop(t *testing.T) {
	q := NewWordQueue("cat", "dog", "mouse")

	head, ok := q.Pop()

	assert.True(t, ok)
	assert.Equal(t, "cat", head)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []string{"dog", "mouse"}, q.Items)
}

func TestWordQueue_PopEmpty(t *testing.T) {
	q := NewWordQueue()

	_, ok := q.Pop()

	assert.False(t, ok)
	assert.True(t, q.Empty())
}

func TestWordQueue_PushFront(t *testing.T) {
	q := NewWordQueue("mouse", "elephant")

	q.PushFront("cat", "dog")

	assert.Equal(t, 4, q.Len())
	assert.Equal(t, []string{"cat", "dog", "mouse", "elephant"}, q.Items)
}

func TestWordQueue_ReplaceHead(t *testing.T) {
	tests := []struct {
		name          string
		initial       []string
		corrections   []string
		expectedDelta int
		expected      []string
	}{
		{
			name:          "single correction",
			initial:       []string{"dgo", "cat", "mouse"},
			corrections:   []string{"dog"},
			expectedDelta: 0,
			expected:      []string{"dog", "cat", "mouse"},
		},
		{
			name:          "split into several words",
			initial:       []string{"catdog", "mouse"},
			corrections:   []string{"cat", "dog"},
			expectedDelta: 1,
			expected:      []string{"cat", "dog", "mouse"},
		},
		{
			name:          "empty queue just prepends",
			initial:       nil,
			corrections:   []string{"cat"},
			expectedDelta: 1,
			expected:      []string{"cat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewWordQueue(tt.initial...)
			before := q.Len()

			q.ReplaceHead(tt.corrections...)

			assert.Equal(t, tt.expectedDelta, q.Len()-before)
			assert.Equal(t, tt.expected, q.Items)
		})
	}
}

func TestWordQueue_CloneIsIndependent(t *testing.T) {
	q := NewWordQueue("cat", "dog")
	c := q.Clone()

	c.Pop()
	c.PushFront("mouse")

	assert.Equal(t, []string{"cat", "dog"}, q.Items)
	assert.Equal(t, []string{"mouse", "dog"}, c.Items)
}
