package domain

import (
	"strings"

	"github.com/samber/lo"
)

// WordQueue is the ordered list of words still waiting to be resolved
type WordQueue struct {
	Items []string `json:"items,omitempty"`
}

// NewWordQueue creates a queue holding words in order
func NewWordQueue(words ...string) WordQueue {
	return WordQueue{Items: append([]string(nil), words...)}
}

// Len returns the number of pending words
func (q *WordQueue) Len() int {
	return len(q.Items)
}

// Empty reports whether nothing is left to process
func (q *WordQueue) Empty() bool {
	return len(q.Items) == 0
}

// Peek returns the head word without removing it
func (q *WordQueue) Peek() (string, bool) {
	if q.Empty() {
		return "", false
	}
	return q.Items[0], true
}

// Pop removes and returns the head word
func (q *WordQueue) Pop() (string, bool) {
	head, ok := q.Peek()
	if !ok {
		return "", false
	}
	q.Items = append([]string(nil), q.Items[1:]...)
	return head, true
}

// Push appends words to the tail
func (q *WordQueue) Push(words ...string) {
	q.Items = append(q.Items, words...)
}

// PushFront prepends words keeping their relative order
func (q *WordQueue) PushFront(words ...string) {
	items := make([]string, 0, len(words)+len(q.Items))
	items = append(items, words...)
	q.Items = append(items, q.Items...)
}

// ReplaceHead drops the head word (if any) and prepends the corrections
func (q *WordQueue) ReplaceHead(words ...string) {
	q.Pop()
	q.PushFront(words...)
}

// Clone returns an independent copy
func (q WordQueue) Clone() WordQueue {
	return NewWordQueue(q.Items...)
}

// ParseWords splits user input on commas and newlines, trimming blanks
func ParseWords(text string) []string {
	parts := strings.Split(strings.ReplaceAll(text, "\n", ","), ",")
	return lo.FilterMap(parts, func(part string, _ int) (string, bool) {
		word := strings.TrimSpace(part)
		return word, word != ""
	})
}
