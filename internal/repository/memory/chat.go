package memory

import (
	"context"
	"sort"
	"sync"
)

// ChatRepo is an in-process chat registry for deployments without postgres
type ChatRepo struct {
	chats map[int64]struct{}
	mu    sync.RWMutex
}

// NewChatRepo creates an empty registry
func NewChatRepo() *ChatRepo {
	return &ChatRepo{chats: make(map[int64]struct{})}
}

func (r *ChatRepo) Register(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[chatID] = struct{}{}
	return nil
}

// ListChats returns registered chat ids in ascending order
func (r *ChatRepo) ListChats(_ context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.chats))
	for id := range r.chats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
