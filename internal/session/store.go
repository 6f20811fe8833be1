package session

import (
	"context"
	"sync"

	"wordbot/internal/domain"
)

// Store persists sessions between events. Load returns nil, nil for an unknown chat.
type Store interface {
	Load(ctx context.Context, chatID int64) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	sessions map[int64]*domain.Session
	mu       sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*domain.Session)}
}

func (m *MemoryStore) Load(_ context.Context, chatID int64) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ChatID] = s.Clone()
	return nil
}
