package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"wordbot/internal/domain"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *domain.Session {
	s := domain.NewSession(42)
	s.Mode = domain.ModeSelectingTranslation
	s.Source = domain.LangRussian
	s.Dest = domain.LangEnglish
	s.Queue = domain.NewWordQueue("кошка", "дом")
	s.Draft = &domain.WordDraft{Word: "кошка", Candidates: []string{"cat", "kitty"}}
	s.Live = []string{"tr::0", "tr::1", "tr::custom"}
	return s
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	missing, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	s := sampleSession()
	require.NoError(t, store.Save(ctx, s))

	// later changes to the saved value must not leak into the store
	s.Queue.Pop()
	s.Draft.Candidates[0] = "dog"

	loaded, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), loaded)
}

type fakeRedis struct {
	data   map[string]string
	ttl    map[string]time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	default:
		return errors.New("unsupported value type")
	}
	f.ttl[key] = expiration
	return nil
}

func (f *fakeRedis) Ping(context.Context) error { return nil }
func (f *fakeRedis) Close() error               { return nil }

func TestRedisStore_RoundTrip(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	missing, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Save(ctx, sampleSession()))
	assert.Equal(t, time.Hour, client.ttl["session:42"])

	loaded, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), loaded)
}

func TestRedisStore_RoundTripQuiz(t *testing.T) {
	store := NewRedisStore(newFakeRedis(), time.Hour)
	ctx := context.Background()

	s := domain.NewSession(7)
	s.Mode = domain.ModeQuizActive
	s.Quiz = &domain.QuizState{
		Questions: []domain.Question{{
			Kind:    domain.QuestionDefinition,
			Prompt:  "cat",
			Correct: "a small animal",
			Options: []string{"a small animal", "a building", "Вариант 1", "Вариант 2"},
		}},
		Score: 0,
	}

	require.NoError(t, store.Save(ctx, s))
	loaded, err := store.Load(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestRedisStore_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeRedis)
	}{
		{
			name:  "connection error",
			setup: func(f *fakeRedis) { f.getErr = errors.New("connection refused") },
		},
		{
			name:  "corrupt payload",
			setup: func(f *fakeRedis) { f.data["session:42"] = "{not json" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeRedis()
			tt.setup(client)

			_, err := NewRedisStore(client, time.Hour).Load(context.Background(), 42)

			assert.Error(t, err)
		})
	}
}
