package middleware

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"
)

type fakeContext struct {
	tele.Context
	chat   *tele.Chat
	values map[string]interface{}
}

func (f *fakeContext) Chat() *tele.Chat { return f.chat }

func (f *fakeContext) Set(key string, val interface{}) {
	if f.values == nil {
		f.values = make(map[string]interface{})
	}
	f.values[key] = val
}

func (f *fakeContext) Get(key string) interface{} { return f.values[key] }

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		chat      *tele.Chat
		err       error
		wantLevel zapcore.Level
		wantMsg   string
		wantChat  int64
	}{
		{name: "handled", chat: &tele.Chat{ID: 42}, wantLevel: zapcore.DebugLevel, wantMsg: "Update handled", wantChat: 42},
		{name: "failed", chat: &tele.Chat{ID: 42}, err: errors.New("telegram: bad request"), wantLevel: zapcore.ErrorLevel, wantMsg: "Update failed", wantChat: 42},
		{name: "no chat", wantLevel: zapcore.DebugLevel, wantMsg: "Update handled", wantChat: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			ctx := &fakeContext{chat: tt.chat}

			var seen interface{}
			handler := Logger(zap.New(core))(func(c tele.Context) error {
				seen = c.Get(RequestIDKey)
				return tt.err
			})

			err := handler(ctx)

			assert.Equal(t, tt.err, err)
			id, ok := seen.(string)
			require.True(t, ok)
			_, parseErr := uuid.Parse(id)
			assert.NoError(t, parseErr)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
			assert.Equal(t, tt.wantMsg, entries[0].Message)
			ctxMap := entries[0].ContextMap()
			assert.Equal(t, id, ctxMap["request_id"])
			assert.Equal(t, tt.wantChat, ctxMap["chat_id"])
		})
	}
}

func TestLogger_UniqueRequestIDs(t *testing.T) {
	var ids []string
	handler := Logger(zap.NewNop())(func(c tele.Context) error {
		ids = append(ids, c.Get(RequestIDKey).(string))
		return nil
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, handler(&fakeContext{chat: &tele.Chat{ID: 1}}))
	}

	assert.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEqual(t, ids[1], ids[2])
}
