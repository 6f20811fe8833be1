package freedict

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"wordbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const catResponse = `[{
  "word": "cat",
  "meanings": [
    {"partOfSpeech": "noun", "definitions": [
      {"definition": "A domesticated species of feline animal."},
      {"definition": "Any similar animal of the family Felidae."}
    ]},
    {"partOfSpeech": "verb", "definitions": [{"definition": "To hoist the anchor."}]}
  ]
}]`

func newTestDictionary(url string) *Dictionary {
	d := NewDictionaryWithURL(url, zap.NewNop())
	d.retryDelay = time.Millisecond
	return d
}

func TestDictionary_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catResponse))
	}))
	defer srv.Close()

	def, err := newTestDictionary(srv.URL).Lookup(context.Background(), "cat")

	require.NoError(t, err)
	assert.Equal(t, "A domesticated species of feline animal.", def)
}

func TestDictionary_Lookup_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"title":"No Definitions Found"}`, wantErr: domain.ErrNotFound},
		{name: "no definitions", status: http.StatusOK, body: `[{"word":"cat","meanings":[]}]`, wantErr: domain.ErrNotFound},
		{name: "bad json", status: http.StatusOK, body: `{`, wantErr: domain.ErrProviderUnavailable},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ``, wantErr: domain.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestDictionary(srv.URL).Lookup(context.Background(), "cat")

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDictionary_Lookup_RetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(catResponse))
	}))
	defer srv.Close()

	def, err := newTestDictionary(srv.URL).Lookup(context.Background(), "cat")

	require.NoError(t, err)
	assert.Equal(t, "A domesticated species of feline animal.", def)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDictionary_Lookup_GivesUpAfterOneRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestDictionary(srv.URL).Lookup(context.Background(), "cat")

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
