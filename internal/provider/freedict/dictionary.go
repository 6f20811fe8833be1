package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wordbot/internal/domain"
	"wordbot/internal/provider"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

type apiEntry struct {
	Word     string       `json:"word"`
	Meanings []apiMeaning `json:"meanings"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
}

// Dictionary fetches definitions from the FreeDictionary API
type Dictionary struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewDictionary creates a dictionary with the default FreeDictionary API URL
func NewDictionary(logger *zap.Logger) *Dictionary {
	return NewDictionaryWithURL(defaultBaseURL, logger)
}

// NewDictionaryWithURL creates a dictionary with a custom base URL (for testing)
func NewDictionaryWithURL(baseURL string, logger *zap.Logger) *Dictionary {
	return &Dictionary{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retryDelay: 500 * time.Millisecond,
		logger:     logger.With(zap.String("provider", "freedict")),
	}
}

func (d *Dictionary) Name() string {
	return "FreeDictionary"
}

// Lookup returns the first definition of the first entry
func (d *Dictionary) Lookup(ctx context.Context, word string) (string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", fmt.Errorf("freedict: empty word: %w", domain.ErrNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return "", fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := d.doWithRetry(ctx, req, word)
	if err != nil {
		d.logger.Error("Request failed", zap.String("word", word), zap.Error(err))
		return "", provider.Unavailable(d.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("freedict: %q: %w", word, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", provider.Unavailable(d.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", provider.Unavailable(d.Name(), fmt.Errorf("read body: %w", err))
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", provider.Unavailable(d.Name(), fmt.Errorf("decode json: %w", err))
	}

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				if text := strings.TrimSpace(def.Definition); text != "" {
					return text, nil
				}
			}
		}
	}

	return "", fmt.Errorf("freedict: %q has no definitions: %w", word, domain.ErrNotFound)
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (d *Dictionary) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := d.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	d.logger.Warn("Retrying request", zap.String("word", word), zap.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(d.retryDelay):
	}

	return d.httpClient.Do(req)
}
