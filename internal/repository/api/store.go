package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wordbot/internal/domain"

	"go.uber.org/zap"
)

const maxErrorBody = 512

// wordPayload is the store's wire form of a vocabulary entry.
// word is English, translation is Russian.
type wordPayload struct {
	UserID         int64  `json:"user_id"`
	Theme          string `json:"theme"`
	Word           string `json:"word"`
	Translation    string `json:"translation"`
	Definition     string `json:"definition"`
	DefinitionLang string `json:"definition_lang"`
}

// Store implements repository.VocabularyRepository over the vocabulary REST API
type Store struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStore creates a store client. timeout bounds every request.
func NewStore(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Store {
	return &Store{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("store", "api")),
	}
}

// Save posts a single entry
func (s *Store) Save(ctx context.Context, entry domain.VocabularyEntry) error {
	payload, err := json.Marshal(toPayload(entry))
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/words", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		s.logger.Warn("Save rejected",
			zap.Int64("user_id", entry.UserID),
			zap.String("word", entry.WordEn),
			zap.Error(err),
		)
		return err
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// List returns the user's entries for theme. The store may answer with a bare
// array or with {"words": [...]}.
func (s *Store) List(ctx context.Context, userID int64, theme string) ([]domain.VocabularyEntry, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(userID, 10))
	query.Set("theme", theme)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/words?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w: %v", domain.ErrStoreUnavailable, err)
	}

	payloads, err := decodeList(body)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.VocabularyEntry, 0, len(payloads))
	for _, p := range payloads {
		entries = append(entries, p.toEntry(userID, theme))
	}
	return entries, nil
}

func (s *Store) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", req.Method, req.URL.Path, domain.ErrStoreUnavailable, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrUnauthorized)
	}
	return &domain.RejectedError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func decodeList(body []byte) ([]wordPayload, error) {
	var list []wordPayload
	arrErr := json.Unmarshal(body, &list)
	if arrErr == nil {
		return list, nil
	}

	var wrapped struct {
		Words []wordPayload `json:"words"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode list: %w: %v", domain.ErrStoreUnavailable, errors.Join(arrErr, err))
	}
	return wrapped.Words, nil
}

func toPayload(e domain.VocabularyEntry) wordPayload {
	return wordPayload{
		UserID:         e.UserID,
		Theme:          e.Theme,
		Word:           e.WordEn,
		Translation:    e.WordRu,
		Definition:     e.Definition,
		DefinitionLang: string(e.DefinitionLang),
	}
}

func (p wordPayload) toEntry(userID int64, theme string) domain.VocabularyEntry {
	if p.UserID == 0 {
		p.UserID = userID
	}
	if p.Theme == "" {
		p.Theme = theme
	}
	return domain.VocabularyEntry{
		UserID:         p.UserID,
		Theme:          p.Theme,
		WordEn:         p.Word,
		WordRu:         p.Translation,
		Definition:     p.Definition,
		DefinitionLang: domain.DefinitionLang(p.DefinitionLang),
	}
}
