package google

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

const defaultBaseURL = "https://translate.googleapis.com/translate_a/single"

// Translator calls the public Google Translate endpoint
type Translator struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTranslator creates a translator for the default endpoint
func NewTranslator(logger *zap.Logger) *Translator {
	return NewTranslatorWithURL(defaultBaseURL, logger)
}

// NewTranslatorWithURL creates a translator for a custom endpoint (for testing)
func NewTranslatorWithURL(baseURL string, logger *zap.Logger) *Translator {
	return &Translator{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With(zap.String("provider", "google")),
	}
}

// Name returns the label shown in logs and metrics
func (t *Translator) Name() string {
	return "Google"
}

// Translate translates text from src to dest
func (t *Translator) Translate(ctx context.Context, text string, src, dest domain.Lang) (string, error) {
	if err := provider.CheckPair(src, dest); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", string(src))
	params.Set("tl", string(dest))
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("google: create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", provider.Unavailable(t.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", provider.Unavailable(t.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", provider.Unavailable(t.Name(), err)
	}

	translated, err := parseResponse(body)
	if err != nil {
		return "", provider.Unavailable(t.Name(), err)
	}

	t.logger.Debug("Translated",
		zap.String("text", text),
		zap.String("translation", translated),
	)

	return translated, nil
}

// parseResponse pulls sentence fragments out of the nested array payload:
// [[["перевод","source",...],...],...]
func parseResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload")
	}

	var sentences [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &sentences); err != nil {
		return "", fmt.Errorf("decode sentences: %w", err)
	}

	var sb strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		var fragment string
		if err := json.Unmarshal(sentence[0], &fragment); err != nil {
			continue
		}
		sb.WriteString(fragment)
	}

	translated := strings.TrimSpace(sb.String())
	if translated == "" {
		return "", fmt.Errorf("empty translation")
	}
	return translated, nil
}
