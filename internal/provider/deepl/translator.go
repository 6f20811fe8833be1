package deepl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wordbot/internal/domain"
	"wordbot/internal/provider"

	"go.uber.org/zap"
)

const (
	freeBaseURL = "https://api-free.deepl.com/v2/translate"
	proBaseURL  = "https://api.deepl.com/v2/translate"
)

// Translator calls the DeepL REST API
type Translator struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTranslator picks the free or pro endpoint from the key suffix
func NewTranslator(apiKey string, logger *zap.Logger) *Translator {
	baseURL := proBaseURL
	if strings.HasSuffix(apiKey, ":fx") {
		baseURL = freeBaseURL
	}
	return NewTranslatorWithURL(apiKey, baseURL, logger)
}

// NewTranslatorWithURL creates a translator for a custom endpoint (for testing)
func NewTranslatorWithURL(apiKey, baseURL string, logger *zap.Logger) *Translator {
	return &Translator{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With(zap.String("provider", "deepl")),
	}
}

// Name returns the label shown in logs and metrics
func (t *Translator) Name() string {
	return "DeepL"
}

type response struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// Translate translates text from src to dest
func (t *Translator) Translate(ctx context.Context, text string, src, dest domain.Lang) (string, error) {
	if err := provider.CheckPair(src, dest); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", sourceCode(src))
	form.Set("target_lang", targetCode(dest))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("deepl: create request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+t.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", provider.Unavailable(t.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", provider.Unavailable(t.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", provider.Unavailable(t.Name(), fmt.Errorf("decode json: %w", err))
	}
	if len(payload.Translations) == 0 || strings.TrimSpace(payload.Translations[0].Text) == "" {
		return "", provider.Unavailable(t.Name(), fmt.Errorf("empty translation"))
	}

	translated := strings.TrimSpace(payload.Translations[0].Text)
	t.logger.Debug("Translated",
		zap.String("text", text),
		zap.String("translation", translated),
	)
	return translated, nil
}

func sourceCode(l domain.Lang) string {
	if l == domain.LangRussian {
		return "RU"
	}
	return "EN"
}

// targetCode uses EN-US because DeepL rejects the bare EN target
func targetCode(l domain.Lang) string {
	if l == domain.LangRussian {
		return "RU"
	}
	return "EN-US"
}
