package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"wordbot/internal/domain"
	"wordbot/internal/metrics"
	"wordbot/internal/provider"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Translation is one provider's answer
type Translation struct {
	Provider string
	Text     string
}

// TranslationService asks every configured translator for a word
type TranslationService struct {
	translators []provider.Translator
	timeout     time.Duration
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewTranslationService creates a new translation service.
// Results keep the order of translators.
func NewTranslationService(translators []provider.Translator, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *TranslationService {
	return &TranslationService{
		translators: translators,
		timeout:     timeout,
		metrics:     m,
		logger:      logger,
	}
}

// Resolve queries all translators concurrently. Failed providers are dropped;
// an empty result means nobody could translate the word.
func (s *TranslationService) Resolve(ctx context.Context, word string, src, dest domain.Lang) []Translation {
	results := make([]string, len(s.translators))

	var g errgroup.Group
	for i, t := range s.translators {
		i, t := i, t
		g.Go(func() error {
			text, err := s.call(ctx, t, word, src, dest)
			if err != nil {
				s.logger.Warn("Translation failed",
					zap.String("provider", t.Name()),
					zap.String("word", word),
					zap.Error(err),
				)
				return nil
			}
			results[i] = text
			return nil
		})
	}
	g.Wait()

	var out []Translation
	for i, text := range results {
		if text != "" {
			out = append(out, Translation{Provider: s.translators[i].Name(), Text: text})
		}
	}
	return out
}

func (s *TranslationService) call(ctx context.Context, t provider.Translator, word string, src, dest domain.Lang) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := t.Translate(callCtx, word, src, dest)
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = errors.New("empty translation")
	}

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveProvider(t.Name(), outcome, time.Since(start))

	return text, err
}

// Distinct collapses translations whose texts match ignoring case and
// whitespace. The first occurrence wins.
func Distinct(translations []Translation) []Translation {
	seen := make(map[string]bool, len(translations))
	var out []Translation
	for _, t := range translations {
		key := foldKey(t.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
