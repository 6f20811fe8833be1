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
)

// Definition holds the dictionary text and its Russian translation.
// Either field may be empty.
type Definition struct {
	Original   string
	Translated string
}

// DefinitionService looks up English definitions and translates them
type DefinitionService struct {
	dictionary provider.Dictionary
	translator provider.Translator
	timeout    time.Duration
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewDefinitionService creates a new definition service. translator may be nil.
func NewDefinitionService(dictionary provider.Dictionary, translator provider.Translator, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *DefinitionService {
	return &DefinitionService{
		dictionary: dictionary,
		translator: translator,
		timeout:    timeout,
		metrics:    m,
		logger:     logger,
	}
}

// Resolve never fails: a missing or unreachable definition leaves Original empty
func (s *DefinitionService) Resolve(ctx context.Context, englishWord string) Definition {
	original, err := s.lookup(ctx, englishWord)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("Definition not found", zap.String("word", englishWord))
		} else {
			s.logger.Warn("Definition lookup failed", zap.String("word", englishWord), zap.Error(err))
		}
		return Definition{}
	}

	def := Definition{Original: original}
	if s.translator == nil {
		return def
	}

	translated, err := s.translate(ctx, original)
	if err != nil {
		s.logger.Warn("Definition translation failed",
			zap.String("word", englishWord),
			zap.String("provider", s.translator.Name()),
			zap.Error(err),
		)
		return def
	}
	def.Translated = translated
	return def
}

func (s *DefinitionService) lookup(ctx context.Context, word string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.dictionary.Lookup(callCtx, word)
	text := NormalizeDefinition(raw)
	if err == nil && text == "" {
		err = domain.ErrNotFound
	}

	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, domain.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveProvider(s.dictionary.Name(), outcome, time.Since(start))

	return text, err
}

func (s *DefinitionService) translate(ctx context.Context, text string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	translated, err := s.translator.Translate(callCtx, text, domain.LangEnglish, domain.LangRussian)
	translated = NormalizeDefinition(translated)
	if err == nil && translated == "" {
		err = errors.New("empty translation")
	}

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveProvider(s.translator.Name(), outcome, time.Since(start))

	return translated, err
}

// NormalizeDefinition collapses whitespace and trims trailing colons and periods
func NormalizeDefinition(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(strings.TrimRight(s, ":."))
}
