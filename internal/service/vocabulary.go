package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordbot/internal/domain"
	"wordbot/internal/metrics"
	"wordbot/internal/repository"

	"go.uber.org/zap"
)

// VocabularyService hands finished entries to the store
type VocabularyService struct {
	vocabRepo repository.VocabularyRepository
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(vocabRepo repository.VocabularyRepository, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{
		vocabRepo: vocabRepo,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
	}
}

// Submit makes exactly one store call for entry. Failures are returned to the
// caller untouched so it can warn the user; nothing is retried.
func (s *VocabularyService) Submit(ctx context.Context, entry domain.VocabularyEntry) error {
	if entry.WordEn == "" || entry.WordRu == "" {
		return fmt.Errorf("word and translation cannot be empty")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.vocabRepo.Save(callCtx, entry)

	var rejected *domain.RejectedError
	switch {
	case err == nil:
		s.metrics.IncStore("save", metrics.OutcomeOK)
		s.logger.Info("Entry saved",
			zap.Int64("user_id", entry.UserID),
			zap.String("word_en", entry.WordEn),
			zap.String("definition_lang", string(entry.DefinitionLang)),
		)
		return nil
	case errors.As(err, &rejected), errors.Is(err, domain.ErrUnauthorized):
		s.metrics.IncStore("save", metrics.OutcomeRejected)
	default:
		s.metrics.IncStore("save", metrics.OutcomeError)
	}

	s.logger.Error("Failed to save entry",
		zap.Int64("user_id", entry.UserID),
		zap.String("word_en", entry.WordEn),
		zap.Error(err),
	)
	return err
}
