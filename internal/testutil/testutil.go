package testutil

import (
	"fmt"

	"wordbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntry creates a test vocabulary entry with an English definition
func NewTestEntry(userID int64, wordEn, wordRu, definition string) domain.VocabularyEntry {
	return domain.NewVocabularyEntry(userID, wordEn, wordRu, definition, domain.DefinitionEnglish)
}

// NewTestVocabulary creates n distinct entries for userID
func NewTestVocabulary(userID int64, n int) []domain.VocabularyEntry {
	entries := make([]domain.VocabularyEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, NewTestEntry(userID,
			fmt.Sprintf("word%d", i),
			fmt.Sprintf("слово%d", i),
			fmt.Sprintf("definition number %d", i),
		))
	}
	return entries
}
