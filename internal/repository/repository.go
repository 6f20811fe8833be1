package repository

import (
	"context"

	"wordbot/internal/domain"
)

// VocabularyRepository defines vocabulary store operations.
// Errors wrap domain.ErrUnauthorized, *domain.RejectedError or domain.ErrStoreUnavailable.
type VocabularyRepository interface {
	Save(ctx context.Context, entry domain.VocabularyEntry) error
	List(ctx context.Context, userID int64, theme string) ([]domain.VocabularyEntry, error)
}

// ChatRepository keeps track of chats that talked to the bot
type ChatRepository interface {
	Register(ctx context.Context, chatID int64) error
	ListChats(ctx context.Context) ([]int64, error)
}
