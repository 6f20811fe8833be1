package service

import (
	"context"
	"fmt"
	"time"

	"wordbot/internal/domain"
	"wordbot/internal/repository"

	"go.uber.org/zap"
)

// Reminder moves an idle chat to the quiz offer and returns the prompt
type Reminder interface {
	Remind(ctx context.Context, chatID int64) ([]domain.Reply, error)
}

// Deliverer sends replies to a chat outside of an update
type Deliverer interface {
	Deliver(chatID int64, replies []domain.Reply) error
}

// ReminderService sends the daily quiz reminder
type ReminderService struct {
	chatRepo  repository.ChatRepository
	vocabRepo repository.VocabularyRepository
	reminder  Reminder
	deliverer Deliverer
	logger    *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(chatRepo repository.ChatRepository, vocabRepo repository.VocabularyRepository, reminder Reminder, deliverer Deliverer, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		chatRepo:  chatRepo,
		vocabRepo: vocabRepo,
		reminder:  reminder,
		deliverer: deliverer,
		logger:    logger,
	}
}

// SendReminders reminds every registered chat that has saved words.
// Chats in the middle of a flow are left alone.
func (s *ReminderService) SendReminders(ctx context.Context) (int, error) {
	chats, err := s.chatRepo.ListChats(ctx)
	if err != nil {
		return 0, fmt.Errorf("list chats: %w", err)
	}

	s.logger.Info("Sending reminders", zap.Int("chats", len(chats)))

	sent := 0
	for _, chatID := range chats {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		entries, err := s.vocabRepo.List(ctx, chatID, domain.DefaultTheme)
		if err != nil {
			s.logger.Warn("Failed to check vocabulary", zap.Int64("chat_id", chatID), zap.Error(err))
			continue
		}
		if len(entries) == 0 {
			continue
		}

		replies, err := s.reminder.Remind(ctx, chatID)
		if err != nil {
			s.logger.Warn("Failed to prepare reminder", zap.Int64("chat_id", chatID), zap.Error(err))
			continue
		}
		if len(replies) == 0 {
			continue
		}

		if err := s.deliverer.Deliver(chatID, replies); err != nil {
			s.logger.Warn("Failed to deliver reminder", zap.Int64("chat_id", chatID), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("Reminders sent", zap.Int("sent", sent))
	return sent, nil
}

// NextRun returns the first moment after now at hour:minute UTC
func NextRun(now time.Time, hour, minute int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
