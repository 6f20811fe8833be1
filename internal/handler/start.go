package handler

import (
	"context"

	"wordbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	id := chatID(c)

	username := ""
	if sender := c.Sender(); sender != nil {
		username = sender.Username
	}
	h.logger.Info("User started bot",
		zap.Int64("chat_id", id),
		zap.String("username", username),
	)

	return h.process(context.Background(), domain.Event{Kind: domain.EventStart, ChatID: id}, true)
}
