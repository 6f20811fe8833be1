package handler

import (
	"context"

	"wordbot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleText passes free text (word lists, custom values) to the session
func (h *Handler) handleText(c tele.Context) error {
	ev := domain.Event{
		Kind:   domain.EventText,
		ChatID: chatID(c),
		Text:   c.Text(),
	}
	return h.process(context.Background(), ev, true)
}
