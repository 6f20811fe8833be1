package handler

import (
	"context"

	"wordbot/internal/domain"
	"wordbot/internal/repository"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Processor turns an inbound event into replies
type Processor interface {
	Handle(ctx context.Context, ev domain.Event) []domain.Reply
}

// Sender is the part of *tele.Bot used to deliver messages
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler translates Telegram updates into session events and sends the replies back
type Handler struct {
	bot      *tele.Bot
	sender   Sender
	machine  Processor
	chatRepo repository.ChatRepository
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	machine Processor,
	chatRepo repository.ChatRepository,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:      bot,
		sender:   bot,
		machine:  machine,
		chatRepo: chatRepo,
		logger:   logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Every inline button carries raw callback data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// process registers the chat when asked, runs the event and sends the replies
func (h *Handler) process(ctx context.Context, ev domain.Event, register bool) error {
	if register {
		if err := h.chatRepo.Register(ctx, ev.ChatID); err != nil {
			h.logger.Warn("Failed to register chat", zap.Int64("chat_id", ev.ChatID), zap.Error(err))
		}
	}

	replies := h.machine.Handle(ctx, ev)
	return h.Deliver(ev.ChatID, replies)
}

// chatID prefers the chat of the update and falls back to the sender
func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}
