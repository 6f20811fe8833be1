package handler

import (
	"fmt"
	"os"

	"wordbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Deliver sends replies to chatID in order and stops at the first failure
func (h *Handler) Deliver(chatID int64, replies []domain.Reply) error {
	chat := &tele.Chat{ID: chatID}
	for i, reply := range replies {
		if err := h.send(chat, reply); err != nil {
			h.logger.Error("Failed to send reply",
				zap.Int64("chat_id", chatID),
				zap.Int("index", i),
				zap.Error(err),
			)
			return fmt.Errorf("send reply %d to chat %d: %w", i, chatID, err)
		}
	}
	return nil
}

func (h *Handler) send(chat *tele.Chat, reply domain.Reply) error {
	var opts []interface{}
	if markup := optionsMarkup(reply.Options); markup != nil {
		opts = append(opts, markup)
	}

	if reply.Image != "" {
		if _, err := os.Stat(reply.Image); err == nil {
			photo := &tele.Photo{File: tele.FromDisk(reply.Image), Caption: reply.Text}
			_, err := h.sender.Send(chat, photo, opts...)
			return err
		}
		h.logger.Debug("Image not found, sending text", zap.String("image", reply.Image))
	}

	_, err := h.sender.Send(chat, reply.Text, opts...)
	return err
}

// optionsMarkup lays out one inline button per row
func optionsMarkup(options []domain.Option) *tele.ReplyMarkup {
	if len(options) == 0 {
		return nil
	}

	rows := make([][]tele.InlineButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, []tele.InlineButton{{Text: opt.Label, Data: opt.Value}})
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}
