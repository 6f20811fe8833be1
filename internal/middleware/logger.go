package middleware

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RequestIDKey is the context key holding the id of the current update
const RequestIDKey = "request_id"

// Logger tags every update with a request id and logs how it was handled
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			requestID := uuid.NewString()
			c.Set(RequestIDKey, requestID)

			var chatID int64
			if chat := c.Chat(); chat != nil {
				chatID = chat.ID
			}

			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.Int64("chat_id", chatID),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Error("Update failed", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}
