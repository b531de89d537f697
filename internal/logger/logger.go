// Package logger provides structured logging functionality for EdenBot.
// It uses Go's slog package for logging with configurable levels and formats.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewLogger creates a new slog Logger with the specified level and format.
// If jsonOutput is true, logs will be formatted as JSON, otherwise as text.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// Middleware creates a logging middleware for the Telegram bot. It logs each
// incoming update with its type, chat, sender, and handling duration.
func Middleware(log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			startTime := time.Now()

			logEntry := log.With("update_id", update.ID)

			switch {
			case update.Message != nil:
				msg := update.Message
				logEntry = logEntry.With(
					"update_type", "message",
					"message_id", msg.ID,
					"chat_id", msg.Chat.ID,
					"chat_type", msg.Chat.Type,
				)
				if msg.From != nil {
					logEntry = logEntry.With("user_id", msg.From.ID)
				}
				if len(msg.NewChatMembers) > 0 {
					logEntry = logEntry.With("new_members", len(msg.NewChatMembers))
				} else {
					logEntry = logEntry.With("text_preview", truncateString(msg.Text, 50))
				}
			case update.CallbackQuery != nil:
				cq := update.CallbackQuery
				logEntry = logEntry.With(
					"update_type", "callback_query",
					"callback_query_id", cq.ID,
					"user_id", cq.From.ID,
					"data", cq.Data,
				)
				if cq.Message.Message != nil {
					logEntry = logEntry.With("chat_id", cq.Message.Message.Chat.ID)
				} else if cq.Message.InaccessibleMessage != nil {
					logEntry = logEntry.With("chat_id", cq.Message.InaccessibleMessage.Chat.ID)
				}
			default:
				logEntry = logEntry.With("update_type", "other")
			}

			logEntry.DebugContext(ctx, "Processing update")

			next(ctx, b, update)

			logEntry.DebugContext(ctx, "Finished processing update", "duration", time.Since(startTime))
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
