package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edenlabs/edenbot/internal/conversation"
)

// callbackChatID extracts the chat ID from a callback query, handling the
// inaccessible-message case.
func callbackChatID(cq *models.CallbackQuery) int64 {
	if cq.Message.Message != nil {
		return cq.Message.Message.Chat.ID
	}
	if cq.Message.InaccessibleMessage != nil {
		return cq.Message.InaccessibleMessage.Chat.ID
	}
	return 0
}

// callbackMessageID extracts the message ID of the message carrying the
// tapped button, or 0 when the message is inaccessible.
func callbackMessageID(cq *models.CallbackQuery) int {
	if cq.Message.Message != nil {
		return cq.Message.Message.ID
	}
	return 0
}

// trailingID parses the numeric suffix of callback payloads shaped like
// "view_project_42".
func trailingID(data string) (int64, error) {
	idx := strings.LastIndex(data, "_")
	if idx < 0 || idx == len(data)-1 {
		return 0, fmt.Errorf("callback payload %q has no ID suffix", data)
	}
	id, err := strconv.ParseInt(data[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("callback payload %q has invalid ID suffix: %w", data, err)
	}
	return id, nil
}

// answerCallback acknowledges a callback query, optionally with a visible
// notice. Failures are non-fatal; the caller already handled the action.
func answerCallback(ctx context.Context, b *tgbot.Bot, cq *models.CallbackQuery, text string, showAlert bool) {
	_, _ = b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: cq.ID,
		Text:            text,
		ShowAlert:       showAlert,
	})
}

// inlineKeyboard builds an inline keyboard markup from button rows.
func inlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// btn builds a single callback button.
func btn(label, data string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: label, CallbackData: data}
}

// urlBtn builds a single URL button.
func urlBtn(label, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: label, URL: url}
}

// sendReply delivers a conversation reply, converting its buttons to an
// inline keyboard.
func sendReply(ctx context.Context, b *tgbot.Bot, chatID int64, reply conversation.Reply) error {
	if reply.Text == "" {
		return nil
	}

	params := &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   reply.Text,
	}
	if len(reply.Buttons) > 0 {
		rows := make([][]models.InlineKeyboardButton, 0, len(reply.Buttons))
		for _, button := range reply.Buttons {
			rows = append(rows, []models.InlineKeyboardButton{{
				Text:         button.Label,
				CallbackData: button.Data,
				URL:          button.URL,
			}})
		}
		params.ReplyMarkup = inlineKeyboard(rows...)
	}

	_, err := b.SendMessage(ctx, params)
	return err
}

// valueOrNotSet renders an optional field for display.
func valueOrNotSet(s string) string {
	if s == "" {
		return "Not set"
	}
	return s
}

// truncate shortens s to maxLen runes for display in summaries, never
// splitting a multi-byte character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
