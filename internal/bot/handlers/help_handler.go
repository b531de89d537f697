package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "help")

		if update.Message == nil {
			return
		}

		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        deps.Config.Messages.Help,
			ReplyMarkup: inlineKeyboard([]models.InlineKeyboardButton{btn("Back to Menu", "main_menu")}),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send help message", "error", err, "chat_id", update.Message.Chat.ID)
		}
	}
}

// NewHelpCallbackHandler returns a handler for the Help menu button.
func NewHelpCallbackHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "help_callback")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}
		answerCallback(ctx, b, cq, "", false)

		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID:      callbackChatID(cq),
			Text:        deps.Config.Messages.Help,
			ReplyMarkup: inlineKeyboard([]models.InlineKeyboardButton{btn("Back to Menu", "main_menu")}),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send help message", "error", err)
		}
	}
}
