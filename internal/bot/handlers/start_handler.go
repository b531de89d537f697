package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command. It resolves the
// sender to a User record (created lazily on first interaction) and shows
// the main menu.
func NewStartHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return startHandler{deps}.Handle
}

type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	from := update.Message.From
	log.InfoContext(ctx, "Handling /start command", "chat_id", update.Message.Chat.ID, "user_id", from.ID)

	if _, err := h.deps.Store.GetOrCreateUser(ctx, from.ID, from.Username, from.FirstName, from.LastName); err != nil {
		log.WarnContext(ctx, "Failed to resolve user on /start", "error", err, "user_id", from.ID)
	}

	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.deps.Config.Messages.Welcome,
		ReplyMarkup: mainMenuKeyboard(),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", update.Message.Chat.ID)
	}
}

func mainMenuKeyboard() *models.InlineKeyboardMarkup {
	return inlineKeyboard(
		[]models.InlineKeyboardButton{btn("Create New Project", "new_project")},
		[]models.InlineKeyboardButton{btn("My Projects", "my_projects")},
		[]models.InlineKeyboardButton{btn("Help", "help")},
	)
}
