package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMainMenuHandler returns a handler for the Back to Menu button.
func NewMainMenuHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "main_menu")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}
		answerCallback(ctx, b, cq, "", false)

		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID:      callbackChatID(cq),
			Text:        "Eden Token Assistant\n\nWhat would you like to do?",
			ReplyMarkup: mainMenuKeyboard(),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send main menu", "error", err)
		}
	}
}

// NewMyProjectsHandler returns a handler for the My Projects button. It
// lists the sender's projects as view buttons.
func NewMyProjectsHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return myProjectsHandler{deps}.Handle
}

type myProjectsHandler struct {
	deps HandlerDeps
}

func (h myProjectsHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "my_projects")

	cq := update.CallbackQuery
	if cq == nil {
		return
	}
	answerCallback(ctx, b, cq, "", false)
	chatID := callbackChatID(cq)

	user, err := h.deps.Store.GetUserByTelegramID(ctx, cq.From.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to look up user", "error", err, "user_id", cq.From.ID)
		_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.DatabaseUnavailable,
		})
		return
	}
	if user == nil {
		_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   "You don't have any projects yet. Create one first!",
		})
		return
	}

	projects, err := h.deps.Store.GetProjectsByOwner(ctx, user.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list projects", "error", err, "user_id", user.ID)
		_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.DatabaseUnavailable,
		})
		return
	}

	if len(projects) == 0 {
		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   "You don't have any projects yet.",
			ReplyMarkup: inlineKeyboard(
				[]models.InlineKeyboardButton{btn("Create New Project", "new_project")},
				[]models.InlineKeyboardButton{btn("Back to Menu", "main_menu")},
			),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send empty project list", "error", err)
		}
		return
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(projects)+1)
	for _, p := range projects {
		label := fmt.Sprintf("%s (%s) - %s", p.TokenName, p.TokenSymbol, p.Status)
		rows = append(rows, []models.InlineKeyboardButton{
			btn(label, fmt.Sprintf("view_project_%d", p.ID)),
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{btn("Back to Menu", "main_menu")})

	_, err = b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Your Projects:",
		ReplyMarkup: inlineKeyboard(rows...),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send project list", "error", err)
	}
}
