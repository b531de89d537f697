package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewLinkHandler returns a handler for the /link command. Run inside a
// group by the project owner, it binds that group to the project so join
// challenges and the content filter apply there.
func NewLinkHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return linkHandler{deps}.Handle
}

type linkHandler struct {
	deps HandlerDeps
}

func (h linkHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "link")

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	reply := func(text string) {
		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: msg.Chat.ID, Text: text})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send link reply", "error", err, "chat_id", msg.Chat.ID)
		}
	}

	if msg.Chat.Type != models.ChatTypeGroup && msg.Chat.Type != models.ChatTypeSupergroup {
		reply("Run /link inside the group you want to protect.")
		return
	}

	parts := strings.Fields(msg.Text)
	if len(parts) != 2 {
		reply("Usage: /link <project_id>")
		return
	}
	projectID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		reply("Usage: /link <project_id>")
		return
	}

	project, err := h.deps.Store.GetProject(ctx, projectID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load project for linking", "error", err, "project_id", projectID)
		reply(h.deps.Config.Messages.DatabaseUnavailable)
		return
	}
	if project == nil {
		reply("Project not found.")
		return
	}

	owner, err := h.deps.Store.GetUserByTelegramID(ctx, msg.From.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve link sender", "error", err, "user_id", msg.From.ID)
		reply(h.deps.Config.Messages.DatabaseUnavailable)
		return
	}
	if owner == nil || owner.ID != project.OwnerID {
		reply(h.deps.Config.Messages.NotForYou)
		return
	}

	if err := h.deps.Store.LinkProjectGroup(ctx, project.ID, msg.Chat.ID); err != nil {
		log.ErrorContext(ctx, "Failed to link group", "error", err, "project_id", project.ID, "group_id", msg.Chat.ID)
		reply(h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Group linked to project", "project_id", project.ID, "group_id", msg.Chat.ID)
	reply(fmt.Sprintf("This group is now linked to %s ($%s). Moderation settings apply here.", project.TokenName, project.TokenSymbol))
}
