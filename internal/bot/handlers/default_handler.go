package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edenlabs/edenbot/internal/conversation"
	"github.com/edenlabs/edenbot/internal/session"
)

// NewDefaultHandler returns the catch-all update handler. It routes join
// events to the challenge logic, group text through the content filter, and
// private messages into whichever conversation the sender has in progress.
// Session state takes precedence over everything else in private chats, so
// a mid-conversation reply is always treated as flow input.
func NewDefaultHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return defaultHandler{deps}.Handle
}

type defaultHandler struct {
	deps HandlerDeps
}

func (h defaultHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if len(msg.NewChatMembers) > 0 {
		handleMemberJoin(ctx, b, h.deps, msg)
		return
	}

	switch msg.Chat.Type {
	case models.ChatTypeGroup, models.ChatTypeSupergroup:
		filterGroupMessage(ctx, b, h.deps, msg)
	case models.ChatTypePrivate:
		h.dispatchPrivate(ctx, b, msg)
	}
}

func (h defaultHandler) dispatchPrivate(ctx context.Context, b *tgbot.Bot, msg *models.Message) {
	log := h.deps.Logger.With("handler", "default")

	if msg.From == nil {
		return
	}

	sess, ok := h.deps.Sessions.Get(msg.From.ID)
	if !ok {
		log.DebugContext(ctx, "Private message outside any conversation", "user_id", msg.From.ID)
		return
	}

	in := conversation.Input{Text: msg.Text}
	if len(msg.Photo) > 0 {
		// Telegram orders photo sizes smallest first.
		in.PhotoFileID = msg.Photo[len(msg.Photo)-1].FileID
	}

	switch sess.Flow {
	case session.FlowProject:
		advanceProjectFlow(ctx, b, h.deps, msg.Chat.ID, msg.From.ID, sess, in)
	case session.FlowRaid:
		advanceRaidFlow(ctx, b, h.deps, msg.Chat.ID, msg.From.ID, sess, in)
	default:
		log.WarnContext(ctx, "Session with unknown flow", "user_id", msg.From.ID, "flow", sess.Flow)
		h.deps.Sessions.Delete(msg.From.ID)
	}
}
