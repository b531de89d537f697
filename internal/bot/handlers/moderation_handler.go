package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edenlabs/edenbot/internal/moderation"
)

// mutedPermissions is applied to a joining member until they pass the join
// challenge.
var mutedPermissions = &models.ChatPermissions{}

// restoredPermissions is applied after a member passes the challenge.
var restoredPermissions = &models.ChatPermissions{
	CanSendMessages:       true,
	CanSendAudios:         true,
	CanSendDocuments:      true,
	CanSendPhotos:         true,
	CanSendVideos:         true,
	CanSendVideoNotes:     true,
	CanSendVoiceNotes:     true,
	CanSendPolls:          true,
	CanSendOtherMessages:  true,
	CanAddWebPagePreviews: true,
	CanInviteUsers:        true,
}

// handleMemberJoin challenges members joining a captcha-moderated group:
// the member is muted and handed a verification button carrying their own
// identity. Bots are never challenged. Failures are logged and swallowed so
// one member's error never blocks the rest of the batch.
func handleMemberJoin(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, msg *models.Message) {
	log := deps.Logger.With("handler", "member_join")

	project, err := deps.Store.GetProjectByGroupID(ctx, msg.Chat.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve group project", "error", err, "group_id", msg.Chat.ID)
		return
	}
	if project == nil || !project.CaptchaEnabled {
		return
	}

	for _, member := range msg.NewChatMembers {
		if member.IsBot {
			continue
		}
		if deps.Config.Telegram.BotInfo != nil && member.ID == deps.Config.Telegram.BotInfo.ID {
			continue
		}

		_, err := b.RestrictChatMember(ctx, &tgbot.RestrictChatMemberParams{
			ChatID:      msg.Chat.ID,
			UserID:      member.ID,
			Permissions: mutedPermissions,
		})
		if err != nil {
			log.WarnContext(ctx, "Failed to mute joining member", "error", err, "group_id", msg.Chat.ID, "user_id", member.ID)
			continue
		}

		_, err = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   moderation.ChallengeMessage(member.FirstName),
			ReplyMarkup: inlineKeyboard(
				[]models.InlineKeyboardButton{btn("✅ I'm human", moderation.CaptchaPayload(member.ID))},
			),
		})
		if err != nil {
			log.WarnContext(ctx, "Failed to post join challenge", "error", err, "group_id", msg.Chat.ID, "user_id", member.ID)
			continue
		}

		log.InfoContext(ctx, "Join challenge posted", "group_id", msg.Chat.ID, "user_id", member.ID)
	}
}

// NewCaptchaSolveHandler returns a handler for captcha_solve_* callbacks.
// Only the challenged member can resolve their own challenge; anyone else
// gets a rejection alert.
func NewCaptchaSolveHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "captcha_solve")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		targetID, err := moderation.ParseCaptchaPayload(cq.Data)
		if err != nil {
			log.WarnContext(ctx, "Malformed captcha callback", "error", err, "data", cq.Data)
			answerCallback(ctx, b, cq, deps.Config.Messages.GeneralError, true)
			return
		}

		if !moderation.CanSolve(targetID, cq.From.ID) {
			answerCallback(ctx, b, cq, deps.Config.Messages.NotForYou, true)
			return
		}

		chatID := callbackChatID(cq)

		_, err = b.RestrictChatMember(ctx, &tgbot.RestrictChatMemberParams{
			ChatID:      chatID,
			UserID:      targetID,
			Permissions: restoredPermissions,
		})
		if err != nil {
			// Surfaces in the logs only; the member just sees the
			// challenge stay up and can tap again.
			log.ErrorContext(ctx, "Failed to restore member permissions", "error", err, "group_id", chatID, "user_id", targetID)
			answerCallback(ctx, b, cq, "", false)
			return
		}
		answerCallback(ctx, b, cq, "Verified! You can speak now.", false)

		log.InfoContext(ctx, "Join challenge passed", "group_id", chatID, "user_id", targetID)

		if messageID := callbackMessageID(cq); messageID != 0 {
			_, _ = b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
				ChatID:    chatID,
				MessageID: messageID,
			})
		}
	}
}

// filterGroupMessage applies the content filter to a group message. It
// reports whether the message was consumed (deleted or attempted). A failed
// delete still posts no notice; failures are logged and swallowed.
func filterGroupMessage(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, msg *models.Message) bool {
	log := deps.Logger.With("handler", "scam_filter")

	if msg.Text == "" || msg.From == nil {
		return false
	}

	project, err := deps.Store.GetProjectByGroupID(ctx, msg.Chat.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve group project", "error", err, "group_id", msg.Chat.ID)
		return false
	}
	if project == nil || !project.ScamFilterEnabled {
		return false
	}

	keyword, matched := moderation.MatchKeyword(msg.Text, deps.Config.Moderation.ScamKeywords)
	if !matched {
		return false
	}

	log.InfoContext(ctx, "Scam keyword matched",
		"group_id", msg.Chat.ID,
		"user_id", msg.From.ID,
		"keyword", keyword,
		"project_id", project.ID)

	ok, err := b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	if err != nil || !ok {
		log.WarnContext(ctx, "Failed to delete flagged message", "error", err, "group_id", msg.Chat.ID, "message_id", msg.ID)
		return true
	}

	_, err = b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   moderation.RemovalNotice(msg.From.FirstName),
	})
	if err != nil {
		log.WarnContext(ctx, "Failed to post removal notice", "error", err, "group_id", msg.Chat.ID)
	}
	return true
}
