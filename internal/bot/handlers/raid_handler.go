package handlers

import (
	"context"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edenlabs/edenbot/internal/conversation"
	"github.com/edenlabs/edenbot/internal/database"
	"github.com/edenlabs/edenbot/internal/session"
)

// NewRaidManagerHandler returns a handler for raid_manager_* callbacks
// showing the raid menu for one project.
func NewRaidManagerHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "raid_manager")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		project, ok := resolveOwnedProject(ctx, b, deps, cq, log)
		if !ok {
			return
		}
		answerCallback(ctx, b, cq, "", false)

		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: callbackChatID(cq),
			Text:   fmt.Sprintf("📢 Raid Manager for %s\n\nOrganize Twitter raids to boost engagement.", project.TokenName),
			ReplyMarkup: inlineKeyboard(
				[]models.InlineKeyboardButton{btn("🆕 New Raid", fmt.Sprintf("new_raid_%d", project.ID))},
				[]models.InlineKeyboardButton{btn("⚡️ Active Raids", fmt.Sprintf("active_raids_%d", project.ID))},
				[]models.InlineKeyboardButton{btn("Back to Project", fmt.Sprintf("view_project_%d", project.ID))},
			),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send raid manager", "error", err, "project_id", project.ID)
		}
	}
}

// NewNewRaidHandler returns a handler for new_raid_* callbacks. It opens a
// raid conversation bound to the project, replacing any conversation the
// user already had in progress.
func NewNewRaidHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "new_raid")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		project, ok := resolveOwnedProject(ctx, b, deps, cq, log)
		if !ok {
			return
		}
		answerCallback(ctx, b, cq, "", false)

		result := conversation.StartRaid()
		sess := session.NewSession(cq.From.ID, session.FlowRaid, int(result.Next))
		sess.ProjectID = project.ID
		deps.Sessions.Put(sess)

		log.InfoContext(ctx, "Started raid conversation", "user_id", cq.From.ID, "project_id", project.ID)

		if err := sendReply(ctx, b, callbackChatID(cq), result.Reply); err != nil {
			log.ErrorContext(ctx, "Failed to send raid prompt", "error", err, "user_id", cq.From.ID)
		}
	}
}

// NewActiveRaidsHandler returns a handler for active_raids_* callbacks
// listing the project's active raids with completion controls.
func NewActiveRaidsHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "active_raids")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		project, ok := resolveOwnedProject(ctx, b, deps, cq, log)
		if !ok {
			return
		}
		answerCallback(ctx, b, cq, "", false)
		chatID := callbackChatID(cq)

		raids, err := deps.Store.ListRaidsByStatus(ctx, project.ID, database.RaidStatusActive)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list active raids", "error", err, "project_id", project.ID)
			_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{
				ChatID: chatID,
				Text:   deps.Config.Messages.DatabaseUnavailable,
			})
			return
		}

		if len(raids) == 0 {
			_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
				ChatID: chatID,
				Text:   "No active raids right now.",
				ReplyMarkup: inlineKeyboard(
					[]models.InlineKeyboardButton{btn("🆕 New Raid", fmt.Sprintf("new_raid_%d", project.ID))},
					[]models.InlineKeyboardButton{btn("Back to Project", fmt.Sprintf("view_project_%d", project.ID))},
				),
			})
			if err != nil {
				log.ErrorContext(ctx, "Failed to send empty raid list", "error", err, "project_id", project.ID)
			}
			return
		}

		for _, raid := range raids {
			_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
				ChatID: chatID,
				Text:   fmt.Sprintf("⚡️ Active raid\n\n%s\n%s", raid.Description, raid.TweetURL),
				ReplyMarkup: inlineKeyboard(
					[]models.InlineKeyboardButton{urlBtn("Open Tweet", raid.TweetURL)},
					[]models.InlineKeyboardButton{btn("✅ Complete Raid", fmt.Sprintf("complete_raid_%d", raid.ID))},
				),
			})
			if err != nil {
				log.ErrorContext(ctx, "Failed to send raid entry", "error", err, "raid_id", raid.ID)
			}
		}
	}
}

// NewCompleteRaidHandler returns a handler for complete_raid_* callbacks.
// The transition is one-way; repeating it reports the current state.
func NewCompleteRaidHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "complete_raid")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		raidID, err := trailingID(cq.Data)
		if err != nil {
			log.WarnContext(ctx, "Malformed raid callback", "error", err, "data", cq.Data)
			answerCallback(ctx, b, cq, deps.Config.Messages.GeneralError, true)
			return
		}

		changed, err := deps.Store.CompleteRaid(ctx, raidID)
		if err != nil {
			log.ErrorContext(ctx, "Failed to complete raid", "error", err, "raid_id", raidID)
			answerCallback(ctx, b, cq, deps.Config.Messages.GeneralError, true)
			return
		}
		if !changed {
			answerCallback(ctx, b, cq, "Raid is already completed.", true)
			return
		}
		answerCallback(ctx, b, cq, "Raid completed!", false)

		log.InfoContext(ctx, "Raid completed", "raid_id", raidID)

		messageID := callbackMessageID(cq)
		if messageID == 0 {
			return
		}
		_, _ = b.EditMessageReplyMarkup(ctx, &tgbot.EditMessageReplyMarkupParams{
			ChatID:      callbackChatID(cq),
			MessageID:   messageID,
			ReplyMarkup: inlineKeyboard(),
		})
	}
}

// advanceRaidFlow feeds one input to the raid conversation and acts on the
// result, mirroring advanceProjectFlow.
func advanceRaidFlow(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, chatID, userID int64, sess *session.Session, in conversation.Input) {
	log := deps.Logger.With("handler", "raid_flow")

	result := conversation.AdvanceRaid(conversation.Step(sess.Step), in, sess.Fields, deps.Config.Raid.AllowedHosts)

	if result.Done {
		finalizeRaid(ctx, b, deps, chatID, userID, sess)
		return
	}

	sess.Step = int(result.Next)
	deps.Sessions.Put(sess)

	if err := sendReply(ctx, b, chatID, result.Reply); err != nil {
		log.ErrorContext(ctx, "Failed to send raid prompt", "error", err, "user_id", userID)
	}
}

// finalizeRaid persists the raid, confirms to the organizer, and
// best-effort broadcasts the call to action to the project's linked group.
// A failed broadcast never rolls back the stored raid.
func finalizeRaid(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, chatID, userID int64, sess *session.Session) {
	log := deps.Logger.With("handler", "raid_flow")

	defer deps.Sessions.Delete(userID)

	raid := &database.Raid{
		ProjectID:   sess.ProjectID,
		TweetURL:    sess.Fields[conversation.FieldRaidURL],
		Description: sess.Fields[conversation.FieldRaidInstruction],
		Status:      database.RaidStatusActive,
	}

	if err := deps.Store.CreateRaid(ctx, raid); err != nil {
		log.ErrorContext(ctx, "Failed to create raid", "error", err, "project_id", sess.ProjectID)
		_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   deps.Config.Messages.DatabaseUnavailable,
		})
		return
	}

	log.InfoContext(ctx, "Raid created", "raid_id", raid.ID, "project_id", raid.ProjectID)

	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   "Raid created and announced! 🚨",
		ReplyMarkup: inlineKeyboard(
			[]models.InlineKeyboardButton{btn("⚡️ Active Raids", fmt.Sprintf("active_raids_%d", raid.ProjectID))},
			[]models.InlineKeyboardButton{btn("Back to Project", fmt.Sprintf("view_project_%d", raid.ProjectID))},
		),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send raid confirmation", "error", err, "raid_id", raid.ID)
	}

	broadcastRaid(ctx, b, deps, raid, log)
}

// broadcastRaid posts the raid call to action in the project's linked
// Telegram group, if one is linked.
func broadcastRaid(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, raid *database.Raid, log *slog.Logger) {
	project, err := deps.Store.GetProject(ctx, raid.ProjectID)
	if err != nil || project == nil {
		log.WarnContext(ctx, "Skipping raid broadcast, project unavailable", "error", err, "project_id", raid.ProjectID)
		return
	}
	if !project.TelegramGroupID.Valid {
		log.InfoContext(ctx, "Skipping raid broadcast, no linked group", "project_id", project.ID)
		return
	}

	_, err = b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: project.TelegramGroupID.Int64,
		Text:   fmt.Sprintf("🚨 **NEW TWITTER RAID!** 🚨\n\n%s\n\nLet's show some strength! 💪", raid.Description),
		ReplyMarkup: inlineKeyboard(
			[]models.InlineKeyboardButton{urlBtn("⚡️ GO RAID NOW", raid.TweetURL)},
		),
	})
	if err != nil {
		log.WarnContext(ctx, "Raid broadcast failed", "error", err, "raid_id", raid.ID, "group_id", project.TelegramGroupID.Int64)
	}
}
