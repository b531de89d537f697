package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edenlabs/edenbot/internal/content"
	"github.com/edenlabs/edenbot/internal/conversation"
	"github.com/edenlabs/edenbot/internal/database"
	"github.com/edenlabs/edenbot/internal/session"
)

// NewNewProjectHandler returns a handler for the Create New Project button.
// It opens a fresh project conversation, replacing any conversation the
// user already had in progress.
func NewNewProjectHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "new_project")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}
		answerCallback(ctx, b, cq, "", false)

		result := conversation.StartProject()
		deps.Sessions.Put(session.NewSession(cq.From.ID, session.FlowProject, int(result.Next)))

		log.InfoContext(ctx, "Started project conversation", "user_id", cq.From.ID)

		if err := sendReply(ctx, b, callbackChatID(cq), result.Reply); err != nil {
			log.ErrorContext(ctx, "Failed to send project prompt", "error", err, "user_id", cq.From.ID)
		}
	}
}

// NewProjectSkipHandler returns a handler for the skip controls of the
// project conversation (skip_logo, skip_website, skip_twitter). The skip is
// fed to the flow as an explicit empty value for the current step.
func NewProjectSkipHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "project_skip")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}
		answerCallback(ctx, b, cq, "", false)

		sess, ok := deps.Sessions.Get(cq.From.ID)
		if !ok || sess.Flow != session.FlowProject {
			log.DebugContext(ctx, "Skip pressed without active project conversation", "user_id", cq.From.ID, "data", cq.Data)
			return
		}

		advanceProjectFlow(ctx, b, deps, callbackChatID(cq), cq.From.ID, sess, conversation.Input{Skip: true})
	}
}

// advanceProjectFlow feeds one input to the project conversation and acts on
// the result: persisting the moved session and sending the next prompt, or
// finalizing the flow when it completes.
func advanceProjectFlow(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, chatID, userID int64, sess *session.Session, in conversation.Input) {
	log := deps.Logger.With("handler", "project_flow")

	result := conversation.AdvanceProject(conversation.Step(sess.Step), in, sess.Fields)

	if result.Done {
		finalizeProject(ctx, b, deps, chatID, userID, sess)
		return
	}

	sess.Step = int(result.Next)
	deps.Sessions.Put(sess)

	if err := sendReply(ctx, b, chatID, result.Reply); err != nil {
		log.ErrorContext(ctx, "Failed to send project prompt", "error", err, "user_id", userID)
	}
}

// finalizeProject persists the accumulated project, derives and stores its
// marketing description, and reports the result. The session is discarded
// in every outcome so a storage failure never traps the user in a dead
// conversation.
func finalizeProject(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, chatID, userID int64, sess *session.Session) {
	log := deps.Logger.With("handler", "project_flow")

	defer deps.Sessions.Delete(userID)

	user, err := deps.Store.GetOrCreateUser(ctx, userID, "", "", "")
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve owner on project finalize", "error", err, "user_id", userID)
		_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   deps.Config.Messages.DatabaseUnavailable,
		})
		return
	}

	project := &database.Project{
		OwnerID:           user.ID,
		TokenName:         sess.Fields[conversation.FieldTokenName],
		TokenSymbol:       sess.Fields[conversation.FieldTokenSymbol],
		Description:       sess.Fields[conversation.FieldDescription],
		LogoFileID:        database.NullStringFrom(sess.Fields[conversation.FieldLogoFileID]),
		Website:           database.NullStringFrom(sess.Fields[conversation.FieldWebsite]),
		Twitter:           database.NullStringFrom(sess.Fields[conversation.FieldTwitter]),
		Status:            database.ProjectStatusDraft,
		CaptchaEnabled:    deps.Config.Moderation.CaptchaDefault,
		ScamFilterEnabled: deps.Config.Moderation.ScamFilterDefault,
	}

	if err := deps.Store.CreateProject(ctx, project); err != nil {
		log.ErrorContext(ctx, "Failed to create project", "error", err, "user_id", userID)
		_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   deps.Config.Messages.DatabaseUnavailable,
		})
		return
	}

	// Derived content; the backfill task recovers it if this write is lost.
	pumpFun := content.PumpFunDescription(project.Description, project.Website.String, project.Twitter.String)
	if err := deps.Store.UpdateProjectPumpFunDescription(ctx, project.ID, pumpFun); err != nil {
		log.WarnContext(ctx, "Failed to store derived description", "error", err, "project_id", project.ID)
	}

	log.InfoContext(ctx, "Project created", "project_id", project.ID, "owner_id", user.ID, "symbol", project.TokenSymbol)

	_, err = b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        projectCreatedSummary(project),
		ReplyMarkup: projectCreatedKeyboard(project.ID),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send project summary", "error", err, "project_id", project.ID)
	}
}

// projectCreatedKeyboard offers every next action on a freshly created
// project.
func projectCreatedKeyboard(projectID int64) *models.InlineKeyboardMarkup {
	return inlineKeyboard(
		[]models.InlineKeyboardButton{btn("View Project", fmt.Sprintf("view_project_%d", projectID))},
		[]models.InlineKeyboardButton{btn("✨ Generate Content", fmt.Sprintf("generate_content_%d", projectID))},
		[]models.InlineKeyboardButton{btn("👮 Police Settings", fmt.Sprintf("police_settings_%d", projectID))},
		[]models.InlineKeyboardButton{btn("📢 Raid Manager", fmt.Sprintf("raid_manager_%d", projectID))},
		[]models.InlineKeyboardButton{btn("🚀 Launch on Pump.fun", fmt.Sprintf("launch_%d", projectID))},
		[]models.InlineKeyboardButton{btn("Back to Menu", "main_menu")},
	)
}

func projectCreatedSummary(p *database.Project) string {
	twitter := "Not set"
	if p.Twitter.Valid && p.Twitter.String != "" {
		twitter = "@" + p.Twitter.String
	}

	var sb strings.Builder
	sb.WriteString("🎉 Project Created!\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", p.TokenName)
	fmt.Fprintf(&sb, "Symbol: $%s\n", p.TokenSymbol)
	fmt.Fprintf(&sb, "Description: %s\n", truncate(p.Description, 200))
	fmt.Fprintf(&sb, "Website: %s\n", valueOrNotSet(p.Website.String))
	fmt.Fprintf(&sb, "Twitter: %s\n", twitter)
	fmt.Fprintf(&sb, "Status: %s", p.Status)
	return sb.String()
}
