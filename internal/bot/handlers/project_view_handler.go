package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edenlabs/edenbot/internal/content"
	"github.com/edenlabs/edenbot/internal/database"
)

// NewViewProjectHandler returns a handler for view_project_* callbacks. It
// renders the project detail panel with its management controls.
func NewViewProjectHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "view_project")

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
			ChatID:      callbackChatID(cq),
			Text:        projectDetail(project),
			ReplyMarkup: projectKeyboard(project),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send project detail", "error", err, "project_id", project.ID)
		}
	}
}

// NewGenerateContentHandler returns a handler for generate_content_*
// callbacks. All three content pieces are derived on the spot from the
// stored project fields.
func NewGenerateContentHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "generate_content")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		project, ok := resolveOwnedProject(ctx, b, deps, cq, log)
		if !ok {
			return
		}
		answerCallback(ctx, b, cq, "Generating content...", false)

		var sb strings.Builder
		sb.WriteString("✨ Generated Content\n\n")
		sb.WriteString("📝 Pump.fun Description:\n")
		sb.WriteString(content.PumpFunDescription(project.Description, project.Website.String, project.Twitter.String))
		sb.WriteString("\n\n📣 Shill Message:\n")
		sb.WriteString(content.ShillMessage(project.TokenSymbol, project.Description, project.Twitter.String))
		sb.WriteString("\n\n🎺 Announcement:\n")
		sb.WriteString(content.Announcement(project.TokenName, project.TokenSymbol, project.Description))

		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: callbackChatID(cq),
			Text:   sb.String(),
			ReplyMarkup: inlineKeyboard(
				[]models.InlineKeyboardButton{btn("Back to Project", fmt.Sprintf("view_project_%d", project.ID))},
			),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send generated content", "error", err, "project_id", project.ID)
		}
	}
}

// NewLaunchHandler returns a handler for launch_* callbacks. It walks the
// owner through launching on pump.fun and offers the mark-as-launched
// control once they have done so.
func NewLaunchHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "launch")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		project, ok := resolveOwnedProject(ctx, b, deps, cq, log)
		if !ok {
			return
		}
		answerCallback(ctx, b, cq, "", false)

		if project.Status == database.ProjectStatusLaunched {
			_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{
				ChatID: callbackChatID(cq),
				Text:   fmt.Sprintf("%s is already launched! 🚀", project.TokenName),
			})
			return
		}

		description := project.PumpFunDescription.String
		if description == "" {
			description = content.PumpFunDescription(project.Description, project.Website.String, project.Twitter.String)
		}

		text := fmt.Sprintf(
			"🚀 Launch %s ($%s) on Pump.fun\n\n"+
				"1. Open pump.fun and click 'Create coin'\n"+
				"2. Use the name, symbol and logo from your project\n"+
				"3. Paste this description:\n\n%s\n\n"+
				"When your token is live, mark it as launched below.",
			project.TokenName, project.TokenSymbol, description,
		)

		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: callbackChatID(cq),
			Text:   text,
			ReplyMarkup: inlineKeyboard(
				[]models.InlineKeyboardButton{urlBtn("Open Pump.fun", "https://pump.fun")},
				[]models.InlineKeyboardButton{btn("✅ Mark as Launched", fmt.Sprintf("mark_launched_%d", project.ID))},
				[]models.InlineKeyboardButton{btn("Back to Project", fmt.Sprintf("view_project_%d", project.ID))},
			),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send launch instructions", "error", err, "project_id", project.ID)
		}
	}
}

// NewMarkLaunchedHandler returns a handler for mark_launched_* callbacks.
// The transition is one-way; repeating it reports the current state instead
// of failing.
func NewMarkLaunchedHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "mark_launched")

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		project, ok := resolveOwnedProject(ctx, b, deps, cq, log)
		if !ok {
			return
		}

		changed, err := deps.Store.MarkProjectLaunched(ctx, project.ID)
		if err != nil {
			log.ErrorContext(ctx, "Failed to mark project launched", "error", err, "project_id", project.ID)
			answerCallback(ctx, b, cq, deps.Config.Messages.GeneralError, true)
			return
		}
		if !changed {
			answerCallback(ctx, b, cq, "Project is already launched.", true)
			return
		}
		answerCallback(ctx, b, cq, "", false)

		log.InfoContext(ctx, "Project marked launched", "project_id", project.ID)

		_, err = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: callbackChatID(cq),
			Text:   fmt.Sprintf("🎉 %s ($%s) is now launched!\n\nShare the news:\n\n%s", project.TokenName, project.TokenSymbol, content.Announcement(project.TokenName, project.TokenSymbol, project.Description)),
			ReplyMarkup: inlineKeyboard(
				[]models.InlineKeyboardButton{btn("Back to Project", fmt.Sprintf("view_project_%d", project.ID))},
			),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send launch confirmation", "error", err, "project_id", project.ID)
		}
	}
}

// NewPoliceSettingsHandler returns a handler for police_settings_*
// callbacks showing the per-project moderation toggles.
func NewPoliceSettingsHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", "police_settings")

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
			ChatID:      callbackChatID(cq),
			Text:        policeSettingsText(project),
			ReplyMarkup: policeSettingsKeyboard(project),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send police settings", "error", err, "project_id", project.ID)
		}
	}
}

// NewToggleCaptchaHandler returns a handler for toggle_captcha_* callbacks.
// The toggle is its own inverse; the settings panel is redrawn in place.
func NewToggleCaptchaHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return newToggleHandler(deps, "toggle_captcha", func(p *database.Project) {
		p.CaptchaEnabled = !p.CaptchaEnabled
	})
}

// NewToggleScamFilterHandler returns a handler for toggle_scam_* callbacks.
func NewToggleScamFilterHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return newToggleHandler(deps, "toggle_scam", func(p *database.Project) {
		p.ScamFilterEnabled = !p.ScamFilterEnabled
	})
}

func newToggleHandler(deps HandlerDeps, name string, flip func(*database.Project)) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := deps.Logger.With("handler", name)

		cq := update.CallbackQuery
		if cq == nil {
			return
		}

		project, ok := resolveOwnedProject(ctx, b, deps, cq, log)
		if !ok {
			return
		}

		flip(project)
		if err := deps.Store.SetProjectModerationFlags(ctx, project.ID, project.CaptchaEnabled, project.ScamFilterEnabled); err != nil {
			log.ErrorContext(ctx, "Failed to update moderation flags", "error", err, "project_id", project.ID)
			answerCallback(ctx, b, cq, deps.Config.Messages.GeneralError, true)
			return
		}
		answerCallback(ctx, b, cq, "", false)

		log.InfoContext(ctx, "Moderation flags updated",
			"project_id", project.ID,
			"captcha_enabled", project.CaptchaEnabled,
			"scam_filter_enabled", project.ScamFilterEnabled)

		messageID := callbackMessageID(cq)
		if messageID == 0 {
			return
		}
		_, err := b.EditMessageText(ctx, &tgbot.EditMessageTextParams{
			ChatID:      callbackChatID(cq),
			MessageID:   messageID,
			Text:        policeSettingsText(project),
			ReplyMarkup: policeSettingsKeyboard(project),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to redraw police settings", "error", err, "project_id", project.ID)
		}
	}
}

// resolveOwnedProject loads the project named by the callback payload and
// verifies the tapping user owns it. On any failure it answers the callback
// with an alert and reports false.
func resolveOwnedProject(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, cq *models.CallbackQuery, log *slog.Logger) (*database.Project, bool) {
	projectID, err := trailingID(cq.Data)
	if err != nil {
		log.WarnContext(ctx, "Malformed project callback", "error", err, "data", cq.Data)
		answerCallback(ctx, b, cq, deps.Config.Messages.GeneralError, true)
		return nil, false
	}

	project, err := deps.Store.GetProject(ctx, projectID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load project", "error", err, "project_id", projectID)
		answerCallback(ctx, b, cq, deps.Config.Messages.DatabaseUnavailable, true)
		return nil, false
	}
	if project == nil {
		answerCallback(ctx, b, cq, "Project not found.", true)
		return nil, false
	}

	owner, err := deps.Store.GetUserByTelegramID(ctx, cq.From.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve callback sender", "error", err, "user_id", cq.From.ID)
		answerCallback(ctx, b, cq, deps.Config.Messages.DatabaseUnavailable, true)
		return nil, false
	}
	if owner == nil || owner.ID != project.OwnerID {
		answerCallback(ctx, b, cq, deps.Config.Messages.NotForYou, true)
		return nil, false
	}

	return project, true
}

func projectDetail(p *database.Project) string {
	twitter := "Not set"
	if p.Twitter.Valid && p.Twitter.String != "" {
		twitter = "@" + p.Twitter.String
	}
	group := "Not linked"
	if p.TelegramGroupID.Valid {
		group = fmt.Sprintf("%d", p.TelegramGroupID.Int64)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s ($%s)\n\n", p.TokenName, p.TokenSymbol)
	fmt.Fprintf(&sb, "Description: %s\n", truncate(p.Description, 200))
	fmt.Fprintf(&sb, "Website: %s\n", valueOrNotSet(p.Website.String))
	fmt.Fprintf(&sb, "Twitter: %s\n", twitter)
	fmt.Fprintf(&sb, "Group: %s\n", group)
	fmt.Fprintf(&sb, "Status: %s", p.Status)
	return sb.String()
}

func projectKeyboard(p *database.Project) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	if p.Status == database.ProjectStatusDraft {
		rows = append(rows, []models.InlineKeyboardButton{
			btn("🚀 Launch on Pump.fun", fmt.Sprintf("launch_%d", p.ID)),
		})
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{btn("✨ Generate Content", fmt.Sprintf("generate_content_%d", p.ID))},
		[]models.InlineKeyboardButton{btn("👮 Police Settings", fmt.Sprintf("police_settings_%d", p.ID))},
		[]models.InlineKeyboardButton{btn("📢 Raid Manager", fmt.Sprintf("raid_manager_%d", p.ID))},
		[]models.InlineKeyboardButton{btn("Back to My Projects", "my_projects")},
	)
	return inlineKeyboard(rows...)
}

func policeSettingsText(p *database.Project) string {
	return fmt.Sprintf(
		"👮 Police Settings for %s\n\nCaptcha on join: %s\nScam filter: %s\n\nThese apply to the linked Telegram group.",
		p.TokenName, onOff(p.CaptchaEnabled), onOff(p.ScamFilterEnabled),
	)
}

func policeSettingsKeyboard(p *database.Project) *models.InlineKeyboardMarkup {
	return inlineKeyboard(
		[]models.InlineKeyboardButton{btn(fmt.Sprintf("Captcha: %s", onOff(p.CaptchaEnabled)), fmt.Sprintf("toggle_captcha_%d", p.ID))},
		[]models.InlineKeyboardButton{btn(fmt.Sprintf("Scam Filter: %s", onOff(p.ScamFilterEnabled)), fmt.Sprintf("toggle_scam_%d", p.ID))},
		[]models.InlineKeyboardButton{btn("Back to Project", fmt.Sprintf("view_project_%d", p.ID))},
	)
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
