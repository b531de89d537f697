package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/edenlabs/edenbot/internal/moderation"
)

// RegisteredHandler represents a command or callback handler with its match
// rule and middleware. It encapsulates all information needed to register
// and document a handler.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllHandlers initializes and returns a map of all bot commands and
// callback handlers. Callbacks named like "view_project_42" carry a record
// ID suffix and register with a prefix match; fixed-payload callbacks
// register with an exact match.
func RegisterAllHandlers(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	command := func(pattern string, handler tgbot.HandlerFunc) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Handler:     handler,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
		}
	}
	callbackExact := func(pattern string, handler tgbot.HandlerFunc) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeCallbackQueryData,
			Pattern:     pattern,
			Handler:     handler,
			MatchType:   tgbot.MatchTypeExact,
		}
	}
	callbackPrefix := func(pattern string, handler tgbot.HandlerFunc) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeCallbackQueryData,
			Pattern:     pattern,
			Handler:     handler,
			MatchType:   tgbot.MatchTypePrefix,
		}
	}

	handlers["/start"] = command("start", NewStartHandler(deps))
	handlers["/help"] = command("help", NewHelpHandler(deps))
	handlers["/link"] = command("link", NewLinkHandler(deps))

	handlers["main_menu"] = callbackExact("main_menu", NewMainMenuHandler(deps))
	handlers["help_menu"] = callbackExact("help", NewHelpCallbackHandler(deps))
	handlers["my_projects"] = callbackExact("my_projects", NewMyProjectsHandler(deps))
	handlers["new_project"] = callbackExact("new_project", NewNewProjectHandler(deps))

	skipHandler := NewProjectSkipHandler(deps)
	handlers["skip_logo"] = callbackExact("skip_logo", skipHandler)
	handlers["skip_website"] = callbackExact("skip_website", skipHandler)
	handlers["skip_twitter"] = callbackExact("skip_twitter", skipHandler)

	handlers["view_project"] = callbackPrefix("view_project_", NewViewProjectHandler(deps))
	handlers["generate_content"] = callbackPrefix("generate_content_", NewGenerateContentHandler(deps))
	handlers["launch"] = callbackPrefix("launch_", NewLaunchHandler(deps))
	handlers["mark_launched"] = callbackPrefix("mark_launched_", NewMarkLaunchedHandler(deps))
	handlers["police_settings"] = callbackPrefix("police_settings_", NewPoliceSettingsHandler(deps))
	handlers["toggle_captcha"] = callbackPrefix("toggle_captcha_", NewToggleCaptchaHandler(deps))
	handlers["toggle_scam"] = callbackPrefix("toggle_scam_", NewToggleScamFilterHandler(deps))

	handlers["raid_manager"] = callbackPrefix("raid_manager_", NewRaidManagerHandler(deps))
	handlers["new_raid"] = callbackPrefix("new_raid_", NewNewRaidHandler(deps))
	handlers["active_raids"] = callbackPrefix("active_raids_", NewActiveRaidsHandler(deps))
	handlers["complete_raid"] = callbackPrefix("complete_raid_", NewCompleteRaidHandler(deps))

	handlers["captcha_solve"] = callbackPrefix(moderation.CaptchaCallbackPrefix, NewCaptchaSolveHandler(deps))

	return handlers
}
