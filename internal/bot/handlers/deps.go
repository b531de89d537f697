// Package handlers contains Telegram bot command, callback, and message
// handlers, along with their registration logic.
package handlers

import (
	"log/slog"

	"github.com/edenlabs/edenbot/internal/config"
	"github.com/edenlabs/edenbot/internal/database"
	"github.com/edenlabs/edenbot/internal/session"
)

// HandlerDeps provides dependencies for Telegram handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Sessions session.Store
}
