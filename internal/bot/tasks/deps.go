// Package tasks implements the scheduled background tasks of the bot:
// database maintenance and derived-content backfill.
package tasks

import (
	"log/slog"

	"github.com/edenlabs/edenbot/internal/config"
	"github.com/edenlabs/edenbot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
