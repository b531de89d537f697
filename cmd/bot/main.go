// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edenlabs/edenbot/internal/api"
	"github.com/edenlabs/edenbot/internal/bot"
	"github.com/edenlabs/edenbot/internal/bot/handlers"
	"github.com/edenlabs/edenbot/internal/bot/tasks"
	"github.com/edenlabs/edenbot/internal/config"
	"github.com/edenlabs/edenbot/internal/database"
	"github.com/edenlabs/edenbot/internal/logger"
	"github.com/edenlabs/edenbot/internal/session"
	"github.com/edenlabs/edenbot/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// database, Telegram bot, scheduler, query API), handles graceful shutdown,
// and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	sessions := session.NewMemoryStore()

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Store:    store,
		Sessions: sessions,
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	// Retrieve bot info and store it in the config for runtime use. The
	// moderation logic needs it to avoid challenging the bot itself.
	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	if _, err := tg.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "Open the main menu"},
			{Command: "help", Description: "Show help"},
			{Command: "link", Description: "Link this group to a project"},
		},
	}); err != nil {
		log.Warn("Failed to set bot commands", "error", err)
	}

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllHandlers(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var apiServer *api.Server
	if cfg.HTTP.Enabled {
		apiServer = api.NewServer(cfg.HTTP.Addr, store, log)
	}

	app := bot.NewBot(log, cfg, db, store, tg, sched, apiServer)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
