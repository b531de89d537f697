// Package bot implements the core bot functionality, lifecycle management,
// and component orchestration for the EdenBot Telegram bot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/edenlabs/edenbot/internal/api"
	"github.com/edenlabs/edenbot/internal/config"
	"github.com/edenlabs/edenbot/internal/database"
)

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	db        *sqlx.DB
	store     database.Store
	tgBot     *tgbot.Bot
	scheduler *Scheduler
	apiServer *api.Server
}

// NewBot creates a new instance of the bot with all required dependencies.
// The API server is optional; pass nil when the query API is disabled.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	db *sqlx.DB,
	store database.Store,
	tgBot *tgbot.Bot,
	scheduler *Scheduler,
	apiServer *api.Server,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		db:        db,
		store:     store,
		tgBot:     tgBot,
		scheduler: scheduler,
		apiServer: apiServer,
	}
}

// Run starts the bot and all its components, handling graceful shutdown on
// context cancellation. It returns an error if any component fails during
// startup or execution.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	if b.apiServer != nil {
		g.Go(func() error {
			b.logger.Info("Starting query API server...", "addr", b.cfg.HTTP.Addr)

			errCh := make(chan error, 1)
			go func() {
				errCh <- b.apiServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					b.logger.Error("Query API server failed", "error", err)
					return fmt.Errorf("query api server failed: %w", err)
				}
				return nil
			case <-gCtx.Done():
			}

			b.logger.Info("Shutdown signal received, stopping query API server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := b.apiServer.Shutdown(shutdownCtx); err != nil {
				b.logger.Error("Error stopping query API server", "error", err)
			}
			return nil
		})
	}

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
