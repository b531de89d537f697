// Package config provides configuration loading, validation, and management
// for the EdenBot application. It handles reading from YAML files, applying
// BOT_* environment variable overrides, setting default values, and
// validating configuration parameters.
package config

import (
	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration parameters for all components
// of the EdenBot system: logging, Telegram transport, database, query API,
// moderation, raids, scheduled tasks, and user-facing messages.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Database   DatabaseConfig   `mapstructure:"database"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Raid       RaidConfig       `mapstructure:"raid"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Messages   MessagesConfig   `mapstructure:"messages"`
}

// LogConfig controls log level and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Telegram bot settings. BotInfo is populated at
// startup from GetMe and is not read from the config file.
type TelegramConfig struct {
	Token   string       `mapstructure:"token" validate:"required"`
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds SQLite database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// HTTPConfig holds settings for the read-only query API server.
type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required"`
}

// ModerationConfig fixes the default moderation flag values applied to new
// projects and the keyword set scanned by the content filter. The defaults
// are deliberately explicit configuration rather than hardcoded assumptions.
type ModerationConfig struct {
	CaptchaDefault    bool     `mapstructure:"captcha_default"`
	ScamFilterDefault bool     `mapstructure:"scam_filter_default"`
	ScamKeywords      []string `mapstructure:"scam_keywords" validate:"min=1,dive,required"`
}

// RaidConfig holds raid campaign settings. AllowedHosts are the URL host
// markers accepted when collecting a raid link.
type RaidConfig struct {
	AllowedHosts []string `mapstructure:"allowed_hosts" validate:"min=1,dive,required"`
}

// SchedulerConfig holds the scheduled task configuration keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a single scheduled task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds configurable user-facing message templates.
type MessagesConfig struct {
	Welcome             string `mapstructure:"welcome" validate:"required"`
	Help                string `mapstructure:"help" validate:"required"`
	GeneralError        string `mapstructure:"general_error" validate:"required"`
	DatabaseUnavailable string `mapstructure:"database_unavailable" validate:"required"`
	NotForYou           string `mapstructure:"not_for_you" validate:"required"`
}
