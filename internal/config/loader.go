package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	defaultWelcomeMessage = "Welcome to Eden Token Assistant!\n\n" +
		"I help you prepare, organize, and launch meme coin projects on pump.fun " +
		"in a secure, transparent, and user-controlled way.\n\n" +
		"What would you like to do?"

	defaultHelpMessage = "Eden Token Assistant Help\n\n" +
		"I help you launch meme coin projects on pump.fun safely:\n\n" +
		"1. Create a project with token details\n" +
		"2. Generate pump.fun-ready descriptions\n" +
		"3. Create Telegram communities\n" +
		"4. Get launch content templates\n" +
		"5. Launch manually on pump.fun\n\n" +
		"Security: I never request private keys or seed phrases. " +
		"All blockchain actions are performed by you directly on pump.fun.\n\n" +
		"Commands:\n" +
		"/start - Main menu\n" +
		"/help - This help message"
)

// LoadConfig loads and validates configuration from:
//  1. Default values
//  2. The YAML file at configPath (optional)
//  3. BOT_* environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults need an explicit binding for AutomaticEnv to
	// reach Unmarshal.
	_ = v.BindEnv("telegram.token")

	// Missing config file is fine, defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("database.path", "edenbot.db")

	v.SetDefault("http.enabled", true)
	v.SetDefault("http.addr", ":5000")

	v.SetDefault("moderation.captcha_default", true)
	v.SetDefault("moderation.scam_filter_default", true)
	v.SetDefault("moderation.scam_keywords", []string{
		"airdrop", "presale", "whitelist", "investment", "guaranteed", "profit", "buy now",
	})

	v.SetDefault("raid.allowed_hosts", []string{"twitter.com", "x.com"})

	v.SetDefault("scheduler.tasks.description_backfill.enabled", true)
	v.SetDefault("scheduler.tasks.description_backfill.schedule", "0 */30 * * * *")
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", false)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 0 4 * * *")

	v.SetDefault("messages.welcome", defaultWelcomeMessage)
	v.SetDefault("messages.help", defaultHelpMessage)
	v.SetDefault("messages.general_error", "An error occurred. Please try again later.")
	v.SetDefault("messages.database_unavailable", "Database not available. Please try again later.")
	v.SetDefault("messages.not_for_you", "This is not for you!")
}
