package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edenlabs/edenbot/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "12345:testtoken")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig with missing file: %v", err)
	}

	if cfg.Telegram.Token != "12345:testtoken" {
		t.Errorf("token = %q, want env value", cfg.Telegram.Token)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.Level)
	}
	if !cfg.Moderation.CaptchaDefault || !cfg.Moderation.ScamFilterDefault {
		t.Error("moderation defaults not enabled")
	}
	if len(cfg.Moderation.ScamKeywords) == 0 {
		t.Error("no default scam keywords")
	}
	if len(cfg.Raid.AllowedHosts) != 2 {
		t.Errorf("allowed hosts = %v", cfg.Raid.AllowedHosts)
	}
	if task, ok := cfg.Scheduler.Tasks["description_backfill"]; !ok || !task.Enabled || task.Schedule == "" {
		t.Errorf("description_backfill task config = %+v (present=%v)", task, ok)
	}
	if cfg.Messages.Welcome == "" || cfg.Messages.NotForYou == "" {
		t.Error("default messages missing")
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "")

	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadConfig succeeded without a Telegram token")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
telegram:
  token: "67890:filetoken"
log:
  level: debug
moderation:
  captcha_default: false
  scam_keywords:
    - rugpull
http:
  enabled: false
  addr: ":8080"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Telegram.Token != "67890:filetoken" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug from file", cfg.Log.Level)
	}
	if cfg.Moderation.CaptchaDefault {
		t.Error("captcha_default not overridden by file")
	}
	if len(cfg.Moderation.ScamKeywords) != 1 || cfg.Moderation.ScamKeywords[0] != "rugpull" {
		t.Errorf("scam keywords = %v", cfg.Moderation.ScamKeywords)
	}
	if cfg.HTTP.Enabled {
		t.Error("http.enabled not overridden by file")
	}
	// Untouched sections keep their defaults.
	if len(cfg.Raid.AllowedHosts) != 2 {
		t.Errorf("allowed hosts = %v, want defaults", cfg.Raid.AllowedHosts)
	}
}

func TestLoadConfigRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "12345:testtoken")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted invalid log level")
	}
}
