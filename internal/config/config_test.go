package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{configPathEnv, dataDirEnv, aiAPIKeyEnv, aiModelEnv, telegramTokenEnv, telegramChatIDEnv} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Storage.DataDir != "output" {
		t.Fatalf("unexpected data dir: %s", cfg.Storage.DataDir)
	}
	if cfg.AI.Provider != "openai" || cfg.AI.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected AI defaults: %+v", cfg.AI)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging level: %s", cfg.Logging.Level)
	}
}

func TestLoadMergesFile(t *testing.T) {
	clearEnv(t)

	raw := `
logging:
  level: debug
storage:
  dataDir: /var/data
ai:
  provider: claude
  promptFile: /etc/prompt.txt
notifications:
  telegram:
    botToken: tok
    chatId: "42"
  webhooks:
    - name: ops
      url: https://hooks.example.org/ops
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level: %s", cfg.Logging.Level)
	}
	if cfg.Storage.DataDir != "/var/data" {
		t.Fatalf("unexpected data dir: %s", cfg.Storage.DataDir)
	}
	if cfg.AI.Provider != "claude" {
		t.Fatalf("unexpected provider: %s", cfg.AI.Provider)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Fatalf("file without model should keep default, got %s", cfg.AI.Model)
	}
	if cfg.AI.PromptFile != "/etc/prompt.txt" {
		t.Fatalf("unexpected prompt file: %s", cfg.AI.PromptFile)
	}
	if cfg.Notifications.Telegram.BotToken != "tok" || cfg.Notifications.Telegram.ChatID != "42" {
		t.Fatalf("unexpected telegram config: %+v", cfg.Notifications.Telegram)
	}
	if len(cfg.Notifications.Webhooks) != 1 || cfg.Notifications.Webhooks[0].Name != "ops" {
		t.Fatalf("unexpected webhooks: %+v", cfg.Notifications.Webhooks)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	clearEnv(t)

	raw := "storage:\n  dataDir: /from/file\nai:\n  apiKey: file-key\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(dataDirEnv, "/from/env")
	t.Setenv(aiAPIKeyEnv, "env-key")
	t.Setenv(aiModelEnv, "gpt-4o")
	t.Setenv(telegramTokenEnv, "env-tok")
	t.Setenv(telegramChatIDEnv, "7")

	cfg := Load()

	if cfg.Storage.DataDir != "/from/env" {
		t.Fatalf("env should override file, got %s", cfg.Storage.DataDir)
	}
	if cfg.AI.APIKey != "env-key" || cfg.AI.Model != "gpt-4o" {
		t.Fatalf("unexpected AI config: %+v", cfg.AI)
	}
	if cfg.Notifications.Telegram.BotToken != "env-tok" || cfg.Notifications.Telegram.ChatID != "7" {
		t.Fatalf("unexpected telegram config: %+v", cfg.Notifications.Telegram)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()

	if cfg.Storage.DataDir != "output" {
		t.Fatalf("expected defaults on unreadable config, got %s", cfg.Storage.DataDir)
	}
}

func TestStoragePaths(t *testing.T) {
	t.Parallel()

	s := StorageConfig{DataDir: "data"}
	day := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)

	if got, want := s.NewsStorePath(day), filepath.Join("data", "news", "2026-08-30.db"); got != want {
		t.Fatalf("news path: got %s want %s", got, want)
	}
	if got, want := s.RSSStorePath(day), filepath.Join("data", "rss", "2026-08-30.db"); got != want {
		t.Fatalf("rss path: got %s want %s", got, want)
	}
	if got, want := s.AnalysisPath(), filepath.Join("data", "analysis", "custom_analysis.json"); got != want {
		t.Fatalf("analysis path: got %s want %s", got, want)
	}
}
