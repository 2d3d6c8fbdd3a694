package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "TREND_DIGEST_CONFIG"
	dataDirEnv        = "TREND_DIGEST_DATA_DIR"
	aiAPIKeyEnv       = "TREND_DIGEST_AI_KEY"
	aiModelEnv        = "TREND_DIGEST_AI_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Storage       StorageConfig      `yaml:"storage"`
	AI            AIConfig           `yaml:"ai"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig selects the log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig locates the daily snapshot stores and the analysis cache.
type StorageConfig struct {
	DataDir string `yaml:"dataDir"`
}

// NewsStorePath resolves the per-date news snapshot file.
func (s StorageConfig) NewsStorePath(day time.Time) string {
	return filepath.Join(s.DataDir, "news", day.Format("2006-01-02")+".db")
}

// RSSStorePath resolves the per-date RSS snapshot file.
func (s StorageConfig) RSSStorePath(day time.Time) string {
	return filepath.Join(s.DataDir, "rss", day.Format("2006-01-02")+".db")
}

// AnalysisPath resolves the daily analysis cache file.
func (s StorageConfig) AnalysisPath() string {
	return filepath.Join(s.DataDir, "analysis", "custom_analysis.json")
}

// AIConfig defines how to contact the analysis engine.
type AIConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"apiKey"`
	BaseURL    string `yaml:"baseUrl"`
	PromptFile string `yaml:"promptFile"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig  `yaml:"telegram"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// WebhookConfig describes one generic JSON webhook endpoint.
type WebhookConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dataDirEnv); v != "" {
		c.Storage.DataDir = v
	}

	if v := os.Getenv(aiAPIKeyEnv); v != "" {
		c.AI.APIKey = v
	}

	if v := os.Getenv(aiModelEnv); v != "" {
		c.AI.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Storage.DataDir != "" {
		base.Storage = override.Storage
	}

	if override.AI.Provider != "" {
		base.AI.Provider = override.AI.Provider
	}
	if override.AI.Model != "" {
		base.AI.Model = override.AI.Model
	}
	if override.AI.APIKey != "" {
		base.AI.APIKey = override.AI.APIKey
	}
	if override.AI.BaseURL != "" {
		base.AI.BaseURL = override.AI.BaseURL
	}
	if override.AI.PromptFile != "" {
		base.AI.PromptFile = override.AI.PromptFile
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}
	if len(override.Notifications.Webhooks) > 0 {
		base.Notifications.Webhooks = override.Notifications.Webhooks
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Storage: StorageConfig{DataDir: "output"},
		AI: AIConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
	}
}
