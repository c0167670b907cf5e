package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/davrell/clauderelay/internal/domain"
)

type Config struct {
	// Core credentials; missing either one is fatal at startup.
	BotToken        string `env:"BOT_TOKEN,required"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY,required"`

	// Upstream
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
	DefaultModel     string `env:"DEFAULT_MODEL"`

	// Bot behavior
	DropPendingUpdates bool   `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`

	// Optional admin chat that receives upstream failure notices.
	LogTelegramChatID int64 `env:"LOG_TELEGRAM_CHAT_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DefaultModel != "" {
		if _, ok := domain.LookupModel(cfg.DefaultModel); !ok {
			return nil, fmt.Errorf("DEFAULT_MODEL %q: %w", cfg.DefaultModel, domain.ErrModelNotFound)
		}
	}
	return cfg, nil
}

// Model returns the configured default model, falling back to the catalog
// default.
func (c *Config) Model() domain.Model {
	if c.DefaultModel != "" {
		return domain.Model(c.DefaultModel)
	}
	return domain.DefaultModel
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
