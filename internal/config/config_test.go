package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davrell/clauderelay/internal/domain"
)

func setRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
	assert.Equal(t, "https://api.anthropic.com", cfg.AnthropicBaseURL)
	assert.Equal(t, domain.DefaultModel, cfg.Model())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadMissingCredentials(t *testing.T) {
	// t.Setenv registers the restore; unsetting afterwards makes the
	// variables genuinely absent for this test.
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	os.Unsetenv("BOT_TOKEN")
	os.Unsetenv("ANTHROPIC_API_KEY")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaultModelOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_MODEL", "claude-3-haiku-20240307")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, domain.Model3Haiku, cfg.Model())
}

func TestLoadUnknownDefaultModel(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_MODEL", "gpt-5")

	_, err := Load()
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
	}
	for in, want := range cases {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", in)
	}
}
