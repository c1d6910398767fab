package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{
		"DISCORD_TOKEN": "token",
	}})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, 30*time.Second, cfg.PromptTimeout)
	assert.Equal(t, 3, cfg.PromptMaxAttempts)
	assert.Equal(t, "en-US", cfg.DefaultLocale)
	assert.Empty(t, cfg.Owners)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{
		"ENVIRONMENT":         "production",
		"DISCORD_TOKEN":       "token",
		"COMMAND_PREFIX":      "?",
		"BOT_OWNERS":          "1,2",
		"PROMPT_TIMEOUT":      "1m",
		"PROMPT_MAX_ATTEMPTS": "5",
		"HELP_SIMPLE_LIST":    "true",
	}})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.Equal(t, []string{"1", "2"}, cfg.Owners)
	assert.Equal(t, time.Minute, cfg.PromptTimeout)
	assert.Equal(t, 5, cfg.PromptMaxAttempts)
	assert.True(t, cfg.HelpSimpleList)
}

func TestParseRequiresToken(t *testing.T) {
	_, err := parse(env.Options{Environment: map[string]string{}})
	assert.ErrorContains(t, err, "DISCORD_TOKEN")
}

func TestParseRejectsBadDuration(t *testing.T) {
	_, err := parse(env.Options{Environment: map[string]string{
		"DISCORD_TOKEN":  "token",
		"PROMPT_TIMEOUT": "soon",
	}})
	assert.Error(t, err)
}
