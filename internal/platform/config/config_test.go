package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.AppEnv)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "claude-haiku-4.5", cfg.AnthropicModel)
	assert.Equal(t, "gemini-2.0-flash-lite", cfg.GoogleModel)
	assert.Equal(t, 8080, cfg.HealthPort)
	assert.Equal(t, 3, cfg.CatalogMaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.CrossProviderLookupDelay)
	assert.Equal(t, 5, cfg.TwitterMinBatchSize)
	assert.False(t, cfg.RSSParsingEnabled)
	assert.InDelta(t, 0.4, cfg.VettingProgrammaticWeight, 0.0001)
	assert.InDelta(t, 0.6, cfg.VettingLLMWeight, 0.0001)
	assert.Equal(t, 85, cfg.VettingTierAThreshold)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-primary")
	t.Setenv("LISTENNOTES_API_KEY", "ln-key")
	t.Setenv("DATA_DIR", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-primary", cfg.OpenAIAPIKey)
	assert.Equal(t, "ln-key", cfg.ListenNotesAPIKey)
	assert.Equal(t, "/tmp/out", cfg.DataDir)
}

func TestLoad_LegacyAliases(t *testing.T) {
	t.Setenv("OPENAI_KEY", "sk-legacy")
	t.Setenv("LISTEN_NOTES_API_KEY", "ln-legacy")
	t.Setenv("CATALOG_RETRY_COUNT", "5")
	t.Setenv("ENABLE_RSS_PARSING", "true")
	t.Setenv("VETTING_PROGRAMMATIC_SCORE_WEIGHT", "0.5")
	t.Setenv("VETTING_LLM_SCORE_WEIGHT", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-legacy", cfg.OpenAIAPIKey)
	assert.Equal(t, "ln-legacy", cfg.ListenNotesAPIKey)
	assert.Equal(t, 5, cfg.CatalogMaxRetries)
	assert.True(t, cfg.RSSParsingEnabled)
	assert.InDelta(t, 0.5, cfg.VettingProgrammaticWeight, 0.0001)
	assert.InDelta(t, 0.5, cfg.VettingLLMWeight, 0.0001)
}

func TestLoad_AliasWinsOverPrimary(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-primary")
	t.Setenv("OPENAI_KEY", "sk-legacy")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-legacy", cfg.OpenAIAPIKey, "legacy alias is applied after env.Parse and so takes precedence when both are set")
}

func TestLoad_InvalidAliasIgnored(t *testing.T) {
	t.Setenv("CATALOG_RETRY_COUNT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.CatalogMaxRetries)
}
