package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblocator/internal/config"
)

// clearEnv blanks every variable Load reads so host settings cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "OPENAI_API_KEY",
		"JOBLOC_SERVER_PORT", "JOBLOC_SERVER_READ_TIMEOUT", "JOBLOC_SERVER_WRITE_TIMEOUT", "JOBLOC_SERVER_ENVIRONMENT",
		"JOBLOC_LOG_LEVEL", "JOBLOC_LOG_FORMAT", "JOBLOC_CORS_ALLOWED_ORIGINS",
		"JOBLOC_EXTRACTOR_PROVIDER", "JOBLOC_EXTRACTOR_API_KEY", "JOBLOC_EXTRACTOR_DEFAULT_MODEL",
		"JOBLOC_EXTRACTOR_TEMPERATURE", "JOBLOC_EXTRACTOR_MAX_TOKENS", "JOBLOC_EXTRACTOR_TIMEOUT_SECS",
		"JOBLOC_EXTRACTOR_DEFAULT_COUNTRY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8050", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")

	assert.Equal(t, "openai", cfg.Extractor.Provider)
	assert.Equal(t, "", cfg.Extractor.APIKey)
	assert.Equal(t, "", cfg.Extractor.DefaultModel)
	assert.Equal(t, 0.0, cfg.Extractor.Temperature)
	assert.Equal(t, 500, cfg.Extractor.MaxTokens)
	assert.Equal(t, 60, cfg.Extractor.TimeoutSecs)
	assert.Equal(t, "US", cfg.Extractor.DefaultCountry)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBLOC_SERVER_PORT", ":9000")
	t.Setenv("JOBLOC_LOG_FORMAT", "json")
	t.Setenv("JOBLOC_CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("JOBLOC_EXTRACTOR_PROVIDER", "Claude")
	t.Setenv("JOBLOC_EXTRACTOR_API_KEY", "sk-test")
	t.Setenv("JOBLOC_EXTRACTOR_DEFAULT_MODEL", "claude-3-5-haiku-latest")
	t.Setenv("JOBLOC_EXTRACTOR_TEMPERATURE", "0.2")
	t.Setenv("JOBLOC_EXTRACTOR_MAX_TOKENS", "256")
	t.Setenv("JOBLOC_EXTRACTOR_DEFAULT_COUNTRY", "ca")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "claude", cfg.Extractor.Provider)
	assert.Equal(t, "sk-test", cfg.Extractor.APIKey)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Extractor.DefaultModel)
	assert.InDelta(t, 0.2, cfg.Extractor.Temperature, 1e-9)
	assert.Equal(t, 256, cfg.Extractor.MaxTokens)
	assert.Equal(t, "CA", cfg.Extractor.DefaultCountry)
}

func TestLoad_PortOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3001")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.Server.Port)
}

func TestLoad_ExplicitServerPortWinsOverPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3001")
	t.Setenv("JOBLOC_SERVER_PORT", ":9000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-bare")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-bare", cfg.Extractor.APIKey)
}

func TestLoad_OpenAIKeyFallbackOnlyForOpenAI(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-bare")
	t.Setenv("JOBLOC_EXTRACTOR_PROVIDER", "gemini")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Extractor.APIKey)
}

func TestLoad_PrefixedKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-bare")
	t.Setenv("JOBLOC_EXTRACTOR_API_KEY", "sk-prefixed")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-prefixed", cfg.Extractor.APIKey)
}
