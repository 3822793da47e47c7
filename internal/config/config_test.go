package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Neutralize ambient machine configuration.
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 300*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)

	assert.Equal(t, 20, cfg.Fetcher.TimeoutSecs)
	assert.Equal(t, int64(50), cfg.Fetcher.MaxDownloadMB)

	assert.Equal(t, 150, cfg.Splitter.RenderDPI)
	assert.Equal(t, "pdftoppm", cfg.Splitter.Pdftoppm)

	assert.Equal(t, "gemini", cfg.Parser.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Parser.DefaultModel)
	assert.Equal(t, 120, cfg.Parser.TimeoutSecs)
	assert.Equal(t, 4, cfg.Parser.MaxConcurrent)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BILLSCAN_SERVER_PORT", ":9090")
	t.Setenv("BILLSCAN_SERVER_ENVIRONMENT", "production")
	t.Setenv("BILLSCAN_FETCHER_TIMEOUT_SECS", "45")
	t.Setenv("BILLSCAN_SPLITTER_RENDER_DPI", "300")
	t.Setenv("BILLSCAN_PARSER_API_KEY", "secret-key")
	t.Setenv("BILLSCAN_PARSER_MAX_CONCURRENT", "8")
	t.Setenv("BILLSCAN_CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, 45, cfg.Fetcher.TimeoutSecs)
	assert.Equal(t, 300, cfg.Splitter.RenderDPI)
	assert.Equal(t, "secret-key", cfg.Parser.APIKey)
	assert.Equal(t, 8, cfg.Parser.MaxConcurrent)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-env-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-env-key", cfg.Parser.APIKey)
}

func TestLoad_ExplicitKeyBeatsFallback(t *testing.T) {
	t.Setenv("BILLSCAN_PARSER_API_KEY", "explicit-key")
	t.Setenv("GEMINI_API_KEY", "gemini-env-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "explicit-key", cfg.Parser.APIKey)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7001")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Server.Port)
}
