package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	CORS     CORSConfig
	Fetcher  FetcherConfig
	Splitter SplitterConfig
	Parser   ParserConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FetcherConfig holds document download settings.
type FetcherConfig struct {
	TimeoutSecs   int   `mapstructure:"timeout_secs"`
	MaxDownloadMB int64 `mapstructure:"max_download_mb"`
}

// SplitterConfig holds page rasterization settings.
type SplitterConfig struct {
	RenderDPI int    `mapstructure:"render_dpi"`
	Pdftoppm  string `mapstructure:"pdftoppm"` // binary name or absolute path
}

// ParserConfig holds vision model provider settings.
type ParserConfig struct {
	Provider      string `mapstructure:"provider"`
	APIKey        string `mapstructure:"api_key"`
	DefaultModel  string `mapstructure:"default_model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	MaxConcurrent int    `mapstructure:"max_concurrent"`
}

// Load reads configuration from environment variables with the BILLSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Fetcher defaults
	v.SetDefault("fetcher.timeout_secs", 20)
	v.SetDefault("fetcher.max_download_mb", 50)

	// Splitter defaults
	v.SetDefault("splitter.render_dpi", 150)
	v.SetDefault("splitter.pdftoppm", "pdftoppm")

	// Parser defaults
	v.SetDefault("parser.provider", "gemini")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.default_model", "gemini-2.5-flash")
	v.SetDefault("parser.timeout_secs", 120)
	v.SetDefault("parser.max_concurrent", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "BILLSCAN_SERVER_PORT",
		"server.read_timeout":    "BILLSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "BILLSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":     "BILLSCAN_SERVER_ENVIRONMENT",
		"log.level":              "BILLSCAN_LOG_LEVEL",
		"log.format":             "BILLSCAN_LOG_FORMAT",
		"cors.allowed_origins":   "BILLSCAN_CORS_ALLOWED_ORIGINS",
		"fetcher.timeout_secs":   "BILLSCAN_FETCHER_TIMEOUT_SECS",
		"fetcher.max_download_mb": "BILLSCAN_FETCHER_MAX_DOWNLOAD_MB",
		"splitter.render_dpi":    "BILLSCAN_SPLITTER_RENDER_DPI",
		"splitter.pdftoppm":      "BILLSCAN_SPLITTER_PDFTOPPM",
		"parser.provider":        "BILLSCAN_PARSER_PROVIDER",
		"parser.api_key":         "BILLSCAN_PARSER_API_KEY",
		"parser.default_model":   "BILLSCAN_PARSER_DEFAULT_MODEL",
		"parser.timeout_secs":    "BILLSCAN_PARSER_TIMEOUT_SECS",
		"parser.max_concurrent":  "BILLSCAN_PARSER_MAX_CONCURRENT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Gemini ecosystem convention: fall back to GEMINI_API_KEY / GOOGLE_API_KEY
	// when no explicit key is configured.
	apiKey := v.GetString("parser.api_key")
	if apiKey == "" {
		if k := os.Getenv("GEMINI_API_KEY"); k != "" {
			apiKey = k
		} else if k := os.Getenv("GOOGLE_API_KEY"); k != "" {
			apiKey = k
		}
	}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLSCAN_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Fetcher = FetcherConfig{
		TimeoutSecs:   v.GetInt("fetcher.timeout_secs"),
		MaxDownloadMB: v.GetInt64("fetcher.max_download_mb"),
	}
	cfg.Splitter = SplitterConfig{
		RenderDPI: v.GetInt("splitter.render_dpi"),
		Pdftoppm:  v.GetString("splitter.pdftoppm"),
	}
	cfg.Parser = ParserConfig{
		Provider:      v.GetString("parser.provider"),
		APIKey:        apiKey,
		DefaultModel:  v.GetString("parser.default_model"),
		TimeoutSecs:   v.GetInt("parser.timeout_secs"),
		MaxConcurrent: v.GetInt("parser.max_concurrent"),
	}

	return cfg, nil
}
