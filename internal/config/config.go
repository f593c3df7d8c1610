package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Extractor ExtractorConfig
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

// ExtractorConfig holds the LLM backend and extraction defaults.
type ExtractorConfig struct {
	Provider       string  `mapstructure:"provider"`
	APIKey         string  `mapstructure:"api_key"`
	DefaultModel   string  `mapstructure:"default_model"`
	Temperature    float64 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	TimeoutSecs    int     `mapstructure:"timeout_secs"`
	DefaultCountry string  `mapstructure:"default_country"`
}

// Load reads configuration from environment variables with the JOBLOC_ prefix.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("JOBLOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8050")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8050,http://127.0.0.1:8050")

	// Extractor defaults
	v.SetDefault("extractor.provider", "openai")
	v.SetDefault("extractor.api_key", "")
	// Empty means the provider picks its own default model.
	v.SetDefault("extractor.default_model", "")
	v.SetDefault("extractor.temperature", 0.0)
	v.SetDefault("extractor.max_tokens", 500)
	v.SetDefault("extractor.timeout_secs", 60)
	v.SetDefault("extractor.default_country", "US")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "JOBLOC_SERVER_PORT",
		"server.read_timeout":       "JOBLOC_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "JOBLOC_SERVER_WRITE_TIMEOUT",
		"server.environment":        "JOBLOC_SERVER_ENVIRONMENT",
		"log.level":                 "JOBLOC_LOG_LEVEL",
		"log.format":                "JOBLOC_LOG_FORMAT",
		"cors.allowed_origins":      "JOBLOC_CORS_ALLOWED_ORIGINS",
		"extractor.provider":        "JOBLOC_EXTRACTOR_PROVIDER",
		"extractor.api_key":         "JOBLOC_EXTRACTOR_API_KEY",
		"extractor.default_model":   "JOBLOC_EXTRACTOR_DEFAULT_MODEL",
		"extractor.temperature":     "JOBLOC_EXTRACTOR_TEMPERATURE",
		"extractor.max_tokens":      "JOBLOC_EXTRACTOR_MAX_TOKENS",
		"extractor.timeout_secs":    "JOBLOC_EXTRACTOR_TIMEOUT_SECS",
		"extractor.default_country": "JOBLOC_EXTRACTOR_DEFAULT_COUNTRY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if JOBLOC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("JOBLOC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

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
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Extractor = ExtractorConfig{
		Provider:       strings.ToLower(v.GetString("extractor.provider")),
		APIKey:         v.GetString("extractor.api_key"),
		DefaultModel:   v.GetString("extractor.default_model"),
		Temperature:    v.GetFloat64("extractor.temperature"),
		MaxTokens:      v.GetInt("extractor.max_tokens"),
		TimeoutSecs:    v.GetInt("extractor.timeout_secs"),
		DefaultCountry: strings.ToUpper(v.GetString("extractor.default_country")),
	}
	// The bare OPENAI_API_KEY is honored for the openai provider when no prefixed key is set.
	if cfg.Extractor.APIKey == "" && cfg.Extractor.Provider == "openai" {
		cfg.Extractor.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}
