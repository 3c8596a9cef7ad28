package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	DefaultModel     string
	AITimeout        time.Duration
	MaxOutputTokens  int
	CreditsPerDollar float64
	CostSafetyMargin float64
	MinimumCredits   int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("RELATO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Relato API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("ai.default_model", "gpt-4o-mini")
	v.SetDefault("ai.timeout_ms", 60000)
	v.SetDefault("ai.max_output_tokens", 2048)
	v.SetDefault("credits.per_dollar", 100)
	v.SetDefault("credits.safety_margin", 1.5)
	v.SetDefault("credits.minimum", 1)

	timeoutMs := v.GetInt("ai.timeout_ms")
	if timeoutMs <= 0 {
		timeoutMs = 60000
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		AnthropicAPIKey:  v.GetString("anthropic_api_key"),
		DefaultModel:     v.GetString("ai.default_model"),
		AITimeout:        time.Duration(timeoutMs) * time.Millisecond,
		MaxOutputTokens:  v.GetInt("ai.max_output_tokens"),
		CreditsPerDollar: v.GetFloat64("credits.per_dollar"),
		CostSafetyMargin: v.GetFloat64("credits.safety_margin"),
		MinimumCredits:   v.GetInt("credits.minimum"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 2048
	}

	if cfg.CreditsPerDollar <= 0 {
		cfg.CreditsPerDollar = 100
	}

	if cfg.CostSafetyMargin < 1 {
		cfg.CostSafetyMargin = 1
	}

	return cfg, nil
}
