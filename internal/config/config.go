package config

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fnbridge/pkg/introspect"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	RateLimit   RateLimitConfig
	Serverless  ServerlessConfig
	Introspect  introspect.Options
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json", "text" or "auto"
}

// RateLimitConfig holds local server rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from the environment, an optional .env file and the
// --info/--json flags in args. Unknown flags are ignored.
func Load(args []string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "auto")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("STAGE", "dev")
	v.SetDefault("SERVERLESS_INFO", false)
	v.SetDefault("SERVERLESS_JSON", false)

	fs := pflag.NewFlagSet("fnbridge", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	introspect.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	if err := v.BindPFlag("SERVERLESS_INFO", fs.Lookup(introspect.FlagInfo)); err != nil {
		return nil, fmt.Errorf("failed to bind --%s: %w", introspect.FlagInfo, err)
	}
	if err := v.BindPFlag("SERVERLESS_JSON", fs.Lookup(introspect.FlagJSON)); err != nil {
		return nil, fmt.Errorf("failed to bind --%s: %w", introspect.FlagJSON, err)
	}

	platform := v.GetString("SERVERLESS_PLATFORM")
	if platform == "" {
		platform = DetectPlatform()
	}

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Serverless: ServerlessConfig{
			Platform:     platform,
			FunctionName: functionName(platform),
			Region:       region(platform),
			Stage:        v.GetString("STAGE"),
		},
		Introspect: introspect.Options{
			Info: v.GetBool("SERVERLESS_INFO"),
			JSON: v.GetBool("SERVERLESS_JSON"),
		},
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
