package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the contact API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	DatabaseURL     string
	RedisURL        string
	NatsURL         string
	ResendAPIKey    string
	FromEmail       string
	ContactEmail    string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// MailEnabled reports whether outbound email is configured. Without a
// provider credential the service still accepts submissions and only skips
// dispatch.
func (c Config) MailEnabled() bool {
	return c.ResendAPIKey != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Portfolio Contact API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("from.email", "noreply@resend.dev")
	v.SetDefault("contact.email", "hello@example.com")
	v.SetDefault("rate.limit.max", 5)
	v.SetDefault("rate.limit.window", "15m")

	windowString := v.GetString("rate.limit.window")
	if windowString == "" {
		windowString = "15m"
	}

	window, err := time.ParseDuration(windowString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DatabaseURL:     v.GetString("database.url"),
		RedisURL:        v.GetString("redis.url"),
		NatsURL:         v.GetString("nats.url"),
		ResendAPIKey:    v.GetString("resend.api.key"),
		FromEmail:       v.GetString("from.email"),
		ContactEmail:    v.GetString("contact.email"),
		RateLimitMax:    v.GetInt("rate.limit.max"),
		RateLimitWindow: window,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 5
	}

	return cfg, nil
}
