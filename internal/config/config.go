package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the optional Casdoor SSO settings
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// Enabled reports whether enough settings are present to talk to Casdoor
func (c CasdoorConfig) Enabled() bool {
	return c.Endpoint != "" && c.ClientID != ""
}

type PaymentConfig struct {
	SecretKey string
	APIURL    string
	Currency  string
	Timeout   time.Duration
}

type EventsConfig struct {
	KafkaBrokers []string
	Topic        string
}

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	AccessSecret string
	TokenTTL     time.Duration

	RateLimit string

	Payment PaymentConfig
	Events  EventsConfig
	Casdoor CasdoorConfig
}

// LoadConfig reads the optional .env file and then the process environment
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "5000"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		AccessSecret: os.Getenv("ACCESS_SECRET_KEY"),
		RateLimit:    getEnv("RATE_LIMIT", "100-M"),
		Payment: PaymentConfig{
			SecretKey: os.Getenv("PAYMENT_SECRET_KEY"),
			APIURL:    getEnv("PAYMENT_API_URL", "https://api.stripe.com"),
			Currency:  getEnv("PAYMENT_CURRENCY", "usd"),
		},
		Events: EventsConfig{
			KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:        getEnv("EVENTS_TOPIC", "daily-fit.events"),
		},
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERTIFICATE"),
			Organization: os.Getenv("CASDOOR_ORGANIZATION"),
			Application:  os.Getenv("CASDOOR_APPLICATION"),
		},
	}

	var err error
	if cfg.TokenTTL, err = parseDuration("TOKEN_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.Payment.Timeout, err = parseDuration("PAYMENT_TIMEOUT", "15s"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings the server cannot start without
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.AccessSecret == "" {
		return fmt.Errorf("ACCESS_SECRET_KEY is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
