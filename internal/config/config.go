package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the assistant core service.
// Environment variables are parsed from the SENIOR_VOICE_ prefix,
// e.g. SENIOR_VOICE_HTTP_PORT, SENIOR_VOICE_GROQ_API_KEY.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8990"`

	// Profile store driver: sqlite (default) or postgres
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/seniorvoice.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Groq backend (transcription + planning)
	GroqAPIKey   string `envconfig:"GROQ_API_KEY" default:""`
	GroqBaseURL  string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	PlanModel    string `envconfig:"PLAN_MODEL" default:"llama-3.3-70b-versatile"`
	WhisperModel string `envconfig:"WHISPER_MODEL" default:"whisper-large-v3"`

	// Third-party fetchers
	WeatherBaseURL string `envconfig:"WEATHER_BASE_URL" default:"https://wttr.in"`
	NewsBridgeURL  string `envconfig:"NEWS_BRIDGE_URL" default:"https://api.rss2json.com/v1/api.json"`
	NewsFeedURL    string `envconfig:"NEWS_FEED_URL" default:"https://www.tap.info.tn/fr/?format=feed&type=rss"`
	DefaultCity    string `envconfig:"DEFAULT_CITY" default:"Tunis"`

	// Telephony defaults
	CountryDialPrefix string `envconfig:"COUNTRY_DIAL_PREFIX" default:"216"`
	EmergencyNumber   string `envconfig:"EMERGENCY_NUMBER" default:"190"`

	// Outbound HTTP timeout applied to every external call (seconds).
	// Timeout is treated as that tool's documented failure path.
	HTTPTimeoutSeconds int `envconfig:"HTTP_TIMEOUT_SECONDS" default:"15"`

	// Proactive monitor sweep interval (minutes)
	MonitorIntervalMinutes int `envconfig:"MONITOR_INTERVAL_MINUTES" default:"60"`

	// Interaction history cap, oldest dropped on overflow
	HistoryCap int `envconfig:"HISTORY_CAP" default:"50"`

	// Emergency responder countdown before dialing (seconds)
	EmergencyCountdownSeconds int `envconfig:"EMERGENCY_COUNTDOWN_SECONDS" default:"3"`
}

// ResolveDefaults validates the store driver and its settings.
func (c *Config) ResolveDefaults() error {
	allowedDB := map[string]bool{"sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
	}
	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("DB_DRIVER=sqlite requires SQLITE_PATH")
	}
	if c.HistoryCap <= 0 {
		c.HistoryCap = 50
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SENIOR_VOICE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("plan_model", cfg.PlanModel).
		Int("monitor_interval_min", cfg.MonitorIntervalMinutes).
		Int("history_cap", cfg.HistoryCap).
		Str("groq_key_present", func() string {
			if cfg.GroqAPIKey != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config with test-friendly values and no env parsing.
func NewForTesting() *Config {
	cfg := &Config{
		HTTPPort:                  8990,
		DBDriver:                  "sqlite",
		SQLitePath:                ":memory:",
		GroqBaseURL:               "http://localhost:0",
		PlanModel:                 "llama-3.3-70b-versatile",
		WhisperModel:              "whisper-large-v3",
		WeatherBaseURL:            "http://localhost:0",
		NewsBridgeURL:             "http://localhost:0",
		NewsFeedURL:               "http://localhost:0/feed",
		DefaultCity:               "Tunis",
		CountryDialPrefix:         "216",
		EmergencyNumber:           "190",
		HTTPTimeoutSeconds:        2,
		MonitorIntervalMinutes:    60,
		HistoryCap:                50,
		EmergencyCountdownSeconds: 0,
	}
	return cfg
}

// HTTPAddr returns the HTTP server address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
