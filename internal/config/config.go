package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds the configuration from the process environment.
func FromEnv() (cfg Config, err error) {
	var missing []string
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg = Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  optional("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     optional("SLACK_BOT_TOKEN", ""),
			ChannelID: optional("SLACK_CHANNEL_ID", ""),
		},
		ProjectID: optional("GCP_PROJECT", ""),
		Simulation: SimulationConfig{
			League: optional("LEAGUE_NAME", "La Liga"),
		},
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"ROUND_DURATION", "10h", &cfg.Simulation.RoundDuration},
		{"MATCH_OVERLAP", "1m", &cfg.Simulation.MatchOverlap},
		{"TICK_INTERVAL", "10s", &cfg.Simulation.TickInterval},
		{"FLUSH_TIMEOUT", "30s", &cfg.Simulation.FlushTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(optional(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		if v < 0 || (v == 0 && d.key != "MATCH_OVERLAP") {
			return Config{}, fmt.Errorf("invalid %s: must be positive", d.key)
		}
		*d.dst = v
	}

	for _, origin := range strings.Split(optional("ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	cfg.DryRun, err = strconv.ParseBool(optional("DRY_RUN", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DRY_RUN: %w", err)
	}
	return cfg, nil
}
