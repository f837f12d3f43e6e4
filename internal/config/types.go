package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	Port           string
	Turso          TursoConfig
	Slack          SlackConfig
	ProjectID      string
	Simulation     SimulationConfig
	AllowedOrigins []string
	DryRun         bool
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether both the token and the channel are set.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SimulationConfig struct {
	League        string
	RoundDuration time.Duration
	MatchOverlap  time.Duration
	TickInterval  time.Duration
	FlushTimeout  time.Duration
}
