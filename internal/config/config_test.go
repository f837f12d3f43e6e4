package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_NAME", "league.db")
	t.Setenv("PORT", "8080")
}

func TestFromEnv(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := FromEnv()

		require.NoError(t, err)
		assert.Equal(t, "league.db", cfg.DBName)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "La Liga", cfg.Simulation.League)
		assert.Equal(t, 10*time.Hour, cfg.Simulation.RoundDuration)
		assert.Equal(t, time.Minute, cfg.Simulation.MatchOverlap)
		assert.Equal(t, 10*time.Second, cfg.Simulation.TickInterval)
		assert.Equal(t, 30*time.Second, cfg.Simulation.FlushTimeout)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
		assert.False(t, cfg.Slack.Enabled())
		assert.False(t, cfg.DryRun)
	})

	t.Run("reads overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ROUND_DURATION", "2m")
		t.Setenv("MATCH_OVERLAP", "0s")
		t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://bets.example.com")
		t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
		t.Setenv("SLACK_CHANNEL_ID", "C123")
		t.Setenv("TURSO_PRIMARY_URL", "libsql://league.turso.io")
		t.Setenv("DRY_RUN", "true")

		cfg, err := FromEnv()

		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute, cfg.Simulation.RoundDuration)
		assert.Zero(t, cfg.Simulation.MatchOverlap)
		assert.Equal(t, []string{"http://localhost:5173", "https://bets.example.com"}, cfg.AllowedOrigins)
		assert.True(t, cfg.Slack.Enabled())
		assert.Equal(t, "libsql://league.turso.io", cfg.Turso.PrimaryURL)
		assert.True(t, cfg.DryRun)
	})

	t.Run("reports missing required variables", func(t *testing.T) {
		t.Setenv("DB_NAME", "")
		t.Setenv("PORT", "")

		_, err := FromEnv()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_NAME")
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("rejects invalid durations", func(t *testing.T) {
		setRequired(t)
		t.Setenv("TICK_INTERVAL", "soon")

		_, err := FromEnv()

		assert.ErrorContains(t, err, "TICK_INTERVAL")
	})

	t.Run("rejects a zero round duration", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ROUND_DURATION", "0s")

		_, err := FromEnv()

		assert.ErrorContains(t, err, "ROUND_DURATION")
	})
}
