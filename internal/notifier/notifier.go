package notifier

import "github.com/sbermejom01/api-BetsSoccer/internal/league"

// Notifier defines a high-level interface for announcing league events.
// This decouples the simulation from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finished matches
	SendMatchResult(match *league.Match, dryRun bool) error
	// For round advancement, with the standings at that moment
	SendRoundSummary(round int, standings []league.Team, dryRun bool) error
}

// Nop discards every notification. Used when no provider is configured.
type Nop struct{}

func (Nop) SendMatchResult(*league.Match, bool) error { return nil }

func (Nop) SendRoundSummary(int, []league.Team, bool) error { return nil }
