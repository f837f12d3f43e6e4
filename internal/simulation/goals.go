package simulation

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
)

const (
	// chanceThreshold is the draw a tick has to beat to produce a chance.
	chanceThreshold = 0.85
	avgGoals        = 2.5
	unknownPlayer   = "Unknown Player"
)

// goalThreshold tightens as a side's tally grows.
func goalThreshold(tally int) float64 {
	switch {
	case tally >= 4:
		return 0.98
	case tally == 3:
		return 0.95
	case tally == 2:
		return 0.85
	default:
		return 0.7
	}
}

func homeShare(home, away *league.Team) float64 {
	total := home.Strength + away.Strength
	if total <= 0 {
		return 0.5
	}
	return float64(home.Strength) / float64(total)
}

// liveStep gives a live match at most one goal.
func (e *Engine) liveStep(m *league.Match) {
	home, away, err := e.teamsOf(m)
	if err != nil {
		log.Warn("Skipping live step", "matchID", m.ID, "error", err)
		return
	}
	if e.rng.Float64() <= chanceThreshold {
		return
	}

	side, tally := home, m.HomeScore
	if e.rng.Float64() >= homeShare(home, away) {
		side, tally = away, m.AwayScore
	}
	if e.rng.Float64() <= goalThreshold(tally) {
		return
	}

	ev := e.goalEvent(side.Name, min(max(m.Minute, 1), fullTime))
	if side == home {
		m.HomeScore++
	} else {
		m.AwayScore++
	}
	ev.Score = fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore)
	m.Events = append(m.Events, ev)
	e.metrics.IncGoals(metrics.GoalModeLive)
	log.Info("Goal", "matchID", m.ID, "team", side.Name, "player", ev.Player, "minute", ev.Minute, "score", ev.Score)
}

// fastForward draws the goals of the part of the match nobody watched, then
// orders every event and rebuilds the running scores from them.
func (e *Engine) fastForward(m *league.Match) error {
	home, away, err := e.teamsOf(m)
	if err != nil {
		return err
	}

	from := 0
	if m.Status == league.StatusLive {
		from = min(max(m.Minute, 0), fullTime)
	}
	if remaining := fullTime - from; remaining > 0 {
		fraction := float64(remaining) / fullTime
		share := homeShare(home, away)
		homeGoals := e.poisson(share * avgGoals * fraction)
		awayGoals := e.poisson((1 - share) * avgGoals * fraction)

		for range homeGoals {
			m.Events = append(m.Events, e.goalEvent(home.Name, from+1+e.rng.IntN(remaining)))
		}
		for range awayGoals {
			m.Events = append(m.Events, e.goalEvent(away.Name, from+1+e.rng.IntN(remaining)))
		}
		for range homeGoals + awayGoals {
			e.metrics.IncGoals(metrics.GoalModeFastForward)
		}
	}

	sort.SliceStable(m.Events, func(i, j int) bool { return m.Events[i].Minute < m.Events[j].Minute })
	h, a := 0, 0
	for i := range m.Events {
		if m.Events[i].Team == m.HomeTeam {
			h++
		} else {
			a++
		}
		m.Events[i].Score = fmt.Sprintf("%d-%d", h, a)
	}
	m.HomeScore, m.AwayScore = h, a
	return nil
}

// poisson counts uniform draws until their product falls to e^-lambda.
func (e *Engine) poisson(lambda float64) int {
	limit := math.Exp(-lambda)
	k, p := 0, 1.0
	for {
		k++
		p *= e.rng.Float64()
		if p <= limit {
			return k - 1
		}
	}
}

// goalEvent picks a scorer from the team's roster and credits the goal.
func (e *Engine) goalEvent(team string, minute int) league.MatchEvent {
	ev := league.MatchEvent{Type: league.EventGoal, Team: team, Player: unknownPlayer, Minute: minute}
	roster := e.rosters[team]
	if len(roster) == 0 {
		return ev
	}
	scorer := roster[e.rng.IntN(len(roster))]
	scorer.Goals++
	e.dirtyPlayers[scorer.ID] = struct{}{}
	ev.Player = scorer.Name
	ev.PlayerID = scorer.ID
	return ev
}
