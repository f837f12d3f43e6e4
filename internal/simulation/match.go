package simulation

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

const fullTime = 90

// evaluate moves a match to the state its schedule implies at now.
func (e *Engine) evaluate(m *league.Match, now time.Time) {
	if m.Status == league.StatusFinished {
		return
	}
	end := m.StartTime.Add(e.matchDuration)

	switch {
	case now.Before(m.StartTime):
		return
	case now.Before(end):
		wasLive := m.Status == league.StatusLive
		m.Status = league.StatusLive
		m.Minute = matchMinute(m.StartTime, now, e.matchDuration)
		if !wasLive {
			log.Info("Kick-off", "matchID", m.ID, "home", m.HomeTeam, "away", m.AwayTeam, "minute", m.Minute)
			return
		}
		e.liveStep(m)
	default:
		if err := e.complete(m); err != nil {
			log.Warn("Could not finish match, retrying next tick", "matchID", m.ID, "error", err)
		}
	}
}

// complete fast-forwards whatever is left of the match and finishes it.
func (e *Engine) complete(m *league.Match) error {
	if m.Status == league.StatusFinished {
		return nil
	}
	if err := e.fastForward(m); err != nil {
		return err
	}
	return e.finish(m)
}

// teamsOf returns both sides of a match or an error naming the missing one.
func (e *Engine) teamsOf(m *league.Match) (*league.Team, *league.Team, error) {
	home, ok := e.teamIndex[m.HomeTeam]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrTeamNotFound, m.HomeTeam)
	}
	away, ok := e.teamIndex[m.AwayTeam]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrTeamNotFound, m.AwayTeam)
	}
	return home, away, nil
}

// matchMinute maps the elapsed share of a match onto 90 minutes.
func matchMinute(start, now time.Time, duration time.Duration) int {
	if duration <= 0 {
		return fullTime
	}
	minute := int(math.Floor(fullTime * float64(now.Sub(start)) / float64(duration)))
	return min(max(minute, 0), fullTime)
}
