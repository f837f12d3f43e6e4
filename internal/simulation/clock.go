package simulation

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

// CatchUp advances the season over every round whose time already passed and
// returns how many rounds were advanced. Calling it again without the clock
// moving changes nothing.
func (e *Engine) CatchUp() int {
	e.mu.Lock()
	advanced := e.catchUp(e.now())
	out := e.drainAnnouncements()
	e.mu.Unlock()

	e.dispatch(out)
	if advanced > 0 {
		e.flusher.Request()
	}
	return advanced
}

func (e *Engine) catchUp(now time.Time) int {
	if !e.state.Started {
		return 0
	}
	advanced := 0
	for now.Sub(e.state.RoundStart) >= e.cfg.RoundDuration && e.state.CurrentRound < e.state.TotalRounds() {
		if !e.finalizeRound(e.state.CurrentRound) {
			log.Warn("Round has matches that could not be finished, retrying next tick", "round", e.state.CurrentRound)
			break
		}
		e.state.CurrentRound++
		e.state.RoundStart = e.state.RoundStart.Add(e.cfg.RoundDuration)
		advanced++
		e.metrics.IncRoundsAdvanced()
		log.Info("Round advanced", "round", e.state.CurrentRound, "roundStart", e.state.RoundStart)
	}

	if advanced > 0 {
		e.metrics.SetCurrentRound(e.state.CurrentRound)
		e.announcements = append(e.announcements, announcement{
			round:     e.state.CurrentRound,
			standings: e.standings(),
			at:        now,
		})
	}
	return advanced
}

// finalizeRound force-finishes every match of a round. It reports false when
// any of them stays unfinished.
func (e *Engine) finalizeRound(round int) bool {
	ok := true
	for _, m := range e.matches {
		if m.Round != round || m.Status == league.StatusFinished {
			continue
		}
		if err := e.complete(m); err != nil {
			log.Warn("Could not finish match", "matchID", m.ID, "round", round, "error", err)
			ok = false
		}
	}
	return ok
}
