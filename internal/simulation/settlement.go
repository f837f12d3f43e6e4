package simulation

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

// finish closes a match: team statistics, prediction points, user credits and
// notifications are all applied before the lock is released.
func (e *Engine) finish(m *league.Match) error {
	if m.Status == league.StatusFinished {
		return nil
	}
	home, away, err := e.teamsOf(m)
	if err != nil {
		return err
	}

	m.Status = league.StatusFinished
	m.Minute = fullTime
	league.ApplyResult(home, away, m.HomeScore, m.AwayScore)
	settled := e.settle(m)

	e.metrics.IncMatchesFinished()
	log.Info("Match finished", "matchID", m.ID, "round", m.Round, "home", m.HomeTeam, "away", m.AwayTeam,
		"score", fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore), "predictionsSettled", settled)

	c := m.Clone()
	e.announcements = append(e.announcements, announcement{match: &c})
	return nil
}

// settle awards points to every unsettled prediction of a finished match.
func (e *Engine) settle(m *league.Match) int {
	settled := 0
	for _, p := range e.byMatch[m.ID] {
		if p.Settled() {
			continue
		}
		points := league.ScorePrediction(p.HomeScore, p.AwayScore, m.HomeScore, m.AwayScore)
		p.PointsEarned = &points
		e.dirtyPredictions[p.ID] = struct{}{}
		e.metrics.IncPredictionsSettled()
		settled++

		if points == 0 {
			continue
		}
		u, ok := e.users[p.UserID]
		if !ok {
			log.Warn("Prediction belongs to an unknown user, points not credited", "predictionID", p.ID, "userID", p.UserID)
			continue
		}
		u.Points += points
		e.dirtyUsers[u.ID] = struct{}{}

		n := league.Notification{
			ID:        uuid.NewString(),
			UserID:    u.ID,
			Title:     "Prediction won!",
			Message:   fmt.Sprintf("You earned %d points on %s vs %s", points, m.HomeTeam, m.AwayTeam),
			CreatedAt: e.now(),
		}
		e.outbox = append(e.outbox, n)
		e.announcements = append(e.announcements, announcement{notification: &n, matchID: m.ID, points: points})
	}
	return settled
}
