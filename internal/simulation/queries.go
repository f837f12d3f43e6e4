package simulation

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

func (e *Engine) CurrentState() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := State{
		CurrentRound: e.state.CurrentRound,
		TotalRounds:  e.state.TotalRounds(),
		Started:      e.state.Started,
		RoundStart:   e.state.RoundStart,
		Ready:        e.ready,
	}
	if s.Started && s.CurrentRound < s.TotalRounds {
		s.NextRoundAt = s.RoundStart.Add(e.cfg.RoundDuration)
	}
	return s
}

// Standings returns the table ordered by points, goal difference, goals
// scored and name.
func (e *Engine) Standings() []league.Team {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.standings()
}

func (e *Engine) standings() []league.Team {
	teams := make([]league.Team, len(e.teams))
	for i, t := range e.teams {
		teams[i] = *t
	}
	league.SortStandings(teams)
	return teams
}

func (e *Engine) MatchesForRound(round int) []league.Match {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matchesWhere(func(m *league.Match) bool { return m.Round == round })
}

func (e *Engine) CurrentRoundMatches() []league.Match {
	e.mu.RLock()
	defer e.mu.RUnlock()
	round := e.state.CurrentRound
	return e.matchesWhere(func(m *league.Match) bool { return m.Round == round })
}

func (e *Engine) AllMatches() []league.Match {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matchesWhere(func(*league.Match) bool { return true })
}

func (e *Engine) matchesWhere(keep func(*league.Match) bool) []league.Match {
	out := []league.Match{}
	for _, m := range e.matches {
		if keep(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}

func (e *Engine) MatchByID(id int) (league.Match, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.matchIndex[id]
	if !ok {
		return league.Match{}, ErrMatchNotFound
	}
	return m.Clone(), nil
}

// Leaderboard ranks users by prediction points.
func (e *Engine) Leaderboard() []league.User {
	e.mu.RLock()
	defer e.mu.RUnlock()

	users := make([]league.User, 0, len(e.users))
	for _, u := range e.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		return users[i].ID < users[j].ID
	})
	return users
}

// UserPredictions lists a user's predictions, newest first.
func (e *Engine) UserPredictions(userID int64) []UserPrediction {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := []UserPrediction{}
	for _, p := range e.predictions {
		if p.UserID != userID {
			continue
		}
		up := UserPrediction{Prediction: p.Clone(), Status: PredictionPending}
		if m, ok := e.matchIndex[p.MatchID]; ok {
			up.Match = m.Clone()
			if m.Status == league.StatusFinished && p.Settled() {
				up.Status = PredictionLost
				if *p.PointsEarned > 0 {
					up.Status = PredictionWon
				}
			}
		}
		out = append(out, up)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (e *Engine) TeamPlayers(team string) ([]league.Player, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.teamIndex[team]; !ok {
		return nil, ErrTeamNotFound
	}
	players := make([]league.Player, 0, len(e.rosters[team]))
	for _, p := range e.rosters[team] {
		players = append(players, *p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Goals != players[j].Goals {
			return players[i].Goals > players[j].Goals
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

// TopScorers returns up to limit players with at least one goal.
func (e *Engine) TopScorers(limit int) []league.Player {
	e.mu.RLock()
	defer e.mu.RUnlock()

	scorers := []league.Player{}
	for _, p := range e.players {
		if p.Goals > 0 {
			scorers = append(scorers, *p)
		}
	}
	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].Goals != scorers[j].Goals {
			return scorers[i].Goals > scorers[j].Goals
		}
		return scorers[i].Name < scorers[j].Name
	})
	if limit > 0 && len(scorers) > limit {
		scorers = scorers[:limit]
	}
	return scorers
}

// SubmitPrediction records a user's forecast for a match that has not kicked
// off. Submitting again for the same match overwrites the previous forecast.
func (e *Engine) SubmitPrediction(ctx context.Context, userID int64, matchID, home, away int) (league.Prediction, error) {
	if home < 0 || away < 0 {
		return league.Prediction{}, ErrInvalidScore
	}

	e.mu.RLock()
	ready := e.ready
	_, known := e.users[userID]
	e.mu.RUnlock()
	if !ready {
		return league.Prediction{}, ErrNotReady
	}

	var fetched *league.User
	if !known {
		u, err := e.store.GetUser(ctx, userID)
		if err != nil {
			return league.Prediction{}, fmt.Errorf("failed to look up user: %w", err)
		}
		if u == nil {
			return league.Prediction{}, ErrUserNotFound
		}
		fetched = u
	}

	e.mu.Lock()
	if fetched != nil {
		if _, ok := e.users[fetched.ID]; !ok {
			u := *fetched
			e.users[u.ID] = &u
		}
	}
	m, ok := e.matchIndex[matchID]
	if !ok {
		e.mu.Unlock()
		return league.Prediction{}, ErrMatchNotFound
	}
	if m.Status != league.StatusPending || !e.now().Before(m.StartTime) {
		e.mu.Unlock()
		return league.Prediction{}, ErrMatchNotPending
	}

	p, exists := e.byUserMatch[predictionKey{userID, matchID}]
	if exists {
		p.HomeScore, p.AwayScore = home, away
	} else {
		e.nextPredictionID++
		p = &league.Prediction{ID: e.nextPredictionID, UserID: userID, MatchID: matchID, HomeScore: home, AwayScore: away}
		e.addPrediction(p)
	}
	e.dirtyPredictions[p.ID] = struct{}{}
	e.outbox = append(e.outbox, league.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     "Prediction received",
		Message:   fmt.Sprintf("Your prediction %d-%d for %s vs %s has been recorded", home, away, m.HomeTeam, m.AwayTeam),
		CreatedAt: e.now(),
	})
	out := p.Clone()
	e.mu.Unlock()

	log.Info("Prediction received", "predictionID", out.ID, "userID", userID, "matchID", matchID, "home", home, "away", away, "updated", exists)
	e.flusher.Request()
	return out, nil
}
