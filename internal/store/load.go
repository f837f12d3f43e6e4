package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/vmihailenco/msgpack/v5"
)

// Load reads every table the simulation needs. Teams come back in insertion
// order, which is the order the schedule is generated from.
func (s *store) Load(ctx context.Context) (*league.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &league.Snapshot{}
	var err error

	if snap.Teams, err = s.loadTeams(ctx); err != nil {
		return nil, err
	}
	if snap.Matches, err = s.loadMatches(ctx); err != nil {
		return nil, err
	}
	if snap.Predictions, err = s.loadPredictions(ctx); err != nil {
		return nil, err
	}
	if snap.Players, err = s.loadPlayers(ctx); err != nil {
		return nil, err
	}
	if snap.Users, err = s.loadUsers(ctx); err != nil {
		return nil, err
	}
	if snap.State, err = s.loadState(ctx); err != nil {
		return nil, err
	}

	log.Info("Loaded league data", "teams", len(snap.Teams), "matches", len(snap.Matches),
		"predictions", len(snap.Predictions), "players", len(snap.Players), "users", len(snap.Users),
		"initialized", snap.State != nil)
	return snap, nil
}

func (s *store) GetUser(ctx context.Context, id int64) (*league.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u league.User
	err := s.db.QueryRowContext(ctx, `SELECT id, username, points FROM users WHERE id = ?`, id).Scan(&u.ID, &u.Username, &u.Points)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

func (s *store) loadTeams(ctx context.Context) ([]league.Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, strength, played, won, drawn, lost, goals_for, goals_against, points
		FROM teams ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []league.Team
	for rows.Next() {
		var t league.Team
		if err := rows.Scan(&t.Name, &t.Strength, &t.Played, &t.Won, &t.Drawn, &t.Lost, &t.GoalsFor, &t.GoalsAgainst, &t.Points); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *store) loadMatches(ctx context.Context) ([]league.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, round, home_team, away_team, home_score, away_score, status, minute, start_time, league, events_blob
		FROM matches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []league.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*league.Match, error) {
	var (
		m         league.Match
		status    string
		startTime int64
		events    []byte
	)
	err := scanner.Scan(&m.ID, &m.Round, &m.HomeTeam, &m.AwayTeam, &m.HomeScore, &m.AwayScore,
		&status, &m.Minute, &startTime, &m.League, &events)
	if err != nil {
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	m.Status = league.MatchStatus(status)
	m.StartTime = time.UnixMilli(startTime)
	if len(events) > 0 {
		if err := msgpack.Unmarshal(events, &m.Events); err != nil {
			return nil, fmt.Errorf("failed to decode events of match %d: %w", m.ID, err)
		}
	}
	if m.Events == nil {
		m.Events = []league.MatchEvent{}
	}
	return &m, nil
}

func (s *store) loadPredictions(ctx context.Context) ([]league.Prediction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, match_id, home_score, away_score, points_earned
		FROM predictions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []league.Prediction
	for rows.Next() {
		var (
			p      league.Prediction
			points sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.MatchID, &p.HomeScore, &p.AwayScore, &points); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if points.Valid {
			v := int(points.Int64)
			p.PointsEarned = &v
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

func (s *store) loadPlayers(ctx context.Context) ([]league.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, team_name, name, goals FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []league.Player
	for rows.Next() {
		var p league.Player
		if err := rows.Scan(&p.ID, &p.Team, &p.Name, &p.Goals); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) loadUsers(ctx context.Context) ([]league.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username, points FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []league.User
	for rows.Next() {
		var u league.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Points); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// loadState returns nil when the season was never initialized.
func (s *store) loadState(ctx context.Context) (*league.SeasonState, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT state_blob FROM simulation_state WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query season state: %w", err)
	}

	var state league.SeasonState
	if err := msgpack.Unmarshal(blob, &state); err != nil {
		return nil, fmt.Errorf("failed to decode season state: %w", err)
	}
	return &state, nil
}
