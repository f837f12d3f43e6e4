package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// SaveBatch writes the season snapshot, teams, matches and the dirty rows of a
// flush in one transaction. Any failure rolls the whole batch back.
func (s *store) SaveBatch(ctx context.Context, b league.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveSnapshot(ctx, tx, b.State); err != nil {
		return err
	}
	for _, t := range b.Teams {
		if err := saveTeam(ctx, tx, t); err != nil {
			return err
		}
	}
	for _, m := range b.Matches {
		if err := saveMatch(ctx, tx, m); err != nil {
			return err
		}
	}
	for _, u := range b.Users {
		if err := creditUser(ctx, tx, u.ID, u.Points); err != nil {
			return err
		}
	}
	for _, p := range b.Players {
		if err := savePlayerGoals(ctx, tx, p.ID, p.Goals); err != nil {
			return err
		}
	}
	for _, p := range b.Predictions {
		if err := savePrediction(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, n := range b.Notifications {
		if err := recordNotification(ctx, tx, n); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	log.Debug("Batch committed", "round", b.State.CurrentRound, "teams", len(b.Teams), "matches", len(b.Matches),
		"predictions", len(b.Predictions), "notifications", len(b.Notifications))
	return nil
}

func (s *store) SaveSnapshot(ctx context.Context, state league.SeasonState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveSnapshot(ctx, s.db, state)
}

func (s *store) SaveTeam(ctx context.Context, team league.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveTeam(ctx, s.db, team)
}

func (s *store) SaveMatch(ctx context.Context, match league.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveMatch(ctx, s.db, match)
}

func (s *store) SavePrediction(ctx context.Context, p league.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return savePrediction(ctx, s.db, p)
}

func (s *store) CreditUser(ctx context.Context, userID int64, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return creditUser(ctx, s.db, userID, total)
}

func (s *store) RecordNotification(ctx context.Context, n league.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recordNotification(ctx, s.db, n)
}

func (s *store) SavePlayerGoals(ctx context.Context, playerID int64, goals int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return savePlayerGoals(ctx, s.db, playerID, goals)
}

// UpsertTeam inserts a team or refreshes its strength, keeping its statistics.
func (s *store) UpsertTeam(ctx context.Context, name string, strength int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (name, strength) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET strength = excluded.strength`, name, strength)
	if err != nil {
		return fmt.Errorf("failed to upsert team %s: %w", name, err)
	}
	return nil
}

// AddPlayer adds a squad member. Existing players are left untouched.
func (s *store) AddPlayer(ctx context.Context, team, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO players (team_name, name) VALUES (?, ?)`, team, name)
	if err != nil {
		return fmt.Errorf("failed to add player %s: %w", name, err)
	}
	return nil
}

// AddUser creates a user, or returns the id of the user that already owns the email.
func (s *store) AddUser(ctx context.Context, username, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO users (username, email) VALUES (?, ?)`, username, email); err != nil {
		return 0, fmt.Errorf("failed to add user %s: %w", username, err)
	}
	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, email).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	return id, nil
}

func saveSnapshot(ctx context.Context, ex execer, state league.SeasonState) error {
	blob, err := msgpack.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode season state: %w", err)
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO simulation_state (id, state_blob, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET state_blob = excluded.state_blob, updated_at = excluded.updated_at`,
		blob, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save season state: %w", err)
	}
	return nil
}

func saveTeam(ctx context.Context, ex execer, t league.Team) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO teams (name, strength, played, won, drawn, lost, goals_for, goals_against, points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			strength = excluded.strength,
			played = excluded.played,
			won = excluded.won,
			drawn = excluded.drawn,
			lost = excluded.lost,
			goals_for = excluded.goals_for,
			goals_against = excluded.goals_against,
			points = excluded.points`,
		t.Name, t.Strength, t.Played, t.Won, t.Drawn, t.Lost, t.GoalsFor, t.GoalsAgainst, t.Points)
	if err != nil {
		return fmt.Errorf("failed to save team %s: %w", t.Name, err)
	}
	return nil
}

func saveMatch(ctx context.Context, ex execer, m league.Match) error {
	events, err := msgpack.Marshal(m.Events)
	if err != nil {
		return fmt.Errorf("failed to encode events of match %d: %w", m.ID, err)
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO matches (id, round, home_team, away_team, home_score, away_score, status, minute, start_time, league, events_blob)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			round = excluded.round,
			home_team = excluded.home_team,
			away_team = excluded.away_team,
			home_score = excluded.home_score,
			away_score = excluded.away_score,
			status = excluded.status,
			minute = excluded.minute,
			start_time = excluded.start_time,
			league = excluded.league,
			events_blob = excluded.events_blob`,
		m.ID, m.Round, m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore, string(m.Status), m.Minute,
		m.StartTime.UnixMilli(), m.League, events)
	if err != nil {
		return fmt.Errorf("failed to save match %d: %w", m.ID, err)
	}
	return nil
}

// savePrediction upserts by id. Ids are assigned once per (user, match) pair so
// the unique pair constraint never fires for a known prediction. The awarded
// points travel with the row.
func savePrediction(ctx context.Context, ex execer, p league.Prediction) error {
	var points sql.NullInt64
	if p.PointsEarned != nil {
		points = sql.NullInt64{Int64: int64(*p.PointsEarned), Valid: true}
	}
	_, err := ex.ExecContext(ctx, `
		INSERT INTO predictions (id, user_id, match_id, home_score, away_score, points_earned)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			home_score = excluded.home_score,
			away_score = excluded.away_score,
			points_earned = excluded.points_earned`,
		p.ID, p.UserID, p.MatchID, p.HomeScore, p.AwayScore, points)
	if err != nil {
		return fmt.Errorf("failed to save prediction %d: %w", p.ID, err)
	}
	return nil
}

func creditUser(ctx context.Context, ex execer, userID int64, total int) error {
	if _, err := ex.ExecContext(ctx, `UPDATE users SET points = ? WHERE id = ?`, total, userID); err != nil {
		return fmt.Errorf("failed to credit user %d: %w", userID, err)
	}
	return nil
}

func recordNotification(ctx context.Context, ex execer, n league.Notification) error {
	_, err := ex.ExecContext(ctx, `
		INSERT OR IGNORE INTO notifications (id, user_id, title, message, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Message, n.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record notification %s: %w", n.ID, err)
	}
	return nil
}

func savePlayerGoals(ctx context.Context, ex execer, playerID int64, goals int) error {
	if _, err := ex.ExecContext(ctx, `UPDATE players SET goals = ? WHERE id = ?`, goals, playerID); err != nil {
		return fmt.Errorf("failed to save goals of player %d: %w", playerID, err)
	}
	return nil
}
