package store

import (
	"context"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

// LeagueStore is the durable side of the simulation. Every write is an
// idempotent upsert keyed by natural identity.
type LeagueStore interface {
	Load(ctx context.Context) (*league.Snapshot, error)
	// GetUser returns nil and no error when the user does not exist.
	GetUser(ctx context.Context, id int64) (*league.User, error)
	// SaveBatch writes a flush in a single transaction.
	SaveBatch(ctx context.Context, b league.Batch) error

	SaveSnapshot(ctx context.Context, state league.SeasonState) error
	SaveTeam(ctx context.Context, team league.Team) error
	SaveMatch(ctx context.Context, match league.Match) error
	SavePrediction(ctx context.Context, p league.Prediction) error
	CreditUser(ctx context.Context, userID int64, total int) error
	RecordNotification(ctx context.Context, n league.Notification) error
	SavePlayerGoals(ctx context.Context, playerID int64, goals int) error

	// Seeding
	UpsertTeam(ctx context.Context, name string, strength int) error
	AddPlayer(ctx context.Context, team, name string) error
	AddUser(ctx context.Context, username, email string) (int64, error)
}
