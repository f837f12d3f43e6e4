package simulation

import (
	"context"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/notifier"
)

// Store defines the persistence operations required by the engine.
type Store interface {
	Load(ctx context.Context) (*league.Snapshot, error)
	// GetUser returns nil and no error when the user does not exist.
	GetUser(ctx context.Context, id int64) (*league.User, error)
	SaveBatch(ctx context.Context, b league.Batch) error
}

// Notifier is the league feed the engine announces results to.
type Notifier interface {
	notifier.Notifier
}
