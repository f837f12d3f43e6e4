package store

import (
	"context"
	"database/sql"
	"sync"
)

// store persists the league in SQLite or libsql.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// execer is satisfied by both *sql.DB and *sql.Tx, so single writes and
// batched writes share the same statements.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
