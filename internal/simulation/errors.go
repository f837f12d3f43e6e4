package simulation

import "errors"

var (
	ErrNotReady        = errors.New("simulation is not ready")
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchNotPending = errors.New("match is no longer accepting predictions")
	ErrUserNotFound    = errors.New("user not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrInvalidScore    = errors.New("scores must be non-negative")
)
