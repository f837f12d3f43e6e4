package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. It doubles as
// the topic name.
type EventType string

const (
	EventMatchFinished     EventType = "match-finished"
	EventPredictionSettled EventType = "prediction-settled"
	EventRoundAdvanced     EventType = "round-advanced"
)

// MatchFinishedMessage is published once per finalized match.
type MatchFinishedMessage struct {
	Match league.Match `msgpack:"match"`
}

// PredictionSettledMessage carries the notification created for a winning prediction.
type PredictionSettledMessage struct {
	Notification league.Notification `msgpack:"notification"`
	MatchID      int                 `msgpack:"match_id"`
	Points       int                 `msgpack:"points"`
}

// RoundAdvancedMessage is published when the season clock moves to a new round.
type RoundAdvancedMessage struct {
	Round      int       `msgpack:"round"`
	AdvancedAt time.Time `msgpack:"advanced_at"`
}
