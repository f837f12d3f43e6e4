package simulation

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
	"github.com/sbermejom01/api-BetsSoccer/internal/persistence"
	"github.com/sbermejom01/api-BetsSoccer/internal/pubsub"
)

const (
	DefaultRoundDuration = 10 * time.Hour
	DefaultMatchOverlap  = time.Minute
	DefaultFlushTimeout  = 30 * time.Second
	DefaultLeague        = "La Liga"
)

// Config holds the season timing and labels.
type Config struct {
	RoundDuration time.Duration
	// MatchOverlap is added to the kick-off spacing so a match ends shortly
	// after the next one starts.
	MatchOverlap time.Duration
	FlushTimeout time.Duration
	League       string
	DryRun       bool
}

func (c Config) withDefaults() Config {
	if c.RoundDuration <= 0 {
		c.RoundDuration = DefaultRoundDuration
	}
	if c.MatchOverlap < 0 {
		c.MatchOverlap = 0
	}
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = DefaultFlushTimeout
	}
	if c.League == "" {
		c.League = DefaultLeague
	}
	return c
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand replaces the random source of the goal process.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithDispatcher replaces the goroutine used to publish announcements.
func WithDispatcher(async func(func())) Option {
	return func(e *Engine) { e.async = async }
}

type predictionKey struct {
	userID  int64
	matchID int
}

// Engine owns the in-memory season. Every mutation happens under mu; ticks are
// serialized by tickMu.
type Engine struct {
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	flusher  *persistence.Coordinator
	cfg      Config

	now   func() time.Time
	rng   *rand.Rand
	async func(func())

	tickMu sync.Mutex
	mu     sync.RWMutex
	ready  bool

	state         league.SeasonState
	spacing       time.Duration
	matchDuration time.Duration

	teams      []*league.Team
	teamIndex  map[string]*league.Team
	matches    []*league.Match
	matchIndex map[int]*league.Match
	rosters    map[string][]*league.Player
	players    map[int64]*league.Player
	users      map[int64]*league.User

	predictions      map[int64]*league.Prediction
	byMatch          map[int][]*league.Prediction
	byUserMatch      map[predictionKey]*league.Prediction
	nextPredictionID int64

	fullSync         bool
	dirtyPredictions map[int64]struct{}
	dirtyUsers       map[int64]struct{}
	dirtyPlayers     map[int64]struct{}
	outbox           []league.Notification
	announcements    []announcement
}

// announcement is a message published once the tick released the lock.
type announcement struct {
	match        *league.Match
	notification *league.Notification
	matchID      int
	points       int
	round        int
	standings    []league.Team
	at           time.Time
}

// State is the public view of the season clock.
type State struct {
	CurrentRound int       `json:"currentRound"`
	TotalRounds  int       `json:"totalRounds"`
	Started      bool      `json:"started"`
	RoundStart   time.Time `json:"roundStart"`
	NextRoundAt  time.Time `json:"nextRoundAt"`
	Ready        bool      `json:"ready"`
}

// PredictionStatus tells a user how a prediction went.
type PredictionStatus string

const (
	PredictionPending PredictionStatus = "pending"
	PredictionWon     PredictionStatus = "won"
	PredictionLost    PredictionStatus = "lost"
)

// UserPrediction is a prediction joined with its match.
type UserPrediction struct {
	league.Prediction
	Match  league.Match     `json:"match"`
	Status PredictionStatus `json:"status"`
}
