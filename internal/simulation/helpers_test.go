package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
	"github.com/sbermejom01/api-BetsSoccer/internal/notifier"
	"github.com/sbermejom01/api-BetsSoccer/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

// fourTeams gives 6 rounds of 2 matches: kick-offs every 5 minutes, matches
// last 5m30s.
var fourTeams = Config{RoundDuration: 10 * time.Minute, MatchOverlap: 30 * time.Second, League: "Test League"}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type harness struct {
	engine   *Engine
	store    *MockStore
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	metrics  *metrics.Mock
	clock    *fakeClock
}

func newHarness(t *testing.T, snap *league.Snapshot, cfg Config, seed uint64) *harness {
	t.Helper()
	h := &harness{
		store:    NewMockStore(snap),
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock(),
		metrics:  metrics.NewMock(),
		clock:    &fakeClock{now: t0},
	}
	h.engine = New(h.store, h.notifier, h.metrics, h.pubsub, cfg,
		WithClock(h.clock.Now),
		WithRand(rand.New(rand.NewPCG(seed, seed*7+1))),
		WithDispatcher(func(f func()) { f() }),
	)
	t.Cleanup(h.engine.flusher.Wait)
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	require.NoError(t, h.engine.Start(context.Background()))
}

// at moves the clock to t0+d and ticks.
func (h *harness) at(t *testing.T, d time.Duration) {
	t.Helper()
	h.clock.Set(t0.Add(d))
	require.NoError(t, h.engine.Tick(context.Background()))
}

// leagueSnapshot builds n teams with two players each and three users.
func leagueSnapshot(n int) *league.Snapshot {
	snap := &league.Snapshot{}
	var playerID int64
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Team %02d", i)
		snap.Teams = append(snap.Teams, league.Team{Name: name, Strength: 60 + i})
		for j := 1; j <= 2; j++ {
			playerID++
			snap.Players = append(snap.Players, league.Player{ID: playerID, Team: name, Name: fmt.Sprintf("%s Forward %d", name, j)})
		}
	}
	snap.Users = []league.User{{ID: 1, Username: "ana"}, {ID: 2, Username: "ben"}, {ID: 3, Username: "carla"}}
	return snap
}

// assertFinished checks the terminal state of a match.
func assertFinished(t *testing.T, m league.Match) {
	t.Helper()
	assert.Equal(t, league.StatusFinished, m.Status, "match %d", m.ID)
	assert.Equal(t, 90, m.Minute)
	require.Len(t, m.Events, m.HomeScore+m.AwayScore, "match %d", m.ID)

	h, a, prev := 0, 0, 0
	for _, ev := range m.Events {
		assert.Equal(t, league.EventGoal, ev.Type)
		assert.GreaterOrEqual(t, ev.Minute, 1)
		assert.LessOrEqual(t, ev.Minute, 90)
		assert.GreaterOrEqual(t, ev.Minute, prev, "events are ordered by minute")
		prev = ev.Minute
		if ev.Team == m.HomeTeam {
			h++
		} else {
			assert.Equal(t, m.AwayTeam, ev.Team)
			a++
		}
		assert.Equal(t, fmt.Sprintf("%d-%d", h, a), ev.Score, "running score of match %d", m.ID)
	}
	assert.Equal(t, h, m.HomeScore)
	assert.Equal(t, a, m.AwayScore)
}
