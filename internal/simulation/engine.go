package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
	"github.com/sbermejom01/api-BetsSoccer/internal/persistence"
	"github.com/sbermejom01/api-BetsSoccer/internal/pubsub"
)

// New creates a new Engine. Nothing is loaded until Start is called.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, cfg Config, opts ...Option) *Engine {
	seed := uint64(time.Now().UnixNano())
	e := &Engine{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(seed, seed>>1)),
		async:    func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.reset()
	e.flusher = persistence.NewCoordinator(e, store, metrics, e.cfg.FlushTimeout)
	return e
}

func (e *Engine) reset() {
	e.teams = nil
	e.teamIndex = make(map[string]*league.Team)
	e.matches = nil
	e.matchIndex = make(map[int]*league.Match)
	e.rosters = make(map[string][]*league.Player)
	e.players = make(map[int64]*league.Player)
	e.users = make(map[int64]*league.User)
	e.predictions = make(map[int64]*league.Prediction)
	e.byMatch = make(map[int][]*league.Prediction)
	e.byUserMatch = make(map[predictionKey]*league.Prediction)
	e.nextPredictionID = 0
	e.dirtyPredictions = make(map[int64]struct{})
	e.dirtyUsers = make(map[int64]struct{})
	e.dirtyPlayers = make(map[int64]struct{})
	e.outbox = nil
	e.announcements = nil
}

// Start loads the persisted league, initializes the season if needed, replays
// the time that passed while the process was down and writes the result.
func (e *Engine) Start(ctx context.Context) error {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	start := time.Now()
	snap, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load league: %w", err)
	}

	e.mu.Lock()
	e.hydrate(snap)
	e.mu.Unlock()

	if err := e.Initialize(ctx); err != nil {
		return err
	}

	e.mu.Lock()
	advanced := e.advance(e.now())
	e.ready = true
	round := e.state.CurrentRound
	out := e.drainAnnouncements()
	e.mu.Unlock()

	e.dispatch(out)

	if err := e.flusher.Flush(ctx); err != nil {
		log.Error("Initial flush failed, will retry on next tick", "error", err)
	}
	e.metrics.SetStartupTime(time.Since(start).Seconds())
	log.Info("Simulation ready", "round", round, "roundsReplayed", advanced, "duration", time.Since(start))
	return nil
}

func (e *Engine) hydrate(snap *league.Snapshot) {
	e.reset()
	if snap == nil {
		return
	}
	for i := range snap.Teams {
		t := snap.Teams[i]
		e.teams = append(e.teams, &t)
		e.teamIndex[t.Name] = &t
	}
	for i := range snap.Matches {
		m := snap.Matches[i].Clone()
		e.addMatch(&m)
	}
	sort.Slice(e.matches, func(i, j int) bool { return e.matches[i].ID < e.matches[j].ID })
	for i := range snap.Players {
		p := snap.Players[i]
		e.players[p.ID] = &p
		e.rosters[p.Team] = append(e.rosters[p.Team], &p)
	}
	for i := range snap.Users {
		u := snap.Users[i]
		e.users[u.ID] = &u
	}
	for i := range snap.Predictions {
		p := snap.Predictions[i].Clone()
		e.addPrediction(&p)
	}
	if snap.State != nil {
		e.state = snap.State.Clone()
	}
}

func (e *Engine) addMatch(m *league.Match) {
	e.matches = append(e.matches, m)
	e.matchIndex[m.ID] = m
}

func (e *Engine) addPrediction(p *league.Prediction) {
	e.predictions[p.ID] = p
	e.byMatch[p.MatchID] = append(e.byMatch[p.MatchID], p)
	e.byUserMatch[predictionKey{p.UserID, p.MatchID}] = p
	if p.ID > e.nextPredictionID {
		e.nextPredictionID = p.ID
	}
}

// Initialize generates the season when no fixtures exist. An existing season
// only gets the match rows it is missing.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Started && len(e.state.Fixtures) > 0 {
		e.deriveTiming()
		if repaired := e.repairSchedule(); repaired > 0 {
			log.Warn("Restored missing matches from the fixture table", "count", repaired)
			e.fullSync = true
		}
		e.metrics.SetCurrentRound(e.state.CurrentRound)
		return nil
	}

	names := make([]string, len(e.teams))
	for i, t := range e.teams {
		names[i] = t.Name
	}
	fixtures, err := league.GenerateSeason(names)
	if err != nil {
		return fmt.Errorf("failed to generate schedule: %w", err)
	}

	now := e.now()
	e.state = league.SeasonState{CurrentRound: 1, Started: true, RoundStart: now, Fixtures: fixtures}
	e.deriveTiming()

	e.matches = nil
	e.matchIndex = make(map[int]*league.Match)
	for r, round := range fixtures {
		for p, f := range round {
			e.addMatch(e.newMatch(now, r, p, f))
		}
	}
	e.fullSync = true
	e.metrics.SetCurrentRound(1)
	log.Info("Season generated", "teams", len(names), "rounds", len(fixtures), "matches", len(e.matches), "league", e.cfg.League)
	return nil
}

// repairSchedule recreates matches listed in the fixture table but absent from
// memory.
func (e *Engine) repairSchedule() int {
	seasonStart := e.state.RoundStart.Add(-time.Duration(e.state.CurrentRound-1) * e.cfg.RoundDuration)
	repaired := 0
	perRound := len(e.state.Fixtures[0])
	for r, round := range e.state.Fixtures {
		for p, f := range round {
			if _, ok := e.matchIndex[league.MatchID(r, p, perRound)]; ok {
				continue
			}
			e.addMatch(e.newMatch(seasonStart, r, p, f))
			repaired++
		}
	}
	if repaired > 0 {
		sort.Slice(e.matches, func(i, j int) bool { return e.matches[i].ID < e.matches[j].ID })
	}
	return repaired
}

func (e *Engine) deriveTiming() {
	perRound := 1
	if len(e.state.Fixtures) > 0 && len(e.state.Fixtures[0]) > 0 {
		perRound = len(e.state.Fixtures[0])
	}
	e.spacing = e.cfg.RoundDuration / time.Duration(perRound)
	e.matchDuration = e.spacing + e.cfg.MatchOverlap
}

func (e *Engine) newMatch(seasonStart time.Time, roundIdx, pos int, f league.Fixture) *league.Match {
	return &league.Match{
		ID:        league.MatchID(roundIdx, pos, len(e.state.Fixtures[roundIdx])),
		Round:     roundIdx + 1,
		HomeTeam:  f.Home,
		AwayTeam:  f.Away,
		Status:    league.StatusPending,
		StartTime: seasonStart.Add(time.Duration(roundIdx)*e.cfg.RoundDuration + time.Duration(pos)*e.spacing),
		League:    e.cfg.League,
		Events:    []league.MatchEvent{},
	}
}

// Run ticks the season until ctx is cancelled, then waits for the last flush.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info("Season clock started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Season clock stopping, flushing state")
			flushCtx, cancel := context.WithTimeout(context.Background(), e.cfg.FlushTimeout)
			err := e.flusher.Flush(flushCtx)
			cancel()
			return err
		case <-ticker.C:
			if !e.tickMu.TryLock() {
				log.Warn("Previous tick still running, skipping")
				e.metrics.IncTicksSkipped()
				continue
			}
			e.tick()
			e.tickMu.Unlock()
		}
	}
}

// Tick runs one evaluation cycle and returns once it is applied in memory. A
// call made while another tick runs waits for it.
func (e *Engine) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	return e.tick()
}

func (e *Engine) tick() error {
	start := time.Now()

	e.mu.Lock()
	if !e.ready || !e.state.Started {
		e.mu.Unlock()
		return ErrNotReady
	}
	e.advance(e.now())
	out := e.drainAnnouncements()
	e.mu.Unlock()

	e.dispatch(out)
	e.flusher.Request()

	e.metrics.IncTicks()
	e.metrics.ObserveTickDuration(time.Since(start).Seconds())
	return nil
}

// advance brings every match to the state the clock implies, then replays
// whole rounds that already ended. It returns the number of rounds advanced.
func (e *Engine) advance(now time.Time) int {
	for _, m := range e.matches {
		e.evaluate(m, now)
	}
	return e.catchUp(now)
}

// Ready reports whether Start completed.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ready
}

// Flush writes pending changes and waits for the transaction.
func (e *Engine) Flush(ctx context.Context) error {
	return e.flusher.Flush(ctx)
}
