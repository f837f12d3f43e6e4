package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
	"github.com/sbermejom01/api-BetsSoccer/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	t.Run("generates the season when none exists", func(t *testing.T) {
		// Setup
		h := newHarness(t, leagueSnapshot(4), fourTeams, 1)

		// Execute
		h.start(t)

		// Assert
		assert.True(t, h.engine.Ready())
		state := h.engine.CurrentState()
		assert.Equal(t, 1, state.CurrentRound)
		assert.Equal(t, 6, state.TotalRounds)
		assert.True(t, state.RoundStart.Equal(t0))
		assert.True(t, state.NextRoundAt.Equal(t0.Add(10*time.Minute)))

		matches := h.engine.AllMatches()
		require.Len(t, matches, 12)
		for i, m := range matches {
			assert.Equal(t, i+1, m.ID)
			if m.ID == 1 {
				assert.Equal(t, league.StatusLive, m.Status, "the first match kicks off with the season")
			} else {
				assert.Equal(t, league.StatusPending, m.Status)
			}
			assert.Equal(t, "Test League", m.League)
			pos := (m.ID - 1) % 2
			want := t0.Add(time.Duration(m.Round-1)*10*time.Minute + time.Duration(pos)*5*time.Minute)
			assert.True(t, m.StartTime.Equal(want), "start of match %d", m.ID)
		}

		batches := h.store.Batches()
		require.NotEmpty(t, batches)
		assert.True(t, batches[0].Full)
		assert.Len(t, batches[0].Matches, 12)
		assert.Equal(t, 1, batches[0].State.CurrentRound)
		assert.False(t, h.engine.PendingBatch().Full, "the full match set was acknowledged")
	})

	t.Run("fails when the store cannot be loaded", func(t *testing.T) {
		h := newHarness(t, nil, fourTeams, 1)
		h.store.LoadFunc = func(ctx context.Context) (*league.Snapshot, error) {
			return nil, errors.New("no such table: teams")
		}

		err := h.engine.Start(context.Background())

		require.Error(t, err)
		assert.False(t, h.engine.Ready())
		assert.Empty(t, h.store.Batches(), "nothing is written from a partial load")
	})

	t.Run("rejects an odd team count", func(t *testing.T) {
		h := newHarness(t, leagueSnapshot(3), fourTeams, 1)

		err := h.engine.Start(context.Background())

		assert.ErrorIs(t, err, league.ErrInvalidTeamCount)
		assert.False(t, h.engine.Ready())
	})

	t.Run("restores missing matches of an existing season", func(t *testing.T) {
		// Setup
		first := newHarness(t, leagueSnapshot(4), fourTeams, 1)
		first.start(t)
		saved := first.store.Batches()[0]

		snap := leagueSnapshot(4)
		state := saved.State.Clone()
		snap.State = &state
		for _, m := range saved.Matches {
			if m.ID != 5 && m.ID != 6 {
				snap.Matches = append(snap.Matches, m)
			}
		}
		h := newHarness(t, snap, fourTeams, 1)

		// Execute
		h.start(t)

		// Assert
		matches := h.engine.AllMatches()
		require.Len(t, matches, 12)
		assert.Equal(t, saved.Matches, matches, "repaired matches match the originals")
		assert.True(t, h.store.Batches()[0].Full)
	})

	t.Run("replays rounds that passed while the process was down", func(t *testing.T) {
		// Setup
		first := newHarness(t, leagueSnapshot(4), fourTeams, 1)
		first.start(t)
		saved := first.store.Batches()[0]
		snap := leagueSnapshot(4)
		state := saved.State.Clone()
		snap.State = &state
		snap.Matches = saved.Matches

		h := newHarness(t, snap, fourTeams, 2)
		h.clock.Set(t0.Add(25 * time.Minute))

		// Execute
		h.start(t)

		// Assert
		assert.Equal(t, 3, h.engine.CurrentState().CurrentRound)
		for _, m := range h.engine.AllMatches() {
			if m.Round <= 2 {
				assertFinished(t, m)
			}
		}
		assert.Equal(t, []int{3}, h.notifier.RoundSummaries())
	})

	t.Run("finishes matches of the current round that ended while down", func(t *testing.T) {
		// Setup
		first := newHarness(t, leagueSnapshot(4), fourTeams, 1)
		first.start(t)
		saved := first.store.Batches()[0]
		snap := leagueSnapshot(4)
		state := saved.State.Clone()
		snap.State = &state
		snap.Matches = saved.Matches

		h := newHarness(t, snap, fourTeams, 4)
		h.clock.Set(t0.Add(8 * time.Minute))

		// Execute
		h.start(t)

		// Assert
		require.True(t, h.engine.Ready())
		assert.Equal(t, 1, h.engine.CurrentState().CurrentRound)
		m1, err := h.engine.MatchByID(1)
		require.NoError(t, err)
		assertFinished(t, m1)
		m2, err := h.engine.MatchByID(2)
		require.NoError(t, err)
		assert.Equal(t, league.StatusLive, m2.Status)
		assert.Equal(t, 1, h.notifier.MatchResults())
		assert.Zero(t, h.metrics.Ticks(), "no tick was needed")
	})
}

func TestTick_MatchLifecycle(t *testing.T) {
	// Setup
	h := newHarness(t, leagueSnapshot(4), fourTeams, 3)
	h.start(t)

	// Execute & Assert: kick-off
	h.at(t, time.Minute)
	m1, err := h.engine.MatchByID(1)
	require.NoError(t, err)
	assert.Equal(t, league.StatusLive, m1.Status)
	assert.Equal(t, 16, m1.Minute, "one minute of a 5m30s match")
	m2, err := h.engine.MatchByID(2)
	require.NoError(t, err)
	assert.Equal(t, league.StatusPending, m2.Status)

	// Execute & Assert: full time for the first match, kick-off for the second
	h.at(t, 6*time.Minute)
	m1, err = h.engine.MatchByID(1)
	require.NoError(t, err)
	assertFinished(t, m1)
	m2, err = h.engine.MatchByID(2)
	require.NoError(t, err)
	assert.Equal(t, league.StatusLive, m2.Status)

	played := 0
	for _, team := range h.engine.Standings() {
		played += team.Played
	}
	assert.Equal(t, 2, played, "both teams of the finished match played once")
	assert.Equal(t, 1, h.notifier.MatchResults())
	assert.Equal(t, 1, h.pubsub.Count(pubsub.EventMatchFinished))
	assert.Equal(t, 2, h.metrics.Ticks())
	assert.Equal(t, 1, h.engine.CurrentState().CurrentRound)
}

func TestFastForward_PendingMatchesReachConsistentFinish(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		h := newHarness(t, leagueSnapshot(4), fourTeams, seed)
		h.start(t)

		// The whole first round passes without a single observed tick.
		h.at(t, 10*time.Minute)

		goals, played, goalsFor := 0, 0, 0
		for _, m := range h.engine.MatchesForRound(1) {
			assertFinished(t, m)
			goals += m.HomeScore + m.AwayScore
		}
		for _, team := range h.engine.Standings() {
			played += team.Played
			goalsFor += team.GoalsFor
		}
		assert.Equal(t, 4, played, "seed %d", seed)
		assert.Equal(t, goals, goalsFor, "seed %d", seed)
		assert.Equal(t, goals, h.metrics.Goals("fast_forward"), "seed %d", seed)
	}
}

func TestLiveMatch_KeepsObservedGoalsWhenFinished(t *testing.T) {
	liveGoals := 0
	for seed := uint64(1); seed <= 20; seed++ {
		// Setup
		h := newHarness(t, leagueSnapshot(4), fourTeams, seed)
		h.start(t)

		// Execute: watch the first match every 10 seconds up to minute 81
		for d := 10 * time.Second; d <= 5*time.Minute; d += 10 * time.Second {
			h.at(t, d)
		}
		live, err := h.engine.MatchByID(1)
		require.NoError(t, err)
		require.Equal(t, league.StatusLive, live.Status)
		liveGoals += len(live.Events)
		assert.Equal(t, len(live.Events), h.metrics.Goals("live"))

		h.at(t, 5*time.Minute+45*time.Second)

		// Assert
		finished, err := h.engine.MatchByID(1)
		require.NoError(t, err)
		assertFinished(t, finished)
		require.GreaterOrEqual(t, len(finished.Events), len(live.Events), "seed %d", seed)
		for i, ev := range live.Events {
			assert.Equal(t, ev, finished.Events[i], "seed %d event %d", seed, i)
		}
		for _, ev := range finished.Events[len(live.Events):] {
			assert.Greater(t, ev.Minute, live.Minute, "goals drawn after the last observed minute")
		}
	}
	assert.Positive(t, liveGoals, "some goals are scored while live")
}

func TestGoalEvent_CreditsScorer(t *testing.T) {
	h := newHarness(t, leagueSnapshot(4), fourTeams, 1)
	h.start(t)
	h.at(t, 10*time.Minute)

	goals := map[int64]int{}
	for _, m := range h.engine.MatchesForRound(1) {
		for _, ev := range m.Events {
			require.NotZero(t, ev.PlayerID)
			goals[ev.PlayerID]++
		}
	}
	for _, team := range []string{"Team 01", "Team 02", "Team 03", "Team 04"} {
		players, err := h.engine.TeamPlayers(team)
		require.NoError(t, err)
		for _, p := range players {
			assert.Equal(t, goals[p.ID], p.Goals, "player %s", p.Name)
		}
	}

	t.Run("empty roster uses a placeholder", func(t *testing.T) {
		snap := leagueSnapshot(4)
		snap.Players = nil
		h := newHarness(t, snap, fourTeams, 1)
		h.start(t)

		h.engine.mu.Lock()
		ev := h.engine.goalEvent("Team 01", 12)
		h.engine.mu.Unlock()

		assert.Equal(t, "Unknown Player", ev.Player)
		assert.Zero(t, ev.PlayerID)
	})
}

func TestSettlement(t *testing.T) {
	// Setup
	h := newHarness(t, leagueSnapshot(4), fourTeams, 1)
	h.start(t)
	ctx := context.Background()
	_, err := h.engine.SubmitPrediction(ctx, 1, 2, 2, 1)
	require.NoError(t, err)
	_, err = h.engine.SubmitPrediction(ctx, 2, 2, 1, 0)
	require.NoError(t, err)
	_, err = h.engine.SubmitPrediction(ctx, 3, 2, 0, 2)
	require.NoError(t, err)

	// Execute
	h.engine.mu.Lock()
	m := h.engine.matchIndex[2]
	m.HomeScore, m.AwayScore = 2, 1
	m.Events = []league.MatchEvent{
		{Type: league.EventGoal, Team: m.HomeTeam, Minute: 10, Score: "1-0"},
		{Type: league.EventGoal, Team: m.AwayTeam, Minute: 50, Score: "1-1"},
		{Type: league.EventGoal, Team: m.HomeTeam, Minute: 88, Score: "2-1"},
	}
	require.NoError(t, h.engine.finish(m))
	out := h.engine.drainAnnouncements()
	h.engine.mu.Unlock()
	h.engine.dispatch(out)

	// Assert
	points := map[int64]int{}
	for _, u := range h.engine.Leaderboard() {
		points[u.ID] = u.Points
	}
	assert.Equal(t, map[int64]int{1: 10, 2: 5, 3: 0}, points)
	assert.Equal(t, int64(1), h.engine.Leaderboard()[0].ID)

	statuses := map[int64]PredictionStatus{}
	for _, id := range []int64{1, 2, 3} {
		preds := h.engine.UserPredictions(id)
		require.Len(t, preds, 1)
		require.NotNil(t, preds[0].PointsEarned)
		statuses[id] = preds[0].Status
	}
	assert.Equal(t, map[int64]PredictionStatus{1: PredictionWon, 2: PredictionWon, 3: PredictionLost}, statuses)
	settled, err := h.pubsub.Settled()
	require.NoError(t, err)
	require.Len(t, settled, 2, "only winning predictions notify")
	awarded := []int{settled[0].Points, settled[1].Points}
	assert.ElementsMatch(t, []int{10, 5}, awarded)
	assert.Equal(t, 3, h.metrics.PredictionsSettled())

	t.Run("is idempotent", func(t *testing.T) {
		h.engine.mu.Lock()
		require.NoError(t, h.engine.finish(m))
		resettled := h.engine.settle(m)
		h.engine.mu.Unlock()

		assert.Zero(t, resettled)
		for _, u := range h.engine.Leaderboard() {
			assert.Equal(t, points[u.ID], u.Points)
		}
		played := 0
		for _, team := range h.engine.Standings() {
			played += team.Played
		}
		assert.Equal(t, 2, played, "team statistics are applied once")
	})

	t.Run("a later tick leaves the finished match alone", func(t *testing.T) {
		before, err := h.engine.MatchByID(2)
		require.NoError(t, err)

		h.at(t, 8*time.Minute)

		after, err := h.engine.MatchByID(2)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestCatchUp(t *testing.T) {
	t.Run("is idempotent without clock movement", func(t *testing.T) {
		// Setup
		h := newHarness(t, leagueSnapshot(4), fourTeams, 5)
		h.start(t)
		h.clock.Set(t0.Add(35 * time.Minute))

		// Execute
		advanced := h.engine.CatchUp()
		snapshot := h.engine.AllMatches()
		again := h.engine.CatchUp()

		// Assert
		assert.Equal(t, 3, advanced)
		assert.Zero(t, again)
		state := h.engine.CurrentState()
		assert.Equal(t, 4, state.CurrentRound)
		assert.True(t, state.RoundStart.Equal(t0.Add(30*time.Minute)), "round start moves by whole rounds")
		assert.Equal(t, snapshot, h.engine.AllMatches())
		for _, m := range snapshot {
			if m.Round <= 3 {
				assertFinished(t, m)
			}
		}
		assert.Equal(t, []int{4}, h.notifier.RoundSummaries(), "one summary per catch-up")
		assert.Equal(t, 3, h.metrics.RoundsAdvanced())
	})

	t.Run("stops at the last round", func(t *testing.T) {
		h := newHarness(t, leagueSnapshot(4), fourTeams, 5)
		h.start(t)

		h.at(t, 3*time.Hour)

		assert.Equal(t, 6, h.engine.CurrentState().CurrentRound)
		assert.True(t, h.engine.CurrentState().NextRoundAt.IsZero())
		for _, m := range h.engine.AllMatches() {
			assertFinished(t, m)
		}
		for _, team := range h.engine.Standings() {
			assert.Equal(t, 6, team.Played)
		}
	})

	t.Run("waits for matches that cannot be finished", func(t *testing.T) {
		// Setup
		first := newHarness(t, leagueSnapshot(4), fourTeams, 1)
		first.start(t)
		saved := first.store.Batches()[0]

		snap := leagueSnapshot(4)
		snap.Teams = snap.Teams[:3]
		state := saved.State.Clone()
		snap.State = &state
		snap.Matches = saved.Matches
		h := newHarness(t, snap, fourTeams, 1)
		h.start(t)

		// Execute
		h.at(t, 30*time.Minute)

		// Assert
		assert.Equal(t, 1, h.engine.CurrentState().CurrentRound)
		for _, m := range h.engine.MatchesForRound(1) {
			if m.HomeTeam == "Team 04" || m.AwayTeam == "Team 04" {
				assert.NotEqual(t, league.StatusFinished, m.Status)
			} else {
				assertFinished(t, m)
			}
		}
	})
}

func TestSeason_TenRoundsOfDowntime(t *testing.T) {
	// Setup
	cfg := Config{RoundDuration: time.Minute, League: "La Liga"}
	h := newHarness(t, leagueSnapshot(20), cfg, 42)
	h.start(t)
	ctx := context.Background()

	predicted := 0
	for _, m := range h.engine.AllMatches() {
		if m.Round > 10 || !m.StartTime.After(t0) {
			continue
		}
		for userID := int64(1); userID <= 3; userID++ {
			_, err := h.engine.SubmitPrediction(ctx, userID, m.ID, int(userID)-1, 1)
			require.NoError(t, err)
			predicted++
		}
	}
	require.Positive(t, predicted)

	// Execute
	h.at(t, 10*time.Minute)

	// Assert
	assert.Equal(t, 11, h.engine.CurrentState().CurrentRound)
	for _, m := range h.engine.AllMatches() {
		if m.Round <= 10 {
			assertFinished(t, m)
		}
	}

	earned := map[int64]int{}
	settled := 0
	for userID := int64(1); userID <= 3; userID++ {
		for _, p := range h.engine.UserPredictions(userID) {
			require.NotNil(t, p.PointsEarned, "prediction %d", p.ID)
			earned[userID] += *p.PointsEarned
			settled++
		}
	}
	assert.Equal(t, predicted, settled)
	for _, u := range h.engine.Leaderboard() {
		assert.Equal(t, earned[u.ID], u.Points, "user %s", u.Username)
	}
	assert.Equal(t, 100, h.metrics.MatchesFinished(), "ten rounds of ten matches")
}

func TestRun_SkipsTicksWhileOneIsRunning(t *testing.T) {
	// Setup
	h := newHarness(t, leagueSnapshot(4), fourTeams, 1)
	h.start(t)
	ctx, cancel := context.WithCancel(context.Background())
	h.engine.tickMu.Lock()

	// Execute
	done := make(chan error, 1)
	go func() { done <- h.engine.Run(ctx, 5*time.Millisecond) }()

	// Assert
	require.Eventually(t, func() bool { return h.metrics.TicksSkipped() >= 2 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, h.metrics.Ticks())

	h.engine.tickMu.Unlock()
	require.Eventually(t, func() bool { return h.metrics.Ticks() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestTick_BeforeStart(t *testing.T) {
	h := newHarness(t, leagueSnapshot(4), fourTeams, 1)

	err := h.engine.Tick(context.Background())

	assert.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, h.store.Batches())
}
