package simulation

import (
	"sort"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

// PendingBatch copies everything the next flush has to write.
func (e *Engine) PendingBatch() league.Batch {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b := league.Batch{State: e.state.Clone(), Full: e.fullSync}
	b.Teams = make([]league.Team, 0, len(e.teams))
	for _, t := range e.teams {
		b.Teams = append(b.Teams, *t)
	}
	for _, m := range e.matches {
		if e.fullSync || m.Round == e.state.CurrentRound || m.Status != league.StatusPending {
			b.Matches = append(b.Matches, m.Clone())
		}
	}
	for _, id := range sortedIDs(e.dirtyPredictions) {
		b.Predictions = append(b.Predictions, e.predictions[id].Clone())
	}
	for _, id := range sortedIDs(e.dirtyUsers) {
		b.Users = append(b.Users, *e.users[id])
	}
	for _, id := range sortedIDs(e.dirtyPlayers) {
		b.Players = append(b.Players, *e.players[id])
	}
	b.Notifications = append([]league.Notification(nil), e.outbox...)
	return b
}

// Committed clears the dirty marks a durable batch covered. Rows changed again
// since the copy was taken stay dirty.
func (e *Engine) Committed(b league.Batch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b.Full {
		e.fullSync = false
	}
	for _, p := range b.Predictions {
		if cur, ok := e.predictions[p.ID]; ok && samePrediction(*cur, p) {
			delete(e.dirtyPredictions, p.ID)
		}
	}
	for _, u := range b.Users {
		if cur, ok := e.users[u.ID]; ok && cur.Points == u.Points {
			delete(e.dirtyUsers, u.ID)
		}
	}
	for _, p := range b.Players {
		if cur, ok := e.players[p.ID]; ok && cur.Goals == p.Goals {
			delete(e.dirtyPlayers, p.ID)
		}
	}
	if len(b.Notifications) > 0 {
		written := make(map[string]struct{}, len(b.Notifications))
		for _, n := range b.Notifications {
			written[n.ID] = struct{}{}
		}
		kept := e.outbox[:0]
		for _, n := range e.outbox {
			if _, ok := written[n.ID]; !ok {
				kept = append(kept, n)
			}
		}
		e.outbox = kept
	}
}

func samePrediction(a, b league.Prediction) bool {
	if a.HomeScore != b.HomeScore || a.AwayScore != b.AwayScore || a.Settled() != b.Settled() {
		return false
	}
	return !a.Settled() || *a.PointsEarned == *b.PointsEarned
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
