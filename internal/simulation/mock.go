package simulation

import (
	"context"
	"sync"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

// MockStore is an in-memory Store. Function fields override the default
// behavior; every SaveBatch call is recorded.
type MockStore struct {
	mu sync.Mutex

	Snapshot *league.Snapshot

	LoadFunc      func(ctx context.Context) (*league.Snapshot, error)
	GetUserFunc   func(ctx context.Context, id int64) (*league.User, error)
	SaveBatchFunc func(ctx context.Context, b league.Batch) error

	SaveBatchCalls []league.Batch
	GetUserCalls   []int64
}

func NewMockStore(snap *league.Snapshot) *MockStore {
	if snap == nil {
		snap = &league.Snapshot{}
	}
	return &MockStore{Snapshot: snap}
}

func (m *MockStore) Load(ctx context.Context) (*league.Snapshot, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := &league.Snapshot{
		Teams:   append([]league.Team(nil), m.Snapshot.Teams...),
		Players: append([]league.Player(nil), m.Snapshot.Players...),
		Users:   append([]league.User(nil), m.Snapshot.Users...),
	}
	for i := range m.Snapshot.Matches {
		snap.Matches = append(snap.Matches, m.Snapshot.Matches[i].Clone())
	}
	for _, p := range m.Snapshot.Predictions {
		snap.Predictions = append(snap.Predictions, p.Clone())
	}
	if m.Snapshot.State != nil {
		s := m.Snapshot.State.Clone()
		snap.State = &s
	}
	return snap, nil
}

func (m *MockStore) GetUser(ctx context.Context, id int64) (*league.User, error) {
	m.mu.Lock()
	m.GetUserCalls = append(m.GetUserCalls, id)
	m.mu.Unlock()

	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Snapshot.Users {
		if u.ID == id {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MockStore) SaveBatch(ctx context.Context, b league.Batch) error {
	m.mu.Lock()
	m.SaveBatchCalls = append(m.SaveBatchCalls, b)
	m.mu.Unlock()

	if m.SaveBatchFunc != nil {
		return m.SaveBatchFunc(ctx, b)
	}
	return nil
}

// Batches returns a copy of the recorded SaveBatch calls.
func (m *MockStore) Batches() []league.Batch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]league.Batch(nil), m.SaveBatchCalls...)
}

// AddUser makes a user visible to GetUser, as if it registered after boot.
func (m *MockStore) AddUser(u league.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot.Users = append(m.Snapshot.Users, u)
}
