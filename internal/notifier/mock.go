package notifier

import (
	"sync"

	"github.com/sbermejom01/api-BetsSoccer/internal/league"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchResultFunc  func(match *league.Match, dryRun bool) error
	SendRoundSummaryFunc func(round int, standings []league.Team, dryRun bool) error

	// Call records
	SendMatchResultCalls  []struct{ Match *league.Match }
	SendRoundSummaryCalls []struct {
		Round     int
		Standings []league.Team
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendRoundSummaryCalls = nil
}

func (m *Mock) SendMatchResult(match *league.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct{ Match *league.Match }{match})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendRoundSummary(round int, standings []league.Team, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundSummaryCalls = append(m.SendRoundSummaryCalls, struct {
		Round     int
		Standings []league.Team
	}{round, standings})
	if m.SendRoundSummaryFunc != nil {
		return m.SendRoundSummaryFunc(round, standings, dryRun)
	}
	return nil
}

// MatchResults returns the number of SendMatchResult calls.
func (m *Mock) MatchResults() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendMatchResultCalls)
}

// RoundSummaries returns the rounds announced so far, in call order.
func (m *Mock) RoundSummaries() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	rounds := make([]int, 0, len(m.SendRoundSummaryCalls))
	for _, c := range m.SendRoundSummaryCalls {
		rounds = append(rounds, c.Round)
	}
	return rounds
}
