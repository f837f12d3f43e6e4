package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	ticks              int
	ticksSkipped       int
	tickDurations      []float64
	goals              map[string]int
	matchesFinished    int
	predictionsSettled int
	roundsAdvanced     int
	currentRound       int
	flushDurations     []float64
	flushFailures      int
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		goals: make(map[string]int),
	}
}

func (m *Mock) IncTicks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks++
}

func (m *Mock) IncTicksSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticksSkipped++
}

func (m *Mock) ObserveTickDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickDurations = append(m.tickDurations, duration)
}

func (m *Mock) IncGoals(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[mode]++
}

func (m *Mock) IncMatchesFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesFinished++
}

func (m *Mock) IncPredictionsSettled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictionsSettled++
}

func (m *Mock) IncRoundsAdvanced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsAdvanced++
}

func (m *Mock) SetCurrentRound(round int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentRound = round
}

func (m *Mock) ObserveFlushDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushDurations = append(m.flushDurations, duration)
}

func (m *Mock) IncFlushFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushFailures++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Ticks returns the number of times IncTicks was called.
func (m *Mock) Ticks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

// TicksSkipped returns the number of times IncTicksSkipped was called.
func (m *Mock) TicksSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticksSkipped
}

// Goals returns the number of goals recorded for the given mode.
func (m *Mock) Goals(mode string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goals[mode]
}

func (m *Mock) MatchesFinished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesFinished
}

func (m *Mock) PredictionsSettled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.predictionsSettled
}

func (m *Mock) RoundsAdvanced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsAdvanced
}

func (m *Mock) CurrentRound() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentRound
}

// Flushes returns the number of flush durations observed.
func (m *Mock) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.flushDurations)
}

func (m *Mock) FlushFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushFailures
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
