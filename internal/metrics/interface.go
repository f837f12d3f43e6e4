package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the simulation from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTicks()
	IncTicksSkipped()
	ObserveTickDuration(duration float64)
	IncGoals(mode string)
	IncMatchesFinished()
	IncPredictionsSettled()
	IncRoundsAdvanced()
	SetCurrentRound(round int)
	ObserveFlushDuration(duration float64)
	IncFlushFailures()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
