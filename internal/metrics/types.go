package metrics

import "github.com/prometheus/client_golang/prometheus"

// Goal modes used as the "mode" label of the goals counter.
const (
	GoalModeLive        = "live"
	GoalModeFastForward = "fast_forward"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	Ticks              prometheus.Counter
	TicksSkipped       prometheus.Counter
	TickDuration       prometheus.Histogram
	Goals              *prometheus.CounterVec
	MatchesFinished    prometheus.Counter
	PredictionsSettled prometheus.Counter
	RoundsAdvanced     prometheus.Counter
	CurrentRound       prometheus.Gauge
	FlushDuration      prometheus.Histogram
	FlushFailures      prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
