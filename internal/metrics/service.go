package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_ticks_total",
			Help: "The total number of simulation ticks run.",
		}),
		TicksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_ticks_skipped_total",
			Help: "Timer ticks skipped because the previous tick was still running.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_tick_duration_seconds",
			Help:    "The duration of a full evaluation cycle.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		Goals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_goals_total",
			Help: "Goals generated, by generation mode.",
		}, []string{"mode"}),
		MatchesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_matches_finished_total",
			Help: "The total number of matches finalized.",
		}),
		PredictionsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_predictions_settled_total",
			Help: "The total number of predictions settled.",
		}),
		RoundsAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_rounds_advanced_total",
			Help: "The total number of round advancements performed by catch-up.",
		}),
		CurrentRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_current_round",
			Help: "The round the season clock is currently in.",
		}),
		FlushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_flush_duration_seconds",
			Help:    "The duration of persistence flush transactions.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FlushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_flush_failures_total",
			Help: "The total number of flush transactions that failed.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Ticks,
		s.TicksSkipped,
		s.TickDuration,
		s.Goals,
		s.MatchesFinished,
		s.PredictionsSettled,
		s.RoundsAdvanced,
		s.CurrentRound,
		s.FlushDuration,
		s.FlushFailures,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTicks() {
	s.Ticks.Inc()
}

func (s *Service) IncTicksSkipped() {
	s.TicksSkipped.Inc()
}

func (s *Service) ObserveTickDuration(duration float64) {
	s.TickDuration.Observe(duration)
}

func (s *Service) IncGoals(mode string) {
	s.Goals.WithLabelValues(mode).Inc()
}

func (s *Service) IncMatchesFinished() {
	s.MatchesFinished.Inc()
}

func (s *Service) IncPredictionsSettled() {
	s.PredictionsSettled.Inc()
}

func (s *Service) IncRoundsAdvanced() {
	s.RoundsAdvanced.Inc()
}

func (s *Service) SetCurrentRound(round int) {
	s.CurrentRound.Set(float64(round))
}

func (s *Service) ObserveFlushDuration(duration float64) {
	s.FlushDuration.Observe(duration)
}

func (s *Service) IncFlushFailures() {
	s.FlushFailures.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
