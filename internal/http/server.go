package http

import (
	"net/http"

	"github.com/sbermejom01/api-BetsSoccer/internal/config"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
	"github.com/sbermejom01/api-BetsSoccer/internal/simulation"
)

func NewServer(engine *simulation.Engine, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Engine:         engine,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// API routes additionally refuse requests until the engine finished booting.
	ready := readinessMiddleware(s.Engine)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/simulation/state", Chain(s.StateHandler(), paramsMiddleware, ready))
	s.Router.Handle("POST /api/simulation/tick", Chain(s.TickHandler(), paramsMiddleware, ready))
	s.Router.Handle("GET /api/league/standings", Chain(s.StandingsHandler(), paramsMiddleware, ready))
	s.Router.Handle("GET /api/league/results/{round}", Chain(s.RoundResultsHandler(), paramsMiddleware, ready))
	s.Router.Handle("GET /api/matches", Chain(s.ListMatchesHandler(), paramsMiddleware, ready))
	s.Router.Handle("GET /api/matches/{id}", Chain(s.MatchHandler(), paramsMiddleware, ready))
	s.Router.Handle("POST /api/bets", Chain(s.SubmitPredictionHandler(), paramsMiddleware, ready))
	s.Router.Handle("GET /api/bets/user/{id}", Chain(s.UserPredictionsHandler(), paramsMiddleware, ready))
	s.Router.Handle("GET /api/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware, ready))
	s.Router.Handle("GET /api/teams/{name}/players", Chain(s.TeamPlayersHandler(), paramsMiddleware, ready))
	s.Router.Handle("GET /api/players/top-scorers", Chain(s.TopScorersHandler(), paramsMiddleware, ready))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
