package http

import (
	"net/http"

	"github.com/sbermejom01/api-BetsSoccer/internal/config"
	"github.com/sbermejom01/api-BetsSoccer/internal/metrics"
	"github.com/sbermejom01/api-BetsSoccer/internal/simulation"
)

type Server struct {
	Engine         *simulation.Engine
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

// PredictionRequest is the body of POST /api/bets.
type PredictionRequest struct {
	UserID    int64 `json:"userId"`
	MatchID   int   `json:"matchId"`
	HomeScore *int  `json:"homeScore"`
	AwayScore *int  `json:"awayScore"`
}

type errorResponse struct {
	Error string `json:"error"`
}
