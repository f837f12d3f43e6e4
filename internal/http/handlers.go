package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/sbermejom01/api-BetsSoccer/internal/simulation"
)

const defaultTopScorers = 10

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// refresh runs a tick so reads reflect the current time.
func (s *Server) refresh(r *http.Request) {
	if err := s.Engine.Tick(r.Context()); err != nil {
		log.Warn("Tick before read failed, serving current state", "error", err)
	}
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.refresh(r)
		writeJSON(w, http.StatusOK, s.Engine.CurrentState())
	}
}

func (s *Server) TickHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Engine.Tick(r.Context()); err != nil {
			log.Error("Manual tick failed", "error", err)
			writeEngineError(w, err)
			return
		}
		log.Info("Manual tick completed")
		writeJSON(w, http.StatusOK, s.Engine.CurrentState())
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.refresh(r)
		writeJSON(w, http.StatusOK, s.Engine.Standings())
	}
}

func (s *Server) RoundResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := strconv.Atoi(r.PathValue("round"))
		if err != nil || round < 1 {
			writeError(w, http.StatusBadRequest, "round must be a positive integer")
			return
		}
		s.refresh(r)
		writeJSON(w, http.StatusOK, s.Engine.MatchesForRound(round))
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("all") == "true" {
			writeJSON(w, http.StatusOK, s.Engine.AllMatches())
			return
		}
		writeJSON(w, http.StatusOK, s.Engine.CurrentRoundMatches())
	}
}

func (s *Server) MatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid match id")
			return
		}
		match, err := s.Engine.MatchByID(id)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (s *Server) SubmitPredictionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PredictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode prediction", "error", err)
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if req.UserID == 0 || req.MatchID == 0 || req.HomeScore == nil || req.AwayScore == nil {
			writeError(w, http.StatusBadRequest, "userId, matchId, homeScore and awayScore are required")
			return
		}

		prediction, err := s.Engine.SubmitPrediction(r.Context(), req.UserID, req.MatchID, *req.HomeScore, *req.AwayScore)
		if err != nil {
			log.Warn("Prediction rejected", "error", err, "userID", req.UserID, "matchID", req.MatchID)
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, prediction)
	}
}

func (s *Server) UserPredictionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		writeJSON(w, http.StatusOK, s.Engine.UserPredictions(userID))
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Engine.Leaderboard())
	}
}

func (s *Server) TeamPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Engine.TeamPlayers(r.PathValue("name"))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) TopScorersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultTopScorers
		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 {
				log.Warn("Invalid 'limit' parameter provided. Defaulting.", "limit_param", v)
			} else {
				limit = parsed
			}
		}
		writeJSON(w, http.StatusOK, s.Engine.TopScorers(limit))
	}
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, simulation.ErrNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, simulation.ErrMatchNotFound),
		errors.Is(err, simulation.ErrUserNotFound),
		errors.Is(err, simulation.ErrTeamNotFound):
		return http.StatusNotFound
	case errors.Is(err, simulation.ErrMatchNotPending):
		return http.StatusConflict
	case errors.Is(err, simulation.ErrInvalidScore):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeEngineError hides the details of unexpected failures from clients.
func writeEngineError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
