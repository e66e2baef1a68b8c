// internal/httpserver/routes_leaderboard.go
//
// Leaderboard endpoints:
//   GET  /leaderboard                    -> rows in display order + directions
//   POST /leaderboard/sort/{criterion}   -> sort by result|time|date, flip direction
//   GET  /leaderboard/history?limit=N    -> recent finished rounds (SQLite only)

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hangdle/go-server/internal/leaderboard"
)

func (s *Server) mountLeaderboard(r chi.Router) {
	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/", s.handleGetLeaderboard)
		r.Post("/sort/{criterion}", s.handleSortLeaderboard)
		r.Get("/history", s.handleHistory)
	})
}

type leaderboardRes struct {
	Rows []string `json:"rows"`
	// Next holds the direction the next sort by each criterion will use.
	Next map[leaderboard.Criterion]string `json:"next"`
	// Sorted is set by a sort request.
	Sorted    leaderboard.Criterion `json:"sorted,omitempty"`
	Direction string                `json:"direction,omitempty"`
}

func direction(asc bool) string {
	if asc {
		return "asc"
	}
	return "desc"
}

func (s *Server) nextDirections() map[leaderboard.Criterion]string {
	out := make(map[leaderboard.Criterion]string, len(leaderboard.Criteria))
	for _, c := range leaderboard.Criteria {
		out[c] = direction(s.board.Ascending(c))
	}
	return out
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, leaderboardRes{Rows: s.board.Rows(), Next: s.nextDirections()})
}

func (s *Server) handleSortLeaderboard(w http.ResponseWriter, r *http.Request) {
	c, err := leaderboard.ParseCriterion(chi.URLParam(r, "criterion"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_criterion")
		return
	}
	rows, asc, err := s.board.Sort(c)
	if err != nil {
		log.Warn().Err(err).Str("criterion", string(c)).Msg("leaderboard sort")
		writeError(w, http.StatusUnprocessableEntity, "malformed_entry")
		return
	}
	writeJSON(w, http.StatusOK, leaderboardRes{
		Rows:      rows,
		Next:      s.nextDirections(),
		Sorted:    c,
		Direction: direction(asc),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	recs, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		writeError(w, http.StatusInternalServerError, "history_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rounds": recs})
}
