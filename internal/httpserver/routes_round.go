// internal/httpserver/routes_round.go
//
// Round endpoints:
//   POST /round/new   {difficulty, daily}  -> new round
//   POST /round/guess {roundId, letter}    -> apply one guessed letter
//   POST /round/hint  {roundId}            -> reveal one hidden letter
//   GET  /round/{id}                       -> current state
//
// Each response carries the public round snapshot (the word stays hidden
// until the round ends) plus the notifications the action produced.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hangdle/go-server/internal/game"
	"github.com/hangdle/go-server/internal/history"
	"github.com/hangdle/go-server/internal/store"
	"github.com/hangdle/go-server/internal/words"
)

func (s *Server) mountRounds(r chi.Router) {
	r.Post("/round/new", s.handleNewRound)
	r.Post("/round/guess", s.handleGuess)
	r.Post("/round/hint", s.handleHint)
	r.Get("/round/{id}", s.handleGetRound)
}

type newRoundReq struct {
	Difficulty string `json:"difficulty"`
	Daily      bool   `json:"daily"`
}

type guessReq struct {
	RoundID string `json:"roundId"`
	Letter  string `json:"letter"`
}

type hintReq struct {
	RoundID string `json:"roundId"`
}

type roundRes struct {
	Round   game.Snapshot `json:"round"`
	Applied *bool         `json:"applied,omitempty"`
	Letter  string        `json:"letter,omitempty"`
	Events  []game.Event  `json:"events"`
}

// controller builds a per-request controller that reports into events.
func (s *Server) controller(ctx context.Context, events *game.EventLog) *game.Controller {
	return game.NewController(s.words,
		game.WithSource(s.src),
		game.WithNotifier(events),
		game.WithDailySalt(s.cfg.DailySalt),
		game.WithPlayer(playerFrom(ctx)),
	)
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	d, err := words.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
		return
	}

	events := &game.EventLog{}
	c := s.controller(r.Context(), events)
	var round *game.Round
	if req.Daily {
		round, err = c.StartDaily(d, s.now())
	} else {
		round, err = c.Start(d)
	}
	if err != nil {
		log.Error().Err(err).Str("difficulty", string(d)).Msg("start round")
		writeError(w, http.StatusInternalServerError, "no_words")
		return
	}
	if err := s.store.Save(r.Context(), round); err != nil {
		log.Error().Err(err).Str("roundId", round.ID).Msg("save round")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	log.Info().Str("roundId", round.ID).Str("player", round.Player).
		Str("difficulty", string(d)).Bool("daily", req.Daily).Msg("round started")

	writeJSON(w, http.StatusCreated, roundRes{Round: round.Snapshot().Public(), Events: events.Events})
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if utf8.RuneCountInString(req.Letter) != 1 {
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}
	letter, _ := utf8.DecodeRuneInString(req.Letter)

	s.mu.Lock()
	defer s.mu.Unlock()

	events := &game.EventLog{}
	c, ok := s.load(w, r, req.RoundID, events)
	if !ok {
		return
	}
	_, applied, err := c.Guess(letter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}
	if !s.commit(w, r, c.Round(), applied) {
		return
	}
	writeJSON(w, http.StatusOK, roundRes{
		Round:   c.Round().Snapshot().Public(),
		Applied: &applied,
		Events:  events.Events,
	})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events := &game.EventLog{}
	c, ok := s.load(w, r, req.RoundID, events)
	if !ok {
		return
	}
	letter, applied, err := c.Hint()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hint_failed")
		return
	}
	if !s.commit(w, r, c.Round(), applied) {
		return
	}
	res := roundRes{Round: c.Round().Snapshot().Public(), Applied: &applied, Events: events.Events}
	if applied {
		res.Letter = string(letter)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	round, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roundRes{Round: round.Snapshot().Public(), Events: []game.Event{}})
}

// load fetches a round and attaches it to a fresh controller. On failure it
// writes the error response and returns false.
func (s *Server) load(w http.ResponseWriter, r *http.Request, id string, events *game.EventLog) (*game.Controller, bool) {
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing_round_id")
		return nil, false
	}
	round, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return nil, false
	}
	c := s.controller(r.Context(), events)
	c.Attach(round)
	return c, true
}

// commit saves a changed round and records it once it has just ended.
func (s *Server) commit(w http.ResponseWriter, r *http.Request, round *game.Round, changed bool) bool {
	if !changed {
		return true
	}
	if err := s.store.Save(r.Context(), round); err != nil {
		log.Error().Err(err).Str("roundId", round.ID).Msg("save round")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return false
	}
	if round.Ended {
		s.recordFinished(r.Context(), round)
	}
	return true
}

// recordFinished puts a finished round on the leaderboard and in history.
// Failures are logged; the player still gets their result.
func (s *Server) recordFinished(ctx context.Context, round *game.Round) {
	rec := history.FromRound(round)
	if rec.Player == "" {
		rec.Player = GuestName
	}
	l := log.With().Str("roundId", rec.ID).Str("player", rec.Player).Str("status", rec.Status).Logger()

	if placed, err := s.board.Record(rec.Entry()); err != nil {
		l.Warn().Err(err).Msg("leaderboard record")
	} else if placed {
		l.Info().Msg("leaderboard updated")
	}
	if s.history != nil {
		if err := s.history.Insert(ctx, rec); err != nil {
			l.Warn().Err(err).Msg("history insert")
		}
	}
	l.Info().Int("mistakes", rec.Mistakes).Dur("elapsed", rec.Elapsed).Msg("round finished")
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "round_not_found")
		return
	}
	log.Error().Err(err).Msg("store get")
	writeError(w, http.StatusInternalServerError, "store_failed")
}
