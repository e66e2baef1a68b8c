// internal/httpserver/server.go
//
// HTTP server wiring for the Hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: /session (name-only JWT, no passwords).
//   - Round endpoints (optional session): /round/*.
//   - Leaderboard endpoints: /leaderboard/*.
//
// Notes:
//   - Rounds live in a store.Store between requests. Every mutating request
//     runs load -> mutate -> save under one mutex.
//   - Finished rounds are recorded on the leaderboard and, when configured,
//     in the SQLite history.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hangdle/go-server/internal/history"
	"github.com/hangdle/go-server/internal/leaderboard"
	"github.com/hangdle/go-server/internal/store"
	"github.com/hangdle/go-server/internal/words"
)

// Config holds the HTTP-level settings taken from config.Config.
type Config struct {
	ClientOrigin      string
	ReadHeaderTimeout time.Duration
	HandlerTimeout    time.Duration
	ShutdownTimeout   time.Duration

	SessionSecret []byte
	SessionTTL    time.Duration
	CookieName    string
	SecureCookies bool

	DailySalt string
}

// Deps are the collaborators the server drives. History may be nil.
type Deps struct {
	Store   store.Store
	Words   *words.Lists
	Board   *leaderboard.Board
	History *history.Store
	Source  words.Source
}

// Server bundles router, round store, leaderboard and history.
type Server struct {
	r   *chi.Mux
	cfg Config

	store   store.Store
	words   *words.Lists
	board   *leaderboard.Board
	history *history.Store
	src     words.Source

	mu  sync.Mutex // serializes round load/mutate/save
	now func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, d Deps) *Server {
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 10 * time.Second
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 14 * 24 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "hangman_session"
	}
	if d.Source == nil {
		d.Source = words.DefaultSource
	}
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		store:   d.Store,
		words:   d.Words,
		board:   d.Board,
		history: d.History,
		src:     d.Source,
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                     // one zerolog line per request
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(cfg.HandlerTimeout)) // bound handler time
	s.r.Use(jsonContentType)                   // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hangman-go","endpoints":["/health","/session","/round/*","/leaderboard"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleWordStats)

	// Session: name only, so the leaderboard shows who played.
	s.r.With(s.withOptionalSession).Get("/session", s.handleGetSession)
	s.r.Post("/session", s.handleCreateSession)
	s.r.Delete("/session", s.handleDeleteSession)

	// Rounds: optional session (guests play as "Guest")
	s.mountRounds(s.r.With(s.withOptionalSession))

	// Leaderboard
	s.mountLeaderboard(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("hangman server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		log.Info().Msg("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]int, len(words.Difficulties))
	for d, n := range s.words.Stats() {
		out[string(d)] = n
	}
	writeJSON(w, http.StatusOK, out)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs method, path, status and duration with zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ helpers ------------------------------------

const maxBody = 1 << 16

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the {"error":"code"} body used by every endpoint.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
