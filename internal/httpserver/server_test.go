package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangdle/go-server/internal/game"
	"github.com/hangdle/go-server/internal/leaderboard"
	"github.com/hangdle/go-server/internal/store"
	"github.com/hangdle/go-server/internal/words"
)

// firstSource always picks index 0.
type firstSource struct{}

func (firstSource) IntN(int) int { return 0 }

func newTestServer(t *testing.T) (*Server, *leaderboard.Board) {
	t.Helper()
	wl, err := words.New(map[words.Difficulty][]string{
		words.Easy:   {"cab"},
		words.Medium: {"melon"},
		words.Hard:   {"labyrinth"},
	})
	require.NoError(t, err)
	board := leaderboard.NewBoard(3)
	s := New(Config{
		SessionSecret: []byte("test_secret"),
		DailySalt:     "salt",
	}, Deps{
		Store:  store.NewMemoryStore(time.Hour),
		Words:  wl,
		Board:  board,
		Source: firstSource{},
	})
	return s, board
}

func do(t *testing.T, s *Server, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

type roundBody struct {
	Round   game.Snapshot `json:"round"`
	Applied *bool         `json:"applied"`
	Letter  string        `json:"letter"`
	Events  []game.Event  `json:"events"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newRound(t *testing.T, s *Server, difficulty string, cookies ...*http.Cookie) game.Snapshot {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/round/new", map[string]any{"difficulty": difficulty}, cookies...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[roundBody](t, rec).Round
}

func guess(t *testing.T, s *Server, id, letter string) roundBody {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": id, "letter": letter})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[roundBody](t, rec)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestNewRound_HidesWord(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/round/new", map[string]any{"difficulty": "medium"})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode[roundBody](t, rec)
	assert.Equal(t, "_____", body.Round.Masked)
	assert.Empty(t, body.Round.Word)
	assert.Equal(t, game.StatusOngoing, body.Round.Status)
	assert.Equal(t, GuestName, body.Round.Player)
	require.Len(t, body.Events, 1)
	assert.Equal(t, game.EventRoundStarted, body.Events[0].Type)
	assert.Equal(t, 5, body.Events[0].Length)
}

func TestNewRound_UnknownDifficulty(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/round/new", map[string]any{"difficulty": "insane"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"unknown_difficulty"}`, rec.Body.String())
}

func TestGuess_WinRecordsLeaderboard(t *testing.T) {
	s, board := newTestServer(t)
	r := newRound(t, s, "easy")

	body := guess(t, s, r.ID, "C")
	assert.True(t, *body.Applied)
	assert.Equal(t, "c__", body.Round.Masked)

	body = guess(t, s, r.ID, "c")
	assert.False(t, *body.Applied, "duplicate guess is ignored")

	guess(t, s, r.ID, "a")
	body = guess(t, s, r.ID, "b")
	assert.Equal(t, game.StatusWon, body.Round.Status)
	assert.True(t, body.Round.Ended)
	assert.Equal(t, "cab", body.Round.Word)
	assert.Equal(t, game.EventRoundEnded, body.Events[len(body.Events)-1].Type)

	rows := board.Rows()
	assert.True(t, strings.HasPrefix(rows[0], "Guest, Mistakes: 0, Word Length: 3, "), rows[0])
	assert.True(t, strings.HasSuffix(rows[0], ", won"), rows[0])
	assert.Equal(t, leaderboard.EmptyRow, rows[1])
}

func TestGuess_LossStopsAtSixMistakes(t *testing.T) {
	s, board := newTestServer(t)
	r := newRound(t, s, "easy")

	var body roundBody
	for _, l := range []string{"z", "y", "x", "w", "v", "u"} {
		body = guess(t, s, r.ID, l)
	}
	assert.Equal(t, game.StatusLost, body.Round.Status)
	assert.Equal(t, game.MaxMistakes, body.Round.Mistakes)
	assert.Equal(t, "bild-6.svg", body.Round.Image)

	body = guess(t, s, r.ID, "t")
	assert.False(t, *body.Applied)
	assert.Equal(t, game.MaxMistakes, body.Round.Mistakes)

	assert.True(t, strings.HasSuffix(board.Rows()[0], ", lost"))
	assert.Equal(t, leaderboard.EmptyRow, board.Rows()[1], "recorded once")
}

func TestGuess_InvalidInput(t *testing.T) {
	s, _ := newTestServer(t)
	r := newRound(t, s, "easy")

	rec := do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": r.ID, "letter": "ab"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := guess(t, s, r.ID, "1")
	assert.False(t, *body.Applied)
	assert.Zero(t, body.Round.Mistakes)

	rec = do(t, s, http.MethodPost, "/round/guess", map[string]string{"roundId": "nope", "letter": "a"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"round_not_found"}`, rec.Body.String())
}

func TestHint(t *testing.T) {
	s, _ := newTestServer(t)
	r := newRound(t, s, "easy")

	rec := do(t, s, http.MethodPost, "/round/hint", map[string]string{"roundId": r.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[roundBody](t, rec)
	assert.True(t, *body.Applied)
	assert.Equal(t, "c", body.Letter)
	assert.Equal(t, "c__", body.Round.Masked)
	assert.Equal(t, 1, body.Round.Hints)

	got, err := s.store.Get(t.Context(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Hints)
}

func TestGetRound(t *testing.T) {
	s, _ := newTestServer(t)
	r := newRound(t, s, "hard")

	rec := do(t, s, http.MethodGet, "/round/"+r.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, r.ID, decode[roundBody](t, rec).Round.ID)

	rec = do(t, s, http.MethodGet, "/round/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSession_NamesPlayer(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/session", map[string]string{"name": "  Alice  "})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "hangman_session", cookies[0].Name)

	r := newRound(t, s, "easy", cookies[0])
	assert.Equal(t, "Alice", r.Player)

	rec = do(t, s, http.MethodGet, "/session", nil, cookies[0])
	assert.JSONEq(t, `{"name":"Alice"}`, rec.Body.String())
}

func TestSession_RejectsBadNames(t *testing.T) {
	s, _ := newTestServer(t)
	for _, name := range []string{"", "a, b", "Empty", strings.Repeat("x", 25)} {
		rec := do(t, s, http.MethodPost, "/session", map[string]string{"name": name})
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestSession_TamperedTokenIsGuest(t *testing.T) {
	s, _ := newTestServer(t)
	tok, _, err := s.signSession("Mallory")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer "+tok+"x")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.JSONEq(t, `{"name":"Guest"}`, rec.Body.String())
}

func TestLeaderboard_SortToggles(t *testing.T) {
	s, board := newTestServer(t)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range []leaderboard.Entry{
		{Name: "Alice", Mistakes: 3, WordLength: 6, Date: date, Time: 45, Status: leaderboard.StatusWon},
		{Name: "Bob", Mistakes: 1, WordLength: 4, Date: date, Time: 30, Status: leaderboard.StatusWon},
	} {
		_, err := board.Record(e)
		require.NoError(t, err)
	}

	type res struct {
		Rows      []string          `json:"rows"`
		Next      map[string]string `json:"next"`
		Direction string            `json:"direction"`
	}

	rec := do(t, s, http.MethodPost, "/leaderboard/sort/result", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[res](t, rec)
	assert.Equal(t, "asc", got.Direction)
	assert.Equal(t, "desc", got.Next["result"])
	assert.True(t, strings.HasPrefix(got.Rows[0], "Bob"))
	assert.Equal(t, leaderboard.EmptyRow, got.Rows[2])

	got = decode[res](t, do(t, s, http.MethodPost, "/leaderboard/sort/result", nil))
	assert.Equal(t, "desc", got.Direction)
	assert.True(t, strings.HasPrefix(got.Rows[0], "Alice"))

	got = decode[res](t, do(t, s, http.MethodGet, "/leaderboard", nil))
	assert.Equal(t, "asc", got.Next["result"])
	assert.Equal(t, "asc", got.Next["time"])

	rec = do(t, s, http.MethodPost, "/leaderboard/sort/luck", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryDisabled(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/leaderboard/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotFoundIsJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","path":"/nowhere"}`, rec.Body.String())
}
