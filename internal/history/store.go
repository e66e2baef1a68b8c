package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hangdle/go-server/internal/game"
	"github.com/hangdle/go-server/internal/leaderboard"
)

// Record is one finished round.
type Record struct {
	ID         string        `json:"id"`
	Player     string        `json:"player"`
	Difficulty string        `json:"difficulty"`
	Word       string        `json:"word"`
	Mistakes   int           `json:"mistakes"`
	Hints      int           `json:"hints"`
	Status     string        `json:"status"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Elapsed    time.Duration `json:"elapsed"`
}

// FromRound converts an ended round. The round must have Ended set.
func FromRound(r *game.Round) Record {
	return Record{
		ID:         r.ID,
		Player:     r.Player,
		Difficulty: string(r.Difficulty),
		Word:       r.Target,
		Mistakes:   r.Mistakes,
		Hints:      r.Hints,
		Status:     string(r.Status),
		StartedAt:  r.StartedAt,
		FinishedAt: r.EndedAt,
		Elapsed:    r.Elapsed(),
	}
}

// Entry is the leaderboard row for the record.
func (r Record) Entry() leaderboard.Entry {
	return leaderboard.Entry{
		Name:       r.Player,
		Mistakes:   r.Mistakes,
		WordLength: len([]rune(r.Word)),
		Date:       r.FinishedAt,
		Time:       int(r.Elapsed / time.Second),
		Status:     r.Status,
	}
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores a record. Re-inserting the same round ID is ignored.
func (s *Store) Insert(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO rounds
			(id, player, difficulty, word, mistakes, hints, status, started_at, finished_at, elapsed_s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Difficulty, r.Word, r.Mistakes, r.Hints, r.Status,
		r.StartedAt.UTC().Format(time.RFC3339), r.FinishedAt.UTC().Format(time.RFC3339),
		int(r.Elapsed/time.Second),
	)
	if err != nil {
		return fmt.Errorf("history: insert %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns the latest finished rounds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	return s.query(ctx, `
		SELECT id, player, difficulty, word, mistakes, hints, status, started_at, finished_at, elapsed_s
		FROM rounds
		ORDER BY finished_at DESC
		LIMIT ?`, limit)
}

// Best returns the top rounds by result: fewest mistakes, then longest
// word, then fastest.
func (s *Store) Best(ctx context.Context, limit int) ([]Record, error) {
	return s.query(ctx, `
		SELECT id, player, difficulty, word, mistakes, hints, status, started_at, finished_at, elapsed_s
		FROM rounds
		ORDER BY mistakes ASC, length(word) DESC, elapsed_s ASC
		LIMIT ?`, limit)
}

// Seed records the best n rounds on b and returns how many were loaded.
func (s *Store) Seed(ctx context.Context, b *leaderboard.Board, n int) (int, error) {
	best, err := s.Best(ctx, n)
	if err != nil {
		return 0, err
	}
	entries := make([]leaderboard.Entry, 0, len(best))
	for _, r := range best {
		entries = append(entries, r.Entry())
	}
	if err := b.Load(entries); err != nil {
		return 0, fmt.Errorf("history: seed: %w", err)
	}
	return len(entries), nil
}

func (s *Store) query(ctx context.Context, q string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var (
			r                 Record
			started, finished string
			elapsed           int
		)
		if err := rows.Scan(&r.ID, &r.Player, &r.Difficulty, &r.Word, &r.Mistakes, &r.Hints,
			&r.Status, &started, &finished, &elapsed); err != nil {
			return nil, err
		}
		r.StartedAt = mustParse(started)
		r.FinishedAt = mustParse(finished)
		r.Elapsed = time.Duration(elapsed) * time.Second
		out = append(out, r)
	}
	return out, rows.Err()
}

// mustParse parses RFC3339 timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
