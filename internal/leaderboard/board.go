// internal/leaderboard/board.go
//
// Board is one leaderboard view: a fixed number of display rows, unfilled
// slots holding the Empty placeholder, plus the per-criterion sort direction.
// Sorting by a criterion uses its current direction and then flips it, so
// repeated clicks on the same column alternate ascending and descending.
//
// Concurrency-safe via RWMutex.

package leaderboard

import (
	"fmt"
	"slices"
	"sync"
)

// DefaultSize is the slot count used when NewBoard gets a non-positive size.
const DefaultSize = 10

type Board struct {
	mu        sync.RWMutex
	rows      []string
	ascending map[Criterion]bool
}

// NewBoard returns a board with size empty slots, every criterion ascending.
func NewBoard(size int) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	rows := make([]string, size)
	for i := range rows {
		rows[i] = EmptyRow
	}
	b := &Board{rows: rows, ascending: make(map[Criterion]bool, len(Criteria))}
	for _, c := range Criteria {
		b.ascending[c] = true
	}
	return b
}

// Rows returns the rows in display order.
func (b *Board) Rows() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.rows)
}

// Entries returns the parsed real rows in display order.
func (b *Board) Entries() ([]Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Entry
	for _, row := range b.rows {
		if IsEmpty(row) {
			continue
		}
		e, err := ParseEntry(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Ascending reports the direction the next Sort by c will use.
func (b *Board) Ascending(c Criterion) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ascending[c]
}

// Sort reorders the board by c in its current direction, then flips the
// direction for c. It returns the new rows and the direction that was used.
// On error, including an unknown criterion, the board and the direction
// are left unchanged.
func (b *Board) Sort(c Criterion) ([]string, bool, error) {
	if !c.Valid() {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownCriterion, c)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	asc := b.ascending[c]
	rows, err := Sort(b.rows, c, asc)
	if err != nil {
		return nil, asc, err
	}
	b.rows = rows
	b.ascending[c] = !asc
	return slices.Clone(rows), asc, nil
}

// Record places e in the first empty slot. When the board is full, e
// replaces the worst row by result if it ranks better; otherwise it is
// dropped and Record returns false.
func (b *Board) Record(e Entry) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := slices.IndexFunc(b.rows, IsEmpty); i >= 0 {
		b.rows[i] = e.String()
		return true, nil
	}

	better := Compare(ByResult, true)
	worst := -1
	var worstEntry Entry
	for i, row := range b.rows {
		cur, err := ParseEntry(row)
		if err != nil {
			return false, err
		}
		if worst < 0 || better(cur, worstEntry) > 0 {
			worst, worstEntry = i, cur
		}
	}
	if worst < 0 || better(e, worstEntry) >= 0 {
		return false, nil
	}
	b.rows[worst] = e.String()
	return true, nil
}

// Load records entries in order, e.g. when seeding from history.
func (b *Board) Load(entries []Entry) error {
	for _, e := range entries {
		if _, err := b.Record(e); err != nil {
			return err
		}
	}
	return nil
}
