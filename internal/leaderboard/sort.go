package leaderboard

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Criterion is the key a leaderboard is sorted by.
type Criterion string

const (
	ByResult Criterion = "result"
	ByTime   Criterion = "time"
	ByDate   Criterion = "date"
)

// Criteria lists every criterion in column order.
var Criteria = []Criterion{ByResult, ByTime, ByDate}

// ErrUnknownCriterion is returned for a criterion outside Criteria.
var ErrUnknownCriterion = errors.New("leaderboard: unknown criterion")

// Valid reports whether c is one of Criteria.
func (c Criterion) Valid() bool {
	return slices.Contains(Criteria, c)
}

// ParseCriterion maps a column name to a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	c := Criterion(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCriterion, s)
	}
	return c, nil
}

// Compare returns the ordering function for c. For ByResult the primary key
// is mistakes (fewer first) and the secondary key word length (longer
// first); descending order flips both keys together.
// Compare panics for a criterion outside Criteria; Sort and SortEntries
// return ErrUnknownCriterion instead.
func Compare(c Criterion, ascending bool) func(a, b Entry) int {
	dir := 1
	if !ascending {
		dir = -1
	}
	switch c {
	case ByTime:
		return func(a, b Entry) int { return dir * cmp.Compare(a.Time, b.Time) }
	case ByDate:
		return func(a, b Entry) int { return dir * a.Date.Compare(b.Date) }
	case ByResult:
		return func(a, b Entry) int {
			if n := cmp.Compare(a.Mistakes, b.Mistakes); n != 0 {
				return dir * n
			}
			return dir * cmp.Compare(b.WordLength, a.WordLength)
		}
	default:
		panic(fmt.Sprintf("leaderboard: unknown criterion %q", c))
	}
}

// SortEntries returns a stably sorted copy of entries.
func SortEntries(entries []Entry, c Criterion, ascending bool) ([]Entry, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, c)
	}
	out := slices.Clone(entries)
	slices.SortStableFunc(out, Compare(c, ascending))
	return out, nil
}

// Sort reorders display rows. Placeholder rows are left out of the
// comparison and appended after the real rows in their original order. Any
// real row that fails to parse aborts the sort.
func Sort(rows []string, c Criterion, ascending bool) ([]string, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, c)
	}
	type parsed struct {
		text  string
		entry Entry
	}
	var (
		data  []parsed
		empty []string
	)
	for _, row := range rows {
		if IsEmpty(row) {
			empty = append(empty, row)
			continue
		}
		e, err := ParseEntry(row)
		if err != nil {
			return nil, err
		}
		data = append(data, parsed{text: row, entry: e})
	}

	less := Compare(c, ascending)
	slices.SortStableFunc(data, func(a, b parsed) int { return less(a.entry, b.entry) })

	out := make([]string, 0, len(rows))
	for _, p := range data {
		out = append(out, p.text)
	}
	return append(out, empty...), nil
}
