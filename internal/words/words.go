// internal/words/words.go
//
// Provides the difficulty-tagged word lists the game draws target words from.
//
// Responsibilities:
//   - Load the easy/medium/hard lists from environment-provided files or fall
//     back to the embedded defaults in assets/words.
//   - Supply utility functions like Random, Contains and Stats.
//
// Initialization behavior (Load):
//   1. For each difficulty with a configured file path, read that file.
//   2. Otherwise use the embedded list of the same name.
//   3. Every list must end up non-empty.
//
// Constraints:
//   • Words are alphabetic (a–z), at least two letters long.
//   • Lists are normalized to lowercase and keep their file order.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/hangdle/go-server/assets"
)

// Difficulty selects one of the three word lists.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every difficulty in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

var (
	ErrUnknownDifficulty = errors.New("words: unknown difficulty")
	ErrEmptyList         = errors.New("words: list is empty")
)

// ParseDifficulty maps user input ("Easy", " hard ") to a Difficulty.
// An empty string selects Easy, the game's default.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Easy, nil
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

// Title returns the display form of d ("Medium").
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Source is the random source used to pick words and hint letters.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the math/rand/v2 global generator.
var DefaultSource Source = globalSource{}

// Files holds optional override paths, one per difficulty.
type Files struct {
	Easy   string
	Medium string
	Hard   string
}

func (f Files) path(d Difficulty) string {
	switch d {
	case Easy:
		return f.Easy
	case Medium:
		return f.Medium
	case Hard:
		return f.Hard
	}
	return ""
}

// Lists is an immutable set of word lists keyed by difficulty.
type Lists struct {
	byDifficulty map[Difficulty][]string
}

// Load reads every difficulty list, preferring files over embedded defaults.
func Load(files Files) (*Lists, error) {
	m := make(map[Difficulty][]string, len(Difficulties))
	for _, d := range Difficulties {
		var (
			list []string
			err  error
		)
		if p := files.path(d); p != "" {
			list, err = readWordFile(p)
		} else {
			var raw []string
			raw, err = assets.WordList(string(d))
			list = normalize(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("words: load %s: %w", d, err)
		}
		m[d] = list
	}
	return New(m)
}

// New builds Lists from in-memory slices. Words are normalized and invalid
// entries dropped; each difficulty must keep at least one word.
func New(m map[Difficulty][]string) (*Lists, error) {
	l := &Lists{byDifficulty: make(map[Difficulty][]string, len(Difficulties))}
	for _, d := range Difficulties {
		list := normalize(m[d])
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyList, d)
		}
		l.byDifficulty[d] = list
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return normalize(out), sc.Err()
}

// normalize lowercases, trims and keeps only valid alphabetic words.
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) >= 2 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Words returns the list for d, or nil for an unknown difficulty.
func (l *Lists) Words(d Difficulty) []string {
	return l.byDifficulty[d]
}

// Random returns a uniformly random word from the list for d.
func (l *Lists) Random(d Difficulty, src Source) (string, error) {
	list, ok := l.byDifficulty[d]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	if src == nil {
		src = DefaultSource
	}
	return list[src.IntN(len(list))], nil
}

// Contains reports whether w is in any list.
func (l *Lists) Contains(w string) bool {
	w = strings.ToLower(w)
	for _, list := range l.byDifficulty {
		for _, x := range list {
			if x == w {
				return true
			}
		}
	}
	return false
}

// Stats returns the number of words per difficulty.
func (l *Lists) Stats() map[Difficulty]int {
	out := make(map[Difficulty]int, len(l.byDifficulty))
	for d, list := range l.byDifficulty {
		out[d] = len(list)
	}
	return out
}
