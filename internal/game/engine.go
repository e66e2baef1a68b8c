// internal/game/engine.go
//
// Core state machine for a single hangman round.
// Responsibilities:
//   - Create rounds for a given target word.
//   - Apply letter guesses and count misses.
//   - Reveal hidden letters as hints.
//   - Report status transitions: ongoing → won/lost.
//
// Notes:
//   - Invalid, duplicate or late guesses are silent no-ops, not errors.
//   - Win is checked before loss, so a guess that completes the word on the
//     last allowed mistake still wins.
//   - The engine never marks a round as ended by itself; callers (see
//     Controller) call End after CheckStatus reports won or lost.
package game

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/hangdle/go-server/internal/words"
)

// clock is replaced in tests.
var clock = time.Now

// StartRound constructs a new ongoing round for word.
func StartRound(word string) *Round {
	return &Round{
		ID:        uuid.NewString(),
		Target:    strings.ToLower(strings.TrimSpace(word)),
		Guessed:   make(map[rune]bool),
		Status:    StatusOngoing,
		StartedAt: clock(),
	}
}

// Guess records letter and reports whether it occurs in the target.
// ok is false when nothing changed: the round is over, the letter was
// already guessed, or the rune is not a letter. A miss increments Mistakes.
func (r *Round) Guess(letter rune) (hit, ok bool) {
	letter = unicode.ToLower(letter)
	if !r.open() || !unicode.IsLetter(letter) || r.Guessed[letter] {
		return false, false
	}
	r.Guessed[letter] = true
	if strings.ContainsRune(r.Target, letter) {
		return true, true
	}
	r.Mistakes++
	return false, true
}

// CheckStatus reports won if every letter of the target is guessed, lost
// if the mistake limit is reached, and ongoing otherwise.
func (r *Round) CheckStatus() Status {
	if r.revealed() {
		return StatusWon
	}
	if r.Mistakes >= MaxMistakes {
		return StatusLost
	}
	return StatusOngoing
}

// End marks the round as finished with status. Repeated calls are ignored.
func (r *Round) End(status Status) {
	if r.Ended {
		return
	}
	r.Ended = true
	r.Status = status
	r.EndedAt = clock()
}

// GiveHint reveals a random hidden letter of the target and returns it.
// Each hidden position is equally likely, so letters occurring more often
// are proportionally more likely to be picked. ok is false when the round
// is over, all hints are used, or nothing is left to reveal; in those cases
// no hint is consumed.
func (r *Round) GiveHint(src words.Source) (letter rune, ok bool) {
	if !r.open() || r.Hints >= MaxHints {
		return 0, false
	}
	hidden := r.hidden()
	if len(hidden) == 0 {
		return 0, false
	}
	if src == nil {
		src = words.DefaultSource
	}
	letter = hidden[src.IntN(len(hidden))]
	r.Guessed[letter] = true
	r.Hints++
	return letter, true
}

// open reports whether the round still accepts guesses and hints.
func (r *Round) open() bool {
	return !r.Ended && r.CheckStatus() == StatusOngoing
}

// hidden returns the target's letters that are not guessed yet, one entry
// per position.
func (r *Round) hidden() []rune {
	var out []rune
	for _, c := range r.Target {
		if !r.Guessed[c] {
			out = append(out, c)
		}
	}
	return out
}

func (r *Round) revealed() bool {
	for _, c := range r.Target {
		if !r.Guessed[c] {
			return false
		}
	}
	return true
}

// Masked renders the target with hidden letters as '_' ("a__le").
func (r *Round) Masked() string {
	var b strings.Builder
	for _, c := range r.Target {
		if r.Guessed[c] {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Image is the mistake indicator asset for the current mistake count.
func (r *Round) Image() string {
	return ImageFor(r.Mistakes)
}

// ImageFor returns the indicator asset name for a mistake count.
func ImageFor(mistakes int) string {
	return fmt.Sprintf("bild-%d.svg", mistakes)
}

// HintsLeft is the number of hints still available.
func (r *Round) HintsLeft() int { return MaxHints - r.Hints }

// WordLength is the number of letters in the target.
func (r *Round) WordLength() int { return len([]rune(r.Target)) }

// GuessedLetters returns the guessed set as a sorted string ("aelp").
func (r *Round) GuessedLetters() string {
	letters := make([]rune, 0, len(r.Guessed))
	for c := range r.Guessed {
		letters = append(letters, c)
	}
	slices.Sort(letters)
	return string(letters)
}

// Elapsed is the play time of the round, frozen once it ended.
func (r *Round) Elapsed() time.Duration {
	if r.Ended {
		return r.EndedAt.Sub(r.StartedAt)
	}
	return clock().Sub(r.StartedAt)
}
