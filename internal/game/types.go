// internal/game/types.go
//
// Core type definitions for the hangman round engine.
// Defines:
//   - Status: coarse state of a round (ongoing/won/lost).
//   - Round: state for a single in-progress or finished round.

package game

import (
	"time"

	"github.com/hangdle/go-server/internal/words"
)

// Limits of a single round.
const (
	MaxMistakes = 6
	MaxHints    = 3
)

// Status represents the outcome of a round so far.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Round holds the state of one playthrough for a single target word.
//
// Guessed is a set of letters, not positions: revealing a letter reveals
// every occurrence of it in Target.
type Round struct {
	ID         string           // Unique round identifier (UUID).
	Difficulty words.Difficulty // List the target word was drawn from.
	Daily      bool             // True if Target is the word of the day.
	Player     string           // Display name used for the leaderboard.
	Target     string           // The word to guess (always lowercase).
	Guessed    map[rune]bool    // Letters guessed or revealed by hints.
	Mistakes   int              // Misses so far, at most MaxMistakes.
	Hints      int              // Hints used so far, at most MaxHints.
	Ended      bool             // True once the round is won or lost.
	Status     Status           // Final status once Ended, else ongoing.
	StartedAt  time.Time
	EndedAt    time.Time
}
