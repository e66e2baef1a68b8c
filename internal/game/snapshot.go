package game

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/hangdle/go-server/internal/words"
)

// Snapshot is the serializable form of a Round, used by stores and the API.
type Snapshot struct {
	ID          string           `json:"id"`
	Difficulty  words.Difficulty `json:"difficulty"`
	Daily       bool             `json:"daily,omitempty"`
	Player      string           `json:"player,omitempty"`
	Word        string           `json:"word,omitempty"` // cleared by Public while ongoing
	Masked      string           `json:"masked"`
	Guessed     string           `json:"guessed"`
	Mistakes    int              `json:"mistakes"`
	MaxMistakes int              `json:"maxMistakes"`
	Hints       int              `json:"hints"`
	MaxHints    int              `json:"maxHints"`
	Image       string           `json:"image"`
	Ended       bool             `json:"ended"`
	Status      Status           `json:"status"`
	StartedAt   time.Time        `json:"startedAt"`
	EndedAt     time.Time        `json:"endedAt,omitzero"`
}

// Snapshot captures the full round state, target word included.
func (r *Round) Snapshot() Snapshot {
	return Snapshot{
		ID:          r.ID,
		Difficulty:  r.Difficulty,
		Daily:       r.Daily,
		Player:      r.Player,
		Word:        r.Target,
		Masked:      r.Masked(),
		Guessed:     r.GuessedLetters(),
		Mistakes:    r.Mistakes,
		MaxMistakes: MaxMistakes,
		Hints:       r.Hints,
		MaxHints:    MaxHints,
		Image:       r.Image(),
		Ended:       r.Ended,
		Status:      r.Status,
		StartedAt:   r.StartedAt,
		EndedAt:     r.EndedAt,
	}
}

// Public returns a copy safe to show a player: the word stays hidden until
// the round has ended.
func (s Snapshot) Public() Snapshot {
	if !s.Ended {
		s.Word = ""
	}
	return s
}

// Restore rebuilds a Round from a full snapshot.
func Restore(s Snapshot) (*Round, error) {
	if s.ID == "" {
		return nil, errors.New("game: snapshot has no id")
	}
	if s.Word == "" {
		return nil, fmt.Errorf("game: snapshot %s has no word", s.ID)
	}
	if s.Mistakes < 0 || s.Mistakes > MaxMistakes || s.Hints < 0 || s.Hints > MaxHints {
		return nil, fmt.Errorf("game: snapshot %s counters out of range", s.ID)
	}
	guessed := make(map[rune]bool, len(s.Guessed))
	for _, c := range s.Guessed {
		if !unicode.IsLetter(c) {
			return nil, fmt.Errorf("game: snapshot %s has invalid guess %q", s.ID, c)
		}
		guessed[c] = true
	}
	status := s.Status
	if status == "" {
		status = StatusOngoing
	}
	return &Round{
		ID:         s.ID,
		Difficulty: s.Difficulty,
		Daily:      s.Daily,
		Player:     s.Player,
		Target:     s.Word,
		Guessed:    guessed,
		Mistakes:   s.Mistakes,
		Hints:      s.Hints,
		Ended:      s.Ended,
		Status:     status,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
	}, nil
}
