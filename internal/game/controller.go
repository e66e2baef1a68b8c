// internal/game/controller.go
//
// Controller owns the single active round of one player and drives the
// engine on their behalf: it picks words, resolves win/loss after every
// action and tells the Notifier what changed.

package game

import (
	"errors"
	"time"
	"unicode"

	"github.com/hangdle/go-server/internal/words"
)

// ErrNoRound is returned when an action needs a round but none is active.
var ErrNoRound = errors.New("game: no active round")

// WordSource supplies target words. *words.Lists implements it.
type WordSource interface {
	Random(d words.Difficulty, src words.Source) (string, error)
	Daily(d words.Difficulty, date time.Time, salt string) (string, error)
}

// Controller is not safe for concurrent use; callers serialize access.
type Controller struct {
	words     WordSource
	src       words.Source
	notify    Notifier
	dailySalt string
	player    string

	difficulty words.Difficulty
	round      *Round
}

// Option configures a Controller.
type Option func(*Controller)

// WithSource sets the random source for word and hint selection.
func WithSource(src words.Source) Option {
	return func(c *Controller) { c.src = src }
}

// WithNotifier sets the UI collaborator.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notify = n }
}

// WithDailySalt sets the salt for word-of-the-day selection.
func WithDailySalt(salt string) Option {
	return func(c *Controller) { c.dailySalt = salt }
}

// WithPlayer sets the name stamped on new rounds.
func WithPlayer(name string) Option {
	return func(c *Controller) { c.player = name }
}

func NewController(ws WordSource, opts ...Option) *Controller {
	c := &Controller{
		words:      ws,
		src:        words.DefaultSource,
		notify:     NopNotifier{},
		difficulty: words.Easy,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Round returns the active round, or nil before the first Start.
func (c *Controller) Round() *Round { return c.round }

// Difficulty returns the difficulty used by Reset.
func (c *Controller) Difficulty() words.Difficulty { return c.difficulty }

// Start replaces the active round with a new one drawn from d.
func (c *Controller) Start(d words.Difficulty) (*Round, error) {
	w, err := c.words.Random(d, c.src)
	if err != nil {
		return nil, err
	}
	return c.begin(d, w, false), nil
}

// StartDaily replaces the active round with the word of the day for d.
func (c *Controller) StartDaily(d words.Difficulty, date time.Time) (*Round, error) {
	w, err := c.words.Daily(d, date, c.dailySalt)
	if err != nil {
		return nil, err
	}
	return c.begin(d, w, true), nil
}

// Reset starts a fresh random round with the current difficulty.
func (c *Controller) Reset() (*Round, error) {
	return c.Start(c.difficulty)
}

// Attach makes an existing round (e.g. loaded from a store) the active one.
func (c *Controller) Attach(r *Round) {
	c.round = r
	if r.Difficulty != "" {
		c.difficulty = r.Difficulty
	}
}

func (c *Controller) begin(d words.Difficulty, word string, daily bool) *Round {
	r := StartRound(word)
	r.Difficulty = d
	r.Daily = daily
	r.Player = c.player
	c.difficulty = d
	c.round = r
	c.notify.RoundStarted(r)
	return r
}

// Guess applies a player guess and resolves the round. applied is false if
// the guess was ignored (round over, duplicate or not a letter).
func (c *Controller) Guess(letter rune) (status Status, applied bool, err error) {
	r := c.round
	if r == nil {
		return "", false, ErrNoRound
	}
	hit, ok := r.Guess(letter)
	if !ok {
		return r.Status, false, nil
	}
	c.notify.LetterGuessed(unicode.ToLower(letter), hit)
	if !hit {
		c.notify.MistakeMade(r.Mistakes, r.Image())
	}
	return c.resolve(), true, nil
}

// Hint reveals a hidden letter. ok is false when no hint was given.
// A hint that uncovers the last hidden letter wins the round.
func (c *Controller) Hint() (letter rune, ok bool, err error) {
	r := c.round
	if r == nil {
		return 0, false, ErrNoRound
	}
	letter, ok = r.GiveHint(c.src)
	if !ok {
		return 0, false, nil
	}
	c.notify.HintUsed(letter, r.HintsLeft())
	c.resolve()
	return letter, true, nil
}

// resolve ends the round once it is won or lost.
func (c *Controller) resolve() Status {
	r := c.round
	st := r.CheckStatus()
	if st != StatusOngoing && !r.Ended {
		r.End(st)
		c.notify.RoundEnded(st, r.Target)
	}
	return st
}
