package main

import (
	"fmt"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/hangdle/go-server/internal/game"
	"github.com/hangdle/go-server/internal/history"
	"github.com/hangdle/go-server/internal/leaderboard"
	"github.com/hangdle/go-server/internal/words"
)

type screen int

const (
	screenMenu screen = iota
	screenPlaying
	screenBoard
)

// feed is the UI side of game.Notifier: it keeps the last status line.
type feed struct {
	message string
}

func (f *feed) RoundStarted(r *game.Round) {
	f.message = fmt.Sprintf("New %s word with %d letters.", r.Difficulty.Title(), r.WordLength())
}

func (f *feed) LetterGuessed(letter rune, hit bool) {
	if hit {
		f.message = fmt.Sprintf("Yes! %q is in the word.", letter)
	} else {
		f.message = fmt.Sprintf("No %q in this word.", letter)
	}
}

func (f *feed) MistakeMade(count int, _ string) {
	f.message += fmt.Sprintf(" Mistake %d of %d.", count, game.MaxMistakes)
}

func (f *feed) HintUsed(letter rune, remaining int) {
	f.message = fmt.Sprintf("Hint: %q. %d hints left.", letter, remaining)
}

func (f *feed) RoundEnded(status game.Status, word string) {
	if status == game.StatusWon {
		f.message = fmt.Sprintf("You won! The word was %q.", word)
		return
	}
	f.message = fmt.Sprintf("Game over. The word was %q.", word)
}

// Model is the bubbletea model for one player at the terminal.
type Model struct {
	ctrl     *game.Controller
	feed     *feed
	board    *leaderboard.Board
	onFinish func(history.Record)
	now      func() time.Time
	KeyMap   KeyMap

	screen    screen
	prev      screen // where the leaderboard returns to
	menuIdx   int
	daily     bool
	sortedBy  leaderboard.Criterion
	sortedAsc bool
	Err       error

	width, height int
}

type modelOpts struct {
	player   string
	src      words.Source
	salt     string
	onFinish func(history.Record)
}

func NewModel(ws game.WordSource, board *leaderboard.Board, o modelOpts) Model {
	f := &feed{}
	opts := []game.Option{
		game.WithNotifier(f),
		game.WithPlayer(o.player),
		game.WithDailySalt(o.salt),
	}
	if o.src != nil {
		opts = append(opts, game.WithSource(o.src))
	}
	return Model{
		ctrl:     game.NewController(ws, opts...),
		feed:     f,
		board:    board,
		onFinish: o.onFinish,
		now:      time.Now,
		KeyMap:   Keys,
		screen:   screenMenu,
	}
}

type tickMsg time.Time

// tick refreshes the round clock once a second.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("Hangman"), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		if key.Matches(msg, m.KeyMap.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenBoard:
			return m.updateBoard(msg)
		default:
			return m.updatePlaying(msg)
		}
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(words.Difficulties)
	switch {
	case key.Matches(msg, m.KeyMap.Up):
		m.menuIdx = (m.menuIdx - 1 + n) % n
	case key.Matches(msg, m.KeyMap.Down):
		m.menuIdx = (m.menuIdx + 1) % n
	case key.Matches(msg, m.KeyMap.Daily):
		m.daily = !m.daily
	case key.Matches(msg, m.KeyMap.Board):
		m.prev, m.screen = screenMenu, screenBoard
	case key.Matches(msg, m.KeyMap.Start):
		d := words.Difficulties[m.menuIdx]
		if m.daily {
			_, m.Err = m.ctrl.StartDaily(d, m.now())
		} else {
			_, m.Err = m.ctrl.Start(d)
		}
		if m.Err == nil {
			m.screen = screenPlaying
		}
	}
	return m, nil
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.KeyMap.Hint):
		if _, ok, err := m.ctrl.Hint(); err == nil && ok {
			m.finishIfEnded()
		}
	case key.Matches(msg, m.KeyMap.New):
		_, m.Err = m.ctrl.Reset()
	case key.Matches(msg, m.KeyMap.Board):
		m.prev, m.screen = screenPlaying, screenBoard
	case key.Matches(msg, m.KeyMap.Menu):
		m.screen = screenMenu
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && unicode.IsLetter(msg.Runes[0]):
		if _, applied, err := m.ctrl.Guess(msg.Runes[0]); err == nil && applied {
			m.finishIfEnded()
		}
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var c leaderboard.Criterion
	switch {
	case key.Matches(msg, m.KeyMap.SortResult):
		c = leaderboard.ByResult
	case key.Matches(msg, m.KeyMap.SortTime):
		c = leaderboard.ByTime
	case key.Matches(msg, m.KeyMap.SortDate):
		c = leaderboard.ByDate
	case key.Matches(msg, m.KeyMap.Board), key.Matches(msg, m.KeyMap.Menu):
		m.screen = m.prev
		return m, nil
	default:
		return m, nil
	}
	_, asc, err := m.board.Sort(c)
	if err != nil {
		m.Err = err
		return m, nil
	}
	m.Err = nil
	m.sortedBy, m.sortedAsc = c, asc
	return m, nil
}

// finishIfEnded records the active round once it has ended.
func (m *Model) finishIfEnded() {
	r := m.ctrl.Round()
	if r == nil || !r.Ended {
		return
	}
	rec := history.FromRound(r)
	if _, err := m.board.Record(rec.Entry()); err != nil {
		log.Warn().Err(err).Str("roundId", r.ID).Msg("leaderboard record")
		m.Err = err
	}
	if m.onFinish != nil {
		m.onFinish(rec)
	}
}
