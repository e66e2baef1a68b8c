package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hangdle/go-server/internal/game"
	"github.com/hangdle/go-server/internal/leaderboard"
	"github.com/hangdle/go-server/internal/words"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C"))
	wordStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8F8F2"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	wonStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50FA7B"))
	lostStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	selStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	gallowsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9"))
)

// gallows has one drawing per mistake count, 0 through game.MaxMistakes.
var gallows = [game.MaxMistakes + 1]string{
	"  +---+\n  |   |\n      |\n      |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n      |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n  |   |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n /|   |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n /|\\  |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n /|\\  |\n /    |\n=======",
	"  +---+\n  |   |\n  O   |\n /|\\  |\n / \\  |\n=======",
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.renderMenu()
	case screenBoard:
		body = m.renderBoard()
	default:
		body = m.renderGame()
	}
	if m.Err != nil {
		body += "\n" + errStyle.Render(m.Err.Error())
	}
	if m.width == 0 || m.height == 0 {
		return panelStyle.Render(body)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panelStyle.Render(body))
}

func (m Model) renderMenu() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Hangman") + "\n\n")
	for i, d := range words.Difficulties {
		if i == m.menuIdx {
			s.WriteString(selStyle.Render("> " + d.Title()))
		} else {
			s.WriteString("  " + d.Title())
		}
		s.WriteString("\n")
	}
	mode := "random word"
	if m.daily {
		mode = "word of the day"
	}
	s.WriteString("\nMode: " + mode + "\n\n")
	s.WriteString(dimStyle.Render(helpLine(m.KeyMap.Start, m.KeyMap.Daily, m.KeyMap.Board, m.KeyMap.Quit)))
	return s.String()
}

func (m Model) renderGame() string {
	r := m.ctrl.Round()
	if r == nil {
		return m.renderMenu()
	}
	var s strings.Builder

	title := "Hangman · " + r.Difficulty.Title()
	if r.Daily {
		title += " · daily"
	}
	s.WriteString(titleStyle.Render(title) + "\n\n")
	s.WriteString(gallowsStyle.Render(gallows[min(r.Mistakes, game.MaxMistakes)]) + "\n\n")

	masked := r.Masked()
	if r.Ended {
		masked = r.Target
	}
	s.WriteString(wordStyle.Render(spaced(masked)) + "\n\n")

	guessed := r.GuessedLetters()
	if guessed == "" {
		guessed = "-"
	}
	fmt.Fprintf(&s, "Guessed: %s\n", spaced(guessed))
	fmt.Fprintf(&s, "Mistakes: %d/%d   Hints left: %d   Time: %ds\n\n",
		r.Mistakes, game.MaxMistakes, r.HintsLeft(), int(r.Elapsed().Seconds()))

	switch r.Status {
	case game.StatusWon:
		s.WriteString(wonStyle.Render(m.feed.message))
	case game.StatusLost:
		s.WriteString(lostStyle.Render(m.feed.message))
	default:
		s.WriteString(m.feed.message)
	}
	s.WriteString("\n\n")
	s.WriteString(dimStyle.Render(helpLine(m.KeyMap.Hint, m.KeyMap.New, m.KeyMap.Board, m.KeyMap.Menu, m.KeyMap.Quit)))
	return s.String()
}

func (m Model) renderBoard() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Leaderboard") + "\n")
	if m.sortedBy != "" {
		dir := "descending"
		if m.sortedAsc {
			dir = "ascending"
		}
		s.WriteString(dimStyle.Render(fmt.Sprintf("sorted by %s, %s", m.sortedBy, dir)))
	}
	s.WriteString("\n\n")
	for i, row := range m.board.Rows() {
		line := fmt.Sprintf("%2d. %s", i+1, row)
		if leaderboard.IsEmpty(row) {
			line = dimStyle.Render(line)
		}
		s.WriteString(line + "\n")
	}
	s.WriteString("\n")
	s.WriteString(dimStyle.Render(helpLine(m.KeyMap.SortResult, m.KeyMap.SortTime, m.KeyMap.SortDate, m.KeyMap.Board)))
	return s.String()
}

// spaced puts a space between letters so blanks are countable.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
