// Command hangman-tui plays Hangman in the terminal against the same word
// lists and leaderboard rules as the HTTP server. With DATABASE_PATH set,
// finished rounds go to the shared SQLite history.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hangdle/go-server/assets"
	"github.com/hangdle/go-server/internal/config"
	"github.com/hangdle/go-server/internal/history"
	"github.com/hangdle/go-server/internal/leaderboard"
	"github.com/hangdle/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()

	name := flag.String("name", "Guest", "player name shown on the leaderboard")
	logFile := flag.String("log", "", "write logs to this file (disabled when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	closeLog := setupLogging(cfg, *logFile)
	defer closeLog()

	wl, err := words.Load(cfg.Words)
	if err != nil {
		fatal(err)
	}
	board := leaderboard.NewBoard(cfg.Leaderboard.Size)

	opts := modelOpts{player: playerName(*name), salt: cfg.DailySalt}
	if cfg.History.Path != "" {
		hist, closeDB, err := openHistory(cfg.History.Path)
		if err != nil {
			fatal(err)
		}
		defer closeDB()
		if _, err := hist.Seed(context.Background(), board, cfg.Leaderboard.Size); err != nil {
			log.Warn().Err(err).Msg("seed leaderboard")
		}
		opts.onFinish = func(r history.Record) {
			if err := hist.Insert(context.Background(), r); err != nil {
				log.Warn().Err(err).Str("roundId", r.ID).Msg("history insert")
			}
		}
	}

	p := tea.NewProgram(NewModel(wl, board, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

// playerName makes a flag value safe for a leaderboard row.
func playerName(s string) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, ",", " ")), " ")
	if s == "" || leaderboard.IsEmpty(s) {
		return "Guest"
	}
	return s
}

// setupLogging keeps the terminal clean: logs go to path or nowhere.
func setupLogging(cfg config.Config, path string) func() {
	if path == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fatal(err)
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }
}

func openHistory(path string) (*history.Store, func(), error) {
	db, err := history.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := history.Migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return history.NewStore(db), func() { _ = db.Close() }, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "hangman-tui:", err)
	os.Exit(1)
}
