package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hangdle/go-server/assets"
	"github.com/hangdle/go-server/internal/config"
	"github.com/hangdle/go-server/internal/history"
	"github.com/hangdle/go-server/internal/httpserver"
	"github.com/hangdle/go-server/internal/leaderboard"
	"github.com/hangdle/go-server/internal/store"
	"github.com/hangdle/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wl, err := words.Load(cfg.Words)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	stats := log.Info()
	for d, n := range wl.Stats() {
		stats = stats.Int(string(d), n)
	}
	stats.Msg("word lists loaded")

	st, closeStore := openStore(ctx, cfg)
	defer closeStore()

	board := leaderboard.NewBoard(cfg.Leaderboard.Size)

	var hist *history.Store
	if cfg.History.Path != "" {
		db := openHistory(cfg.History.Path)
		defer db.Close()
		hist = history.NewStore(db)
		seedBoard(ctx, hist, board, cfg.Leaderboard.Size)
	}

	srv := httpserver.New(httpserver.Config{
		ClientOrigin:      cfg.HTTP.ClientOrigin,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		HandlerTimeout:    cfg.HTTP.HandlerTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
		SessionSecret:     []byte(cfg.Session.Secret),
		SessionTTL:        cfg.Session.TTL,
		CookieName:        cfg.Session.Cookie,
		SecureCookies:     cfg.Env == "prod",
		DailySalt:         cfg.DailySalt,
	}, httpserver.Deps{
		Store:   st,
		Words:   wl,
		Board:   board,
		History: hist,
	})

	log.Info().Str("addr", cfg.HTTP.Addr).Str("env", cfg.Env).Str("store", cfg.Store.Backend).Msg("starting go-server")
	if err := srv.Start(ctx, cfg.HTTP.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("bye")
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Log.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// openStore picks the round store backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func()) {
	switch cfg.Store.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable")
		}
		return store.NewRedisStore(rdb, cfg.Store.RoundTTL), func() { _ = rdb.Close() }
	default:
		return store.NewMemoryStore(cfg.Store.RoundTTL), func() {}
	}
}

func openHistory(path string) *sql.DB {
	db, err := history.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("open history db")
	}
	if err := history.Migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate history db")
	}
	return db
}

// seedBoard fills the leaderboard with the best recorded rounds.
func seedBoard(ctx context.Context, hist *history.Store, board *leaderboard.Board, size int) {
	n, err := hist.Seed(ctx, board, size)
	if err != nil {
		log.Warn().Err(err).Msg("seed leaderboard")
		return
	}
	log.Info().Int("rows", n).Msg("leaderboard seeded from history")
}
