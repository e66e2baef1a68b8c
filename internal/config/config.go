package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hangdle/go-server/internal/words"
)

// Config describes all runtime settings for the server.
// It is loaded once in main, validated, and passed down explicitly.
type Config struct {
	Env string // dev|prod

	Log struct {
		Level  string
		Format string // console|json
	}

	HTTP struct {
		Addr              string
		ClientOrigin      string
		ReadHeaderTimeout time.Duration
		HandlerTimeout    time.Duration
		ShutdownTimeout   time.Duration
	}

	Session struct {
		Secret string
		TTL    time.Duration
		Cookie string
	}

	Store struct {
		Backend  string // memory|redis
		RoundTTL time.Duration
	}

	Redis struct {
		Addr string
		DB   int
	}

	History struct {
		Path string // empty disables the SQLite history
	}

	Leaderboard struct {
		Size int
	}

	Words     words.Files
	DailySalt string
}

const defaultSecret = "dev_secret_change_me"

// Load reads the environment and validates the result. Malformed
// durations and integers are reported rather than replaced by defaults.
func Load() (Config, error) {
	var c Config
	var env envReader

	c.Env = envString("APP_ENV", "dev")
	c.Log.Level = envString("LOG_LEVEL", "info")
	c.Log.Format = envString("LOG_FORMAT", "console")

	c.HTTP.Addr = envString("HTTP_ADDR", ":"+envString("PORT", "5175"))
	c.HTTP.ClientOrigin = envString("CLIENT_ORIGIN", "http://localhost:5173")
	c.HTTP.ReadHeaderTimeout = env.duration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second)
	c.HTTP.HandlerTimeout = env.duration("HTTP_HANDLER_TIMEOUT", 10*time.Second)
	c.HTTP.ShutdownTimeout = env.duration("SHUTDOWN_TIMEOUT", 10*time.Second)

	c.Session.Secret = envString("JWT_SECRET", defaultSecret)
	c.Session.TTL = env.duration("SESSION_TTL", 14*24*time.Hour)
	c.Session.Cookie = envString("COOKIE_NAME", "hangman_session")

	c.Store.Backend = envString("STORE_BACKEND", "memory")
	c.Store.RoundTTL = env.duration("ROUND_TTL", 24*time.Hour)

	c.Redis.Addr = envString("REDIS_ADDR", "localhost:6379")
	c.Redis.DB = env.integer("REDIS_DB", 0)

	c.History.Path = os.Getenv("DATABASE_PATH")
	c.Leaderboard.Size = env.integer("LEADERBOARD_SIZE", 10)

	c.Words = words.Files{
		Easy:   os.Getenv("WORDS_EASY_FILE"),
		Medium: os.Getenv("WORDS_MEDIUM_FILE"),
		Hard:   os.Getenv("WORDS_HARD_FILE"),
	}
	c.DailySalt = envString("DAILY_SALT", "local_dev_salt")

	if err := errors.Join(env.errs...); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("HTTP addr is empty")
	}
	if c.Session.Secret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	if c.Env != "dev" && c.Session.Secret == defaultSecret {
		return fmt.Errorf("refuse to run with default JWT_SECRET in %s", c.Env)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want console|json)", c.Log.Format)
	}
	switch c.Store.Backend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is empty")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND=%q (want memory|redis)", c.Store.Backend)
	}
	if c.Leaderboard.Size <= 0 {
		return fmt.Errorf("LEADERBOARD_SIZE must be positive, got %d", c.Leaderboard.Size)
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envReader parses typed variables and collects every parse failure.
type envReader struct {
	errs []error
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", key, v, err))
		return def
	}
	return d
}

func (r *envReader) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s=%q: %w", key, v, err))
		return def
	}
	return n
}
