package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store types
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

const (
	DefaultBackendURL = "http://localhost:8888/api"
	DefaultStoreURL   = "community.db"
)

// ErrBadFlags wraps flag parsing failures, including -h (flag.ErrHelp).
var ErrBadFlags = errors.New("bad flags")

type Config struct {
	BackendURL string
	StoreType  string
	StoreURL   string
	LogLevel   slog.Level
	EnvFile    string
}

// ParseFlags reads global flags and returns the config plus the remaining
// arguments (the command and its own flags).
func ParseFlags(args []string) (Config, []string, error) {
	var cfg Config
	var level string

	fs := flag.NewFlagSet("community", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "b", "", "Backend base URL")
	fs.StringVar(&cfg.StoreType, "t", "", "Local store type (sqlite, postgres or redis)")
	fs.StringVar(&cfg.StoreURL, "d", "", "Local store URL or file")
	fs.StringVar(&level, "v", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Env file to load")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, fmt.Errorf("%w: %w", ErrBadFlags, err)
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, nil, err
	}

	// Fall back to environment variables
	if cfg.BackendURL == "" {
		cfg.BackendURL = os.Getenv("BACKEND_URL")
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
		if cfg.StoreType == "" {
			cfg.StoreType = StoreSQLite
		}
	}
	switch cfg.StoreType {
	case StoreSQLite, StorePostgres, StoreRedis:
	default:
		return Config{}, nil, fmt.Errorf("invalid store type %q", cfg.StoreType)
	}

	if cfg.StoreURL == "" {
		cfg.StoreURL = os.Getenv("STORE_URL")
	}
	if cfg.StoreURL == "" {
		if cfg.StoreType != StoreSQLite {
			return Config{}, nil, errors.New("store URL required for " + cfg.StoreType + " (use -d or STORE_URL env)")
		}
		cfg.StoreURL = DefaultStoreURL
	}

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = "warn"
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, nil, fmt.Errorf("invalid log level %q", level)
	}

	return cfg, fs.Args(), nil
}

// loadEnvFile loads the env file when it exists. Variables already set in
// the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}
