// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/danielhkuo/pollhub/db"
)

// DefaultPort is used when neither -p nor PORT is set
const DefaultPort = 3318

// DefaultSessionTTL is the session lifetime when SESSION_TTL is unset
const DefaultSessionTTL = 7 * 24 * time.Hour

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	AuthSecret     string
	SiteURL        string
	SessionTTL     time.Duration
	AllowedOrigins []string
}

// Bind registers the configuration flags on fs. Values left at their zero
// value fall back to the environment in Resolve.
func Bind(fs *pflag.FlagSet, cfg *Config) {
	// Network config (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port (env: PORT)")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL (env: DATABASE_URL)")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type, sqlite or postgres (env: DATABASE_TYPE)")
	fs.StringVar(&cfg.SiteURL, "site-url", "", "Public site URL used in share links (env: SITE_URL)")
	fs.StringSliceVar(&cfg.AllowedOrigins, "allowed-origins", nil, "CORS origins (env: ALLOWED_ORIGINS)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime (env: SESSION_TTL)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AuthSecret, "auth-secret", "", "Session signing secret (prefer env AUTH_SECRET)")
}

// ParseFlags parses args, then fills the gaps from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("pollhub", pflag.ContinueOnError)
	Bind(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return Resolve(cfg)
}

// Resolve loads .env when present, applies environment fallbacks and
// defaults, and rejects configurations missing required values.
func Resolve(cfg Config) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.DetectType(cfg.DatabaseURL)
		}
	}
	if cfg.DatabaseType != db.TypePostgres && cfg.DatabaseType != db.TypeSQLite {
		return Config{}, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = os.Getenv("AUTH_SECRET")
	}
	if cfg.AuthSecret == "" {
		return Config{}, errors.New("AUTH_SECRET required")
	}

	if cfg.SessionTTL == 0 {
		if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
			d, err := time.ParseDuration(ttl)
			if err != nil || d <= 0 {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = d
		} else {
			cfg.SessionTTL = DefaultSessionTTL
		}
	}

	if cfg.SiteURL == "" {
		cfg.SiteURL = os.Getenv("SITE_URL")
		if cfg.SiteURL == "" {
			cfg.SiteURL = "http://localhost:" + strconv.Itoa(cfg.Port)
		}
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if len(cfg.AllowedOrigins) == 0 {
		for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
		if len(cfg.AllowedOrigins) == 0 {
			cfg.AllowedOrigins = []string{cfg.SiteURL}
		}
	}

	return cfg, nil
}
