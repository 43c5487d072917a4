// Package config resolves process-level settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds everything the entrypoint needs to wire the engine.
type Config struct {
	DBPath          string
	LexiconPath     string // "" means the built-in lexicon
	CatalogPath     string // "" means the built-in goal catalog
	InsightCacheTTL time.Duration
	SnapshotWindow  int // recent persisted readings fed to cross-session risk evaluation
	LogUseCases     bool
	WatchLexicon    bool
}

// DefaultConfig returns a Config with defaults for everything except DBPath,
// which Load resolves against the home directory.
func DefaultConfig() Config {
	return Config{
		InsightCacheTTL: 60 * time.Minute,
		SnapshotWindow:  50,
		LogUseCases:     false,
		WatchLexicon:    false,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("ATTUNE_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".attune", "attune.db")
	}

	cfg.LexiconPath = os.Getenv("ATTUNE_LEXICON")
	cfg.CatalogPath = os.Getenv("ATTUNE_CATALOG")

	if v := os.Getenv("ATTUNE_CACHE_TTL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.InsightCacheTTL = time.Duration(n) * time.Minute
		}
	}
	if v := os.Getenv("ATTUNE_SNAPSHOT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SnapshotWindow = n
		}
	}
	if v := os.Getenv("ATTUNE_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ATTUNE_WATCH_LEXICON"); v != "" {
		cfg.WatchLexicon, _ = strconv.ParseBool(v)
	}

	return cfg, nil
}
