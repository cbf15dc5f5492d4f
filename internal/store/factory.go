package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Storage engines accepted by NewByEngine
const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// DefaultRoot is the per-user data directory
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".greenlie"
	}
	return filepath.Join(home, ".greenlie")
}

// NewByEngine creates the store backend named by engine. An empty path
// uses a location under DefaultRoot.
func NewByEngine(engine, path string, logger *slog.Logger) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineJSON:
		if path == "" {
			path = filepath.Join(DefaultRoot(), "data")
		}
		return NewBlobStore(path, logger)
	case EngineSQLite:
		if path == "" {
			path = filepath.Join(DefaultRoot(), "greenlie.db")
		}
		return NewSQLiteStore(path, logger)
	default:
		return nil, fmt.Errorf("unknown store engine %q (want %s or %s)", engine, EngineJSON, EngineSQLite)
	}
}
