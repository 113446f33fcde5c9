package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const sqliteFile = "focus.sqlite"

// Open builds the Store selected by cfg. A nil cfg loads the default
// configuration.
func Open(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendDiskv:
		return NewDiskv(cfg.Path)
	case BackendSQLite:
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure base path: %w", err)
		}
		return NewSQLite(filepath.Join(cfg.Path, sqliteFile))
	case BackendNATS:
		return NewNATS(ctx, cfg.NATSURL, cfg.NATSBucket)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w %q (expected diskv, sqlite, nats or memory)", ErrUnknownBackend, cfg.Backend)
	}
}
