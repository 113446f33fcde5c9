package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const diskvTempDir = ".tmp"

// Diskv is a Store that keeps one file per key under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens (creating if needed) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			Transform: flatTransform,
			TempDir:   filepath.Join(basePath, diskvTempDir),
			// Other processes write the same files, so reads must hit disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

func flatTransform(string) []string {
	return []string{}
}

func (p *Diskv) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if !p.d.Has(key) {
			continue
		}
		val, err := p.d.Read(key)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("store: read %s: %w", key, err)
		}
		out[key] = val
	}
	return out, nil
}

// Set writes keys one file at a time in sorted order; it is not atomic across
// keys. Use SetOrdered when the order matters.
func (p *Diskv) Set(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range sortedKeys(values) {
		if err := p.d.Write(key, values[key]); err != nil {
			return fmt.Errorf("store: write %s: %w", key, err)
		}
	}
	return nil
}

func (p *Diskv) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range keys {
		if !p.d.Has(key) {
			continue
		}
		if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: erase %s: %w", key, err)
		}
	}
	return nil
}

// Close is a no-op; diskv holds no open handles between calls.
func (p *Diskv) Close() error {
	return nil
}
