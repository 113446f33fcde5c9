// Package scratchpad stores a single free-form note.
package scratchpad

import (
	"context"

	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/store"
)

// Key is the store key holding the note.
const Key = "scratchpad"

// Pad reads and replaces the note.
type Pad struct {
	Store store.Store
}

// Get returns the note, or "" when none was saved.
func (p *Pad) Get(ctx context.Context) (string, error) {
	var text string
	if _, err := repository.GetJSON(ctx, p.Store, Key, &text); err != nil {
		return "", err
	}
	return text, nil
}

// Set replaces the note.
func (p *Pad) Set(ctx context.Context, text string) error {
	return repository.PutJSON(ctx, p.Store, Key, text)
}
