// Package store persists named JSON snapshots of the editing documents. The
// in-memory model stays authoritative; a snapshot is what survives a restart.
package store

import "context"

// Store is a named-blob snapshot store.
type Store interface {
	// Load returns the snapshot saved under the key, or (nil, nil) when no
	// snapshot exists.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the snapshot under the key.
	Save(ctx context.Context, key string, data []byte) error
	// Delete removes the snapshot under the key; deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Well-known snapshot keys.
const (
	KeyHyperConfig  = "hyperConfig"
	KeyHyperMeasure = "hyperCounterKpi"
)
