// Package handlestore persists deployment handle records. A deploy and its
// matching undeploy typically run in different process lifetimes; the handle
// is the only state that must survive between them.
package handlestore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by Load and Delete when no record exists under
// the given name.
var ErrNotFound = errors.New("handle record not found")

// Record is a persisted deployment handle. Handle is the provider-specific
// handle struct, kept as raw JSON so the store stays provider-agnostic.
type Record struct {
	Provider  string          `json:"provider"`
	Handle    json.RawMessage `json:"handle"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store persists handle records by deployment name.
type Store interface {
	Save(ctx context.Context, name string, rec Record) error
	Load(ctx context.Context, name string) (Record, error)
	Delete(ctx context.Context, name string) error
}
