// Package state keeps confirmation requests raised by the hook until the
// host resolves them.
package state

import (
	"context"
	"time"
)

// Pending is a confirmation request waiting for the host's permission
// prompt.
type Pending struct {
	Key     string
	ID      string
	Tool    string
	Reason  string
	Matched string
	Created time.Time
}

// Store holds pending entries keyed by tool call. Take consumes an entry:
// a second Take for the same key reports not found.
type Store interface {
	Put(ctx context.Context, p Pending) error
	Take(ctx context.Context, key string) (Pending, bool, error)
	Delete(ctx context.Context, key string) error
	Purge(ctx context.Context, olderThan time.Time) (int, error)
	Close() error
}
