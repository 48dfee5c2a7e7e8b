package counter

import (
	"context"
	"time"
)

// Exhausted is the count Exhaust pins a key to. It is far above any
// redemption limit a uint32 can express, so later Incr calls stay above too.
const Exhausted uint64 = 1 << 62

// Counter tracks how many times each code was redeemed.
// Use Local (default) for a single process, or Redis when several replicas
// redeem from the same codebook.
type Counter interface {
	// Load returns the current count; missing => 0.
	Load(ctx context.Context, key string) (uint64, error)
	// LoadMany returns counts for many keys; missing => 0.
	LoadMany(ctx context.Context, keys []string) (map[string]uint64, error)
	// Incr atomically increments and returns the new count.
	Incr(ctx context.Context, key string) (uint64, error)
	// Reset forgets key so the next Load returns 0.
	Reset(ctx context.Context, key string) error
	// Exhaust raises key to Exhausted so every later Incr exceeds any limit.
	Exhaust(ctx context.Context, key string) error
	// Cleanup prunes counts idle longer than retention (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
