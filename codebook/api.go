package codebook

import (
	"context"
	"io"
	"time"

	c "github.com/unkn0wn-root/clockwork/codec"
	ctr "github.com/unkn0wn-root/clockwork/counter"
	pr "github.com/unkn0wn-root/clockwork/provider"
)

// Book issues and redeems codes bound to values of type V.
// Every method accepting a code normalizes it first, so display form,
// lowercase and alias spellings all address the same entry.
type Book[V any] interface {
	Issue(ctx context.Context, value V) (code string, err error)
	IssueMany(ctx context.Context, values []V) (codes []string, err error)

	// Lookup reads without consuming a redemption.
	Lookup(ctx context.Context, code string) (v V, ok bool, err error)
	// Redeem consumes one redemption; ok=false once the code is used up,
	// revoked, expired or unknown.
	Redeem(ctx context.Context, code string) (v V, ok bool, err error)
	// Revoke deletes the entry and pins its count above the limit, so a
	// Redeem racing with it cannot succeed once Revoke has returned.
	Revoke(ctx context.Context, code string) error

	// Usage returns redemptions so far, keyed by canonical code. A revoked
	// code reports counter.Exhausted or more.
	Usage(ctx context.Context, codes []string) (map[string]uint64, error)

	Normalize(code string) (canonical string, err error)
	Format(canonical string) string

	Close(context.Context) error
}

// Options tune a Book. Namespace, Provider and Codec are required; others
// have sensible defaults.
type Options[V any] struct {
	// Required
	Namespace string // e.g. "gift", "invite", "pairing"
	Provider  pr.Provider
	Codec     c.Codec[V]

	Counter          ctr.Counter   // nil => counter.Local
	Logger           Logger        // nil => NopLogger
	Hooks            Hooks         // nil => NopHooks
	CodeBytes        int           // random bytes per code; 0 => 10 (16 symbols)
	GroupSize        int           // symbols per display group; 0 => 4, <0 => no grouping
	TTL              time.Duration // 0 => 24h; enforced from the issue time even if the provider ignores it
	MaxRedemptions   uint32        // 0 => 1
	MaxIssueAttempts int           // 0 => 3
	Rand             io.Reader     // nil => crypto/rand.Reader
	Now              func() time.Time
}

func New[V any](opts Options[V]) (Book[V], error) {
	return newBook[V](opts)
}
