package codebook

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/unkn0wn-root/clockwork"
	c "github.com/unkn0wn-root/clockwork/codec"
	ctr "github.com/unkn0wn-root/clockwork/counter"
	"github.com/unkn0wn-root/clockwork/internal/util"
	"github.com/unkn0wn-root/clockwork/internal/wire"
	pr "github.com/unkn0wn-root/clockwork/provider"
)

const (
	defaultCodeBytes = 10
	defaultGroupSize = 4
	defaultTTL       = 24 * time.Hour
	defaultAttempts  = 3
	defaultSweep     = time.Hour
	maxCodeBytes     = 64
)

type book[V any] struct {
	ns        string
	provider  pr.Provider
	codec     c.Codec[V]
	counter   ctr.Counter
	log       Logger
	hooks     Hooks
	codeBytes int
	codeLen   int // symbols per canonical code
	groupSize int
	ttl       time.Duration
	maxUses   uint32
	attempts  int
	rand      io.Reader
	now       func() time.Time
}

func newBook[V any](opts Options[V]) (*book[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("codebook: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("codebook: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("codebook: namespace is required")
	}
	if opts.TTL < 0 {
		return nil, fmt.Errorf("codebook: negative TTL %v", opts.TTL)
	}
	if opts.CodeBytes < 0 || opts.CodeBytes > maxCodeBytes {
		return nil, fmt.Errorf("codebook: code bytes must be in [0, %d] (0 = default %d), got %d",
			maxCodeBytes, defaultCodeBytes, opts.CodeBytes)
	}

	b := &book[V]{
		ns:       opts.Namespace,
		provider: opts.Provider,
		codec:    opts.Codec,
	}

	// defaults
	b.log = coalesce[Logger](opts.Logger, NopLogger{})
	b.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	b.codeBytes = coalesce(opts.CodeBytes, defaultCodeBytes)
	b.codeLen = clockwork.EncodedLen(b.codeBytes)
	b.groupSize = coalesce(opts.GroupSize, defaultGroupSize)
	b.ttl = coalesce(opts.TTL, defaultTTL)
	b.maxUses = coalesce[uint32](opts.MaxRedemptions, 1)
	b.attempts = coalesce(opts.MaxIssueAttempts, defaultAttempts)
	b.rand = coalesce[io.Reader](opts.Rand, rand.Reader)

	if opts.Now != nil {
		b.now = opts.Now
	} else {
		b.now = time.Now
	}

	if opts.Counter != nil {
		b.counter = opts.Counter
	} else {
		// counts must outlive the entries they guard
		b.counter = ctr.NewLocal(defaultSweep, 2*b.ttl)
	}

	return b, nil
}

func (b *book[V]) Close(ctx context.Context) error {
	// Close counter first (best effort)
	if b.counter != nil {
		_ = b.counter.Close(ctx)
	}
	return b.provider.Close(ctx)
}

// Normalize maps any tolerated spelling of a code to its canonical form:
// separators dropped, symbols uppercased, aliases resolved.
func (b *book[V]) Normalize(code string) (string, error) {
	compact := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code)

	// decode first so a stray non-ASCII character is named, not miscounted
	raw, err := clockwork.Decode(compact)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedCode, err)
	}
	if len(compact) != b.codeLen {
		return "", fmt.Errorf("%w: %d symbols, want %d", ErrMalformedCode, len(compact), b.codeLen)
	}
	return clockwork.Encode(raw), nil
}

// Format splits a canonical code into dash separated groups for display.
func (b *book[V]) Format(canonical string) string {
	if b.groupSize <= 0 || len(canonical) <= b.groupSize {
		return canonical
	}
	var sb strings.Builder
	sb.Grow(len(canonical) + len(canonical)/b.groupSize)
	for i := 0; i < len(canonical); i += b.groupSize {
		if i > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(canonical[i:min(i+b.groupSize, len(canonical))])
	}
	return sb.String()
}

func (b *book[V]) Issue(ctx context.Context, value V) (string, error) {
	payload, err := b.codec.Encode(value)
	if err != nil {
		return "", err
	}
	entry := wire.EncodeEntry(wire.Entry{Issued: b.now(), Uses: b.maxUses, Payload: payload})

	raw := make([]byte, b.codeBytes)
	for attempt := 1; attempt <= b.attempts; attempt++ {
		if _, err := io.ReadFull(b.rand, raw); err != nil {
			return "", fmt.Errorf("codebook: read random: %w", err)
		}
		code := clockwork.Encode(raw)
		k := b.storageKey(code)

		_, taken, err := b.provider.Get(ctx, k)
		if err != nil {
			return "", err
		}
		if taken {
			b.hooks.IssueCollision(k, attempt)
			b.log.Debug("Issue collision; retrying", Fields{"key": util.Fingerprint(k), "attempt": attempt})
			continue
		}

		// a count left over from an older entry under this code must not leak
		if err := b.counter.Reset(ctx, k); err != nil {
			b.hooks.CounterError(k, err)
			return "", err
		}
		ok, err := b.provider.Set(ctx, k, entry, int64(len(entry)), b.ttl)
		if err != nil {
			return "", err
		}
		if !ok {
			b.hooks.ProviderSetRejected(k)
			b.log.Warn("Issue rejected by provider (pressure)", Fields{"key": util.Fingerprint(k)})
			return "", ErrRejected
		}
		b.log.Debug("issued code", Fields{"key": util.Fingerprint(k), "uses": b.maxUses, "ttl": b.ttl})
		return b.Format(code), nil
	}
	return "", fmt.Errorf("%w after %d attempts", ErrCollision, b.attempts)
}

func (b *book[V]) IssueMany(ctx context.Context, values []V) ([]string, error) {
	codes := make([]string, 0, len(values))
	for i, v := range values {
		code, err := b.Issue(ctx, v)
		if err != nil {
			return codes, fmt.Errorf("codebook: issue %d of %d: %w", i+1, len(values), err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func (b *book[V]) Lookup(ctx context.Context, code string) (V, bool, error) {
	var zero V
	canonical, err := b.Normalize(code)
	if err != nil {
		return zero, false, err
	}
	k := b.storageKey(canonical)
	e, ok, err := b.load(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}

	used, err := b.counter.Load(ctx, k)
	if err != nil {
		b.hooks.CounterError(k, err)
		return zero, false, err
	}
	if used >= uint64(e.Uses) {
		return zero, false, nil
	}

	v, err := b.codec.Decode(e.Payload)
	if err != nil {
		b.selfHeal(ctx, k, "value_decode")
		return zero, false, nil
	}
	return v, true, nil
}

func (b *book[V]) Redeem(ctx context.Context, code string) (V, bool, error) {
	var zero V
	canonical, err := b.Normalize(code)
	if err != nil {
		return zero, false, err
	}
	k := b.storageKey(canonical)
	e, ok, err := b.load(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}

	// decode before counting so an unreadable entry never burns a use
	v, err := b.codec.Decode(e.Payload)
	if err != nil {
		b.selfHeal(ctx, k, "value_decode")
		return zero, false, nil
	}

	n, err := b.counter.Incr(ctx, k)
	if err != nil {
		b.hooks.CounterError(k, err)
		return zero, false, err
	}
	limit := uint64(e.Uses)
	if n > limit {
		b.hooks.RedeemExhausted(k)
		b.log.Debug("Redeem refused (exhausted)", Fields{"key": util.Fingerprint(k), "count": n})
		return zero, false, nil
	}
	if n == limit {
		// last use; the count stays so late racers still see n > limit
		_ = b.provider.Del(ctx, k)
	}
	b.log.Debug("redeemed code", Fields{"key": util.Fingerprint(k), "count": n, "limit": limit})
	return v, true, nil
}

func (b *book[V]) Revoke(ctx context.Context, code string) error {
	canonical, err := b.Normalize(code)
	if err != nil {
		return err
	}
	k := b.storageKey(canonical)

	// pin the count above the limit first: a Redeem that already loaded the
	// entry then fails its Incr check instead of winning after Revoke returns
	ctrErr := b.counter.Exhaust(ctx, k)
	delErr := b.provider.Del(ctx, k)
	if delErr == nil && ctrErr == nil {
		b.log.Debug("revoked code", Fields{"key": util.Fingerprint(k)})
		return nil
	}
	if delErr != nil && ctrErr != nil {
		b.hooks.RevokeOutage(k, ctrErr, delErr)
		b.log.Error("Revoke failed", Fields{"key": util.Fingerprint(k), "counterErr": ctrErr, "delErr": delErr})
	} else if ctrErr != nil {
		b.hooks.CounterError(k, ctrErr)
	}
	return &RevokeError{Code: canonical, CounterErr: ctrErr, DelErr: delErr}
}

func (b *book[V]) Usage(ctx context.Context, codes []string) (map[string]uint64, error) {
	canonical := make([]string, len(codes))
	keys := make([]string, len(codes))
	for i, code := range codes {
		cc, err := b.Normalize(code)
		if err != nil {
			return nil, err
		}
		canonical[i] = cc
		keys[i] = b.storageKey(cc)
	}
	m, err := b.counter.LoadMany(ctx, keys)
	if err != nil {
		b.hooks.CounterError(b.storageKey("*"), err)
		return nil, err
	}
	out := make(map[string]uint64, len(codes))
	for i, cc := range canonical {
		out[cc] = m[keys[i]]
	}
	return out, nil
}

// load returns the framed entry stored under k. Corrupt and expired entries
// are deleted and reported as a miss.
func (b *book[V]) load(ctx context.Context, k string) (wire.Entry, bool, error) {
	raw, ok, err := b.provider.Get(ctx, k)
	if err != nil || !ok {
		return wire.Entry{}, false, err
	}
	e, err := wire.DecodeEntry(raw)
	if err != nil {
		b.selfHeal(ctx, k, "corrupt")
		return wire.Entry{}, false, nil
	}
	// providers without per-entry TTL (bigcache) keep entries past expiry
	if b.now().Sub(e.Issued) >= b.ttl {
		b.selfHeal(ctx, k, "expired")
		return wire.Entry{}, false, nil
	}
	return e, true, nil
}

func (b *book[V]) selfHeal(ctx context.Context, k, reason string) {
	_ = b.provider.Del(ctx, k)
	b.hooks.SelfHeal(k, reason)
	b.log.Warn("dropped unreadable entry", Fields{"key": util.Fingerprint(k), "reason": reason})
}

func (b *book[V]) storageKey(canonical string) string {
	// isolate by namespace
	return "code:" + b.ns + ":" + canonical
}
