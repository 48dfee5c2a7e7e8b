package counter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNilClient = errors.New("redis counter: nil client")

// Redis shares redemption counts across processes and survives restarts.
// With a TTL, count keys expire; keep it >= the codebook TTL.
type Redis struct {
	rdb         redis.UniversalClient
	ns          string
	ttl         time.Duration
	closeClient bool
}

var _ Counter = (*Redis)(nil)

type RedisConfig struct {
	Client    redis.UniversalClient
	Namespace string
	TTL       time.Duration // <= 0 keeps counts forever
	// CloseClient hands the client to the counter; Close then closes it.
	// Leave false when the client is shared, e.g. with provider/redis.
	CloseClient bool
}

// NewRedis creates a Redis-backed counter over a shared client; Close
// leaves the client open. ttl <= 0 keeps counts forever.
func NewRedis(client redis.UniversalClient, namespace string, ttl time.Duration) *Redis {
	return &Redis{rdb: client, ns: namespace, ttl: ttl}
}

func NewRedisWithConfig(cfg RedisConfig) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, ns: cfg.Namespace, ttl: cfg.TTL, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) key(k string) string { return "uses:" + s.ns + ":" + k }

func (s *Redis) Load(ctx context.Context, k string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(k)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis counter parse: %w", err)
	}
	return u, nil
}

func (s *Redis) LoadMany(ctx context.Context, ks []string) (map[string]uint64, error) {
	if len(ks) == 0 {
		return map[string]uint64{}, nil
	}
	keys := make([]string, len(ks))
	for i, k := range ks {
		keys[i] = s.key(k)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]uint64, len(ks))
	for i, v := range vals {
		if v == nil {
			out[ks[i]] = 0
			continue
		}
		u, err := strconv.ParseUint(fmt.Sprint(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis counter parse at %s: %w", ks[i], err)
		}
		out[ks[i]] = u
	}
	return out, nil
}

// Incr pipelines INCR + EXPIRE in one round-trip when a TTL is set.
func (s *Redis) Incr(ctx context.Context, k string) (uint64, error) {
	key := s.key(k)

	if s.ttl <= 0 {
		v, err := s.rdb.Incr(ctx, key).Result()
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}

	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

func (s *Redis) Reset(ctx context.Context, k string) error {
	return s.rdb.Del(ctx, s.key(k)).Err()
}

// Exhaust overwrites the count; the key expires with the counter TTL.
func (s *Redis) Exhaust(ctx context.Context, k string) error {
	return s.rdb.Set(ctx, s.key(k), Exhausted, s.ttl).Err()
}

func (s *Redis) Cleanup(time.Duration) {}

// Close closes the client only when the counter owns it. Repeated calls are
// no-ops.
func (s *Redis) Close(context.Context) error {
	if !s.closeClient {
		return nil
	}
	if err := s.rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
