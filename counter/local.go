package counter

import (
	"context"
	"sync"
	"time"
)

type localEntry struct {
	n         uint64
	updatedAt time.Time
}

// Local keeps counts in-process, with an optional loop pruning entries that
// have not moved for longer than the retention.
type Local struct {
	mu     sync.RWMutex
	counts map[string]localEntry
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ Counter = (*Local)(nil)

// NewLocal starts the cleanup loop only when both durations are positive.
// Retention should be at least the codebook TTL, otherwise an expired
// count would let a still-live code be redeemed again.
func NewLocal(cleanupInterval, retention time.Duration) *Local {
	s := &Local{counts: make(map[string]localEntry)}
	if cleanupInterval > 0 && retention > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup(retention)
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Local) Load(_ context.Context, k string) (uint64, error) {
	s.mu.RLock()
	e := s.counts[k]
	s.mu.RUnlock()
	return e.n, nil
}

// LoadMany takes the read lock once for all keys.
func (s *Local) LoadMany(_ context.Context, ks []string) (map[string]uint64, error) {
	out := make(map[string]uint64, len(ks))
	s.mu.RLock()
	for _, k := range ks {
		out[k] = s.counts[k].n
	}
	s.mu.RUnlock()
	return out, nil
}

func (s *Local) Incr(_ context.Context, k string) (uint64, error) {
	now := time.Now()
	s.mu.Lock()
	e := s.counts[k]
	e.n++
	e.updatedAt = now
	s.counts[k] = e
	s.mu.Unlock()
	return e.n, nil
}

func (s *Local) Reset(_ context.Context, k string) error {
	s.mu.Lock()
	delete(s.counts, k)
	s.mu.Unlock()
	return nil
}

func (s *Local) Exhaust(_ context.Context, k string) error {
	s.mu.Lock()
	s.counts[k] = localEntry{n: Exhausted, updatedAt: time.Now()}
	s.mu.Unlock()
	return nil
}

func (s *Local) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	for k, e := range s.counts {
		if e.updatedAt.Before(cutoff) {
			delete(s.counts, k)
		}
	}
	s.mu.Unlock()
}

func (s *Local) Close(_ context.Context) error {
	s.once.Do(func() {
		if s.stopCh != nil {
			s.ticker.Stop()
			close(s.stopCh)
			s.wg.Wait()
		}
	})
	return nil
}
