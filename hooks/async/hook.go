// Package asynchook moves codebook.Hooks callbacks off the request path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    SelfHealEvery:  10, // sample logs: ~every 10th self-heal
//	    CollisionEvery: 1,  // log every collision
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	book, _ := codebook.New[Gift](codebook.Options[Gift]{
//	    Namespace: "gift",
//	    Provider:  provider,
//	    Codec:     codec.JSON[Gift]{},
//	    Counter:   counter.NewRedis(rdb, "gift", 48*time.Hour),
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/clockwork/codebook"
)

type Hooks struct {
	inner   codebook.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards q against send after close
	closed  bool
	dropped atomic.Uint64
}

var _ codebook.Hooks = (*Hooks)(nil)

func New(inner codebook.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = codebook.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events fired after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports events discarded because the queue was full or closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) SelfHeal(k, r string)           { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) IssueCollision(k string, n int) { h.try(func() { h.inner.IssueCollision(k, n) }) }
func (h *Hooks) ProviderSetRejected(k string)   { h.try(func() { h.inner.ProviderSetRejected(k) }) }
func (h *Hooks) CounterError(k string, err error) {
	h.try(func() { h.inner.CounterError(k, err) })
}
func (h *Hooks) RedeemExhausted(k string) { h.try(func() { h.inner.RedeemExhausted(k) }) }
func (h *Hooks) RevokeOutage(k string, ce, de error) {
	h.try(func() { h.inner.RevokeOutage(k, ce, de) })
}
