package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/clockwork/codebook"
	"github.com/unkn0wn-root/clockwork/internal/util"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery  uint64
	CollisionEvery uint64
	ExhaustedEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr  atomic.Uint64
	collisionCtr atomic.Uint64
	exhaustedCtr atomic.Uint64
}

var _ codebook.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	return util.Fingerprint(k)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("codebook.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) IssueCollision(storageKey string, attempt int) {
	if h.l == nil || !sample(h.opts.CollisionEvery, &h.collisionCtr) {
		return
	}
	h.l.Info("codebook.issue_collision",
		"key", h.redact(storageKey),
		"attempt", attempt)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("codebook.provider_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) CounterError(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("codebook.counter_error",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) RedeemExhausted(storageKey string) {
	if h.l == nil || !sample(h.opts.ExhaustedEvery, &h.exhaustedCtr) {
		return
	}
	h.l.Debug("codebook.redeem_exhausted",
		"key", h.redact(storageKey))
}

func (h *Hooks) RevokeOutage(key string, counterErr, delErr error) {
	if h.l == nil {
		return
	}
	h.l.Error("codebook.revoke_outage",
		"key", h.redact(key),
		"counter_err", counterErr,
		"del_err", delErr)
}
