package codebook

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; wrap slow ones with
// hooks/async.
type Hooks interface {
	// An entry was deleted on read.
	// reason ∈ {"corrupt", "expired", "value_decode"}
	SelfHeal(storageKey, reason string)

	// A freshly generated code was already taken; attempt starts at 1.
	IssueCollision(storageKey string, attempt int)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// Counter failed on load, increment, reset or exhaust.
	CounterError(storageKey string, err error)

	// A redemption lost the race for the last use.
	RedeemExhausted(storageKey string)

	// Both delete and counter exhaust failed during Revoke (likely backend outage).
	RevokeOutage(storageKey string, counterErr, delErr error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)           {}
func (NopHooks) IssueCollision(string, int)        {}
func (NopHooks) ProviderSetRejected(string)        {}
func (NopHooks) CounterError(string, error)        {}
func (NopHooks) RedeemExhausted(string)            {}
func (NopHooks) RevokeOutage(string, error, error) {}
