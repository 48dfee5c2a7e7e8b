package codebook

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedCode wraps every Normalize failure: wrong symbol count or
	// a character outside the alphabet (then clockwork.ErrInvalidSymbol is
	// wrapped too).
	ErrMalformedCode = errors.New("codebook: malformed code")
	// ErrRejected means the provider refused to store a new code.
	ErrRejected = errors.New("codebook: provider rejected entry")
	// ErrCollision means every issue attempt produced a code already in use.
	ErrCollision = errors.New("codebook: could not allocate unique code")
)

type RevokeError struct {
	Code       string
	CounterErr error
	DelErr     error
}

func (e *RevokeError) Error() string {
	switch {
	case e.CounterErr != nil && e.DelErr != nil:
		return fmt.Sprintf("revoke %q failed: counter exhaust and delete failed: counter=%v; delete=%v",
			e.Code, e.CounterErr, e.DelErr)
	case e.CounterErr != nil:
		return fmt.Sprintf("revoke %q: counter exhaust failed: %v", e.Code, e.CounterErr)
	case e.DelErr != nil:
		return fmt.Sprintf("revoke %q: delete failed: %v", e.Code, e.DelErr)
	default:
		return fmt.Sprintf("revoke %q: unknown error", e.Code)
	}
}

func (e *RevokeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.CounterErr != nil {
		errs = append(errs, e.CounterErr)
	}
	if e.DelErr != nil {
		errs = append(errs, e.DelErr)
	}
	return errs
}
