package codec

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/clockwork"
)

var ErrTooLarge = errors.New("codec: payload too large")

// Limit rejects Decode input longer than MaxDecode bytes before Inner sees
// it. Wrap a Text codec to bound the length of text accepted from users.
// MaxDecode <= 0 disables the check. Encode is forwarded unchanged.
type Limit[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) {
	if c.Inner == nil {
		return nil, fmt.Errorf("codec: limit: nil inner codec: %w", clockwork.ErrInvalidArgument)
	}
	return c.Inner.Encode(v)
}

func (c Limit[V]) Decode(b []byte) (V, error) {
	var zero V
	if c.Inner == nil {
		return zero, fmt.Errorf("codec: limit: nil inner codec: %w", clockwork.ErrInvalidArgument)
	}
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return zero, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
