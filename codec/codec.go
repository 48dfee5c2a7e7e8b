// Package codec converts values to bytes and, through Text, to Clockwork
// Base32 text that survives being read aloud, retyped or pasted into
// case-folding systems.
package codec

import (
	"fmt"

	"github.com/unkn0wn-root/clockwork"
)

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Text armors the output of Inner as Clockwork Base32 symbols.
// Decode accepts lowercase and alias characters; the decoded bytes are then
// handed to Inner.
//
//	tc := codec.Text[Order]{Inner: codec.JSON[Order]{}}
//	b, _ := tc.Encode(o) // e.g. "FBHQ..."
type Text[V any] struct {
	Inner Codec[V]
}

var _ Codec[[]byte] = Text[[]byte]{}

func (c Text[V]) Encode(v V) ([]byte, error) {
	if c.Inner == nil {
		return nil, fmt.Errorf("codec: text: nil inner codec: %w", clockwork.ErrInvalidArgument)
	}
	raw, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return clockwork.AppendEncode(make([]byte, 0, clockwork.EncodedLen(len(raw))), raw), nil
}

func (c Text[V]) Decode(b []byte) (V, error) {
	var zero V
	if c.Inner == nil {
		return zero, fmt.Errorf("codec: text: nil inner codec: %w", clockwork.ErrInvalidArgument)
	}
	raw, err := clockwork.AppendDecode(make([]byte, 0, clockwork.DecodedLen(len(b))), b)
	if err != nil {
		return zero, err
	}
	return c.Inner.Decode(raw)
}
