package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/unkn0wn-root/clockwork"
)

// Protobuf encodes proto messages. ctor returns a fresh message to decode
// into, e.g. func() *pb.Ticket { return &pb.Ticket{} }.
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	if c.new == nil {
		var zero T
		return zero, fmt.Errorf("codec: protobuf: nil constructor: %w", clockwork.ErrInvalidArgument)
	}
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
