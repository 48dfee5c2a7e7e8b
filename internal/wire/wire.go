package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const (
	version   byte = 1
	kindEntry byte = 1

	// magic(4) | ver(1) | kind(1) | issued(8) | uses(4) | vlen(4)
	headerLen = 4 + 1 + 1 + 8 + 4 + 4
)

var (
	ErrCorrupt = errors.New("clockwork: corrupt code entry")
	magic4     = [...]byte{'C', 'W', 'C', 'B'}
)

// Entry is what a codebook stores under a code.
type Entry struct {
	Issued  time.Time
	Uses    uint32 // redemptions allowed
	Payload []byte
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// EncodeEntry frames e as:
//
//	magic(4) | ver(1) | kind(1=entry) | issued(i64 be, unix nanos) | uses(u32 be) | vlen(u32 be) | payload(vlen)
func EncodeEntry(e Entry) []byte {
	var buf bytes.Buffer
	buf.Grow(headerLen + len(e.Payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindEntry)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], uint64(e.Issued.UnixNano()))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], e.Uses)
	buf.Write(u4[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(e.Payload)))
	buf.Write(u4[:])

	buf.Write(e.Payload)
	return buf.Bytes()
}

// DecodeEntry parses b strictly: header fields must match and the payload
// must end exactly at the end of b. Payload aliases b.
func DecodeEntry(b []byte) (Entry, error) {
	if len(b) < headerLen || !hasMagic(b) || b[4] != version || b[5] != kindEntry {
		return Entry{}, ErrCorrupt
	}

	off := 6

	issued := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	uses := binary.BigEndian.Uint32(b[off : off+4])
	off += 4

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off {
		return Entry{}, ErrCorrupt
	}

	return Entry{
		Issued:  time.Unix(0, issued),
		Uses:    uses,
		Payload: b[off : off+vlen],
	}, nil
}
