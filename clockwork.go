package clockwork

import (
	"slices"
	"unicode/utf8"
)

const (
	groupBytes   = 5
	groupSymbols = 8
	invalid      = 0xFF
)

// encodeTab maps a 5-bit value to its symbol; decodeTab maps any accepted
// input byte back to the value (invalid otherwise).
var encodeTab, decodeTab = func() ([32]byte, [256]byte) {
	const (
		symbols = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
		toLower = 'a' - 'A'
	)

	var enc [32]byte
	var dec [256]byte
	for i := range dec {
		dec[i] = invalid
	}

	letter := func(c, v byte) {
		dec[c] = v
		dec[c+toLower] = v
	}

	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		enc[i] = c
		if c > '9' {
			letter(c, byte(i))
			continue
		}
		dec[c] = byte(i)
	}

	// aliases
	letter('O', dec['0'])
	letter('I', dec['1'])
	letter('L', dec['1'])

	return enc, dec
}()

// EncodedLen returns the number of symbols produced for n input bytes.
func EncodedLen(n int) int { return (n*8 + 4) / 5 }

// DecodedLen returns the number of bytes produced for n input symbols.
func DecodedLen(n int) int { return n * 5 / 8 }

// Encode returns the Clockwork Base32 text for data. Empty or nil input
// yields "".
func Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return string(AppendEncode(make([]byte, 0, EncodedLen(len(data))), data))
}

// AppendEncode appends the encoding of src to dst and returns the extended
// buffer.
func AppendEncode(dst, src []byte) []byte {
	dst = slices.Grow(dst, EncodedLen(len(src)))

	var in [groupBytes]byte
	var out [groupSymbols]byte
	for len(src) > 0 {
		n := copy(in[:], src)
		clear(in[n:])
		src = src[n:]

		encodeGroup(&out, &in)
		dst = append(dst, out[:EncodedLen(n)]...)
	}
	return dst
}

func encodeGroup(dst *[groupSymbols]byte, b *[groupBytes]byte) {
	dst[0] = encodeTab[b[0]>>3]
	dst[1] = encodeTab[(b[0]<<2|b[1]>>6)&0x1F]
	dst[2] = encodeTab[(b[1]>>1)&0x1F]
	dst[3] = encodeTab[(b[1]<<4|b[2]>>4)&0x1F]
	dst[4] = encodeTab[(b[2]<<1|b[3]>>7)&0x1F]
	dst[5] = encodeTab[(b[3]>>2)&0x1F]
	dst[6] = encodeTab[(b[3]<<3|b[4]>>5)&0x1F]
	dst[7] = encodeTab[b[4]&0x1F]
}

// Decode returns the bytes represented by text. Lowercase symbols and the
// aliases O, I and L are accepted. Any other character fails with a
// *SymbolError and no output.
func Decode(text string) ([]byte, error) {
	out, err := decode(make([]byte, 0, DecodedLen(len(text))), text)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendDecode appends the decoding of src to dst. On error dst is returned
// unchanged together with a *SymbolError.
func AppendDecode(dst, src []byte) ([]byte, error) {
	return decode(dst, string(src))
}

func decode(dst []byte, src string) ([]byte, error) {
	start := len(dst)
	remaining := DecodedLen(len(src))
	dst = slices.Grow(dst, remaining)

	var in [groupSymbols]byte
	var out [groupBytes]byte
	for off := 0; off < len(src); off += groupSymbols {
		clear(in[:])
		end := min(off+groupSymbols, len(src))
		for i := off; i < end; i++ {
			v := decodeTab[src[i]]
			if v == invalid {
				r, _ := utf8.DecodeRuneInString(src[i:])
				return dst[:start], &SymbolError{Symbol: r, Offset: i}
			}
			in[i-off] = v
		}

		decodeGroup(&out, &in)
		n := min(groupBytes, remaining)
		dst = append(dst, out[:n]...)
		remaining -= n
	}
	return dst, nil
}

func decodeGroup(dst *[groupBytes]byte, x *[groupSymbols]byte) {
	dst[0] = x[0]<<3 | x[1]>>2
	dst[1] = x[1]<<6 | x[2]<<1 | x[3]>>4
	dst[2] = x[3]<<4 | x[4]>>1
	dst[3] = x[4]<<7 | x[5]<<2 | x[6]>>3
	dst[4] = x[6]<<5 | x[7]
}
