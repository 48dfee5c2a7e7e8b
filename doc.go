// Package clockwork implements Clockwork Base32, an unpadded base-32 encoding
// meant to be read and typed by people.
//
// Alphabet:
//
//	0123456789ABCDEFGHJKMNPQRSTVWXYZ
//
// I, L, O and U never appear in encoded output. Decoding is case-insensitive
// and accepts O/o as 0 and I/i/L/l as 1.
//
// Layout: every 5 input bytes (40 bits) become 8 symbols, most significant
// bit first. A trailing partial group is zero-padded for the shift and the
// output is cut to ceil(n*8/5) symbols. Decode cuts its output to
// len(text)*5/8 bytes, so a single symbol decodes to nothing.
//
//	s := clockwork.Encode([]byte("foobar")) // "CSQPYRK1E8"
//	b, err := clockwork.Decode("csqpyrkle8") // []byte("foobar")
package clockwork
