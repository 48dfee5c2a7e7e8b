// Package codebook issues and redeems short Clockwork Base32 codes (gift
// cards, invites, pairing codes) bound to a value V.
//
// Codes are random bytes rendered as Clockwork Base32 and shown in groups:
//
//	7K3M-Q9ZD-1VXR-8T4B
//
// Redemption is forgiving: case, spaces, dashes and underscores are ignored,
// O is read as 0 and I/L as 1, so "7k3m q9zd ivxr 8t4b" is the same code.
// A code with the wrong number of symbols is ErrMalformedCode, never a
// silent miss.
//
// Components:
//   - Provider: byte store with TTL holding one framed entry per code.
//   - Codec[V]: (de)serializes V <-> []byte.
//   - Counter: redemption count per code. Local by default, Redis for
//     multi-replica deployments.
//
// Keys:
//
//	code:<ns>:<canonical code>
package codebook
