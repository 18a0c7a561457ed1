// Package bigint provides the canonical, fixed-width byte encoding that the
// rest of the module uses to turn group elements and exponents into
// Fiat-Shamir challenge inputs. It does not reimplement arithmetic: math/big
// already gives correct, arbitrary-precision signed and unsigned integers,
// and every arithmetic package in this module builds directly on it.
package bigint

import "math/big"

// MinBits is the minimum modulus size the accumulator is designed for.
// Production deployments must supply an N of at least this size;
// accumulator.Setup rejects a shorter N. This package does not generate or
// vet the modulus itself.
const MinBits = 2048

// ByteWidth returns the number of bytes needed to hold any residue modulo n,
// i.e. ceil(bitlen(n)/8). It is used to derive a fixed encoding width from
// the modulus rather than hard-coding one, so the same code works for the
// N = 13 test fixture and a real 2048+-bit modulus alike.
func ByteWidth(n *big.Int) int {
	bits := n.BitLen()
	if bits == 0 {
		return 1
	}
	return (bits + 7) / 8
}

// FixedWidthBytes encodes x as a little-endian byte string of exactly width
// bytes, zero-padded on the high end. It panics if x is negative or does
// not fit in width bytes — both indicate a caller bug (a residue mod N, or
// an exponent bounded by a known width, always fits once the width is
// derived correctly), not a recoverable runtime condition.
func FixedWidthBytes(x *big.Int, width int) []byte {
	if x.Sign() < 0 {
		panic("bigint: FixedWidthBytes called with a negative value")
	}
	raw := x.Bytes() // big-endian
	if len(raw) > width {
		panic("bigint: value does not fit in the requested width")
	}
	out := make([]byte, width)
	for i, b := range raw {
		out[len(raw)-1-i] = b
	}
	return out
}

// FromFixedWidthBytes decodes a little-endian fixed-width encoding produced
// by FixedWidthBytes back into an integer.
func FromFixedWidthBytes(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(be)
}

// EncodeChallenge little-endian-encodes each part at the given fixed width
// and concatenates them in argument order, per the canonical encoding used
// for every hash_to_prime and Fiat-Shamir challenge input in this module.
//
// width must be supplied by the caller — derived from the accumulator
// modulus via ByteWidth, not from the magnitudes of parts themselves.
// Deriving it from parts instead would make the encoding depend on which
// values happen to be hashed in a given call: EncodeChallenge with two
// small parts and EncodeChallenge with three even smaller parts can then
// serialize to the identical byte string, letting a transcript from one
// statement collide with a transcript from an unrelated one. Fixing width
// to the modulus's own byte width closes that off: every challenge
// encoded against a given modulus uses the same width no matter the call.
func EncodeChallenge(width int, parts ...*big.Int) []byte {
	out := make([]byte, 0, len(parts)*width)
	for _, p := range parts {
		out = append(out, FixedWidthBytes(p, width)...)
	}
	return out
}
