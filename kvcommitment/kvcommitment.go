// Package kvcommitment layers a key/value commitment on top of the binary
// vector commitment: a key's value (an integer in [0, 2^Width)) is stored
// as the bit slice of its little-endian binary at bit offsets
// [key*Width, key*Width+Width). Ported from
// original_source/vector-commitment/src/vc.rs, generalizing its hard-coded
// u8 value type to an arbitrary configured bit width.
package kvcommitment

import (
	"math/big"
	"sort"

	"github.com/wesolowski-labs/rsa-accumulator/accumulator"
	"github.com/wesolowski-labs/rsa-accumulator/modarith"
	"github.com/wesolowski-labs/rsa-accumulator/proofs"
	"github.com/wesolowski-labs/rsa-accumulator/vectorcommitment"
	"github.com/wesolowski-labs/rsa-accumulator/witnesses"
)

// Params configures the bit width each value occupies in the underlying
// vector commitment. The original this is ported from hard-codes Width = 8
// (a byte-valued VC); this type lifts that to any width the caller needs.
type Params struct {
	Width uint
}

// ToBinary decomposes value into its little-endian bit digits over
// p.Width bits.
func (p Params) ToBinary(value *big.Int) []bool {
	return modarith.ToBinaryDigits(value, int(p.Width))
}

// bitsForKey maps a single (key, value) pair to the set of absolute
// bit-vector indices it occupies, keyed by their target bit value.
func (p Params) bitsForKey(key uint64, value *big.Int) map[uint64]bool {
	digits := p.ToBinary(value)
	base := key * uint64(p.Width)
	out := make(map[uint64]bool, len(digits))
	for j, d := range digits {
		out[base+uint64(j)] = d
	}
	return out
}

// ConvertKeyValue maps parallel keys/values slices to the concatenated bit
// vector they describe, as an index→bit-value map suitable for the
// vectorcommitment package's batch operations.
func (p Params) ConvertKeyValue(keys []uint64, values []*big.Int) map[uint64]bool {
	out := make(map[uint64]bool, len(keys)*int(p.Width))
	for i, key := range keys {
		for idx, bit := range p.bitsForKey(key, values[i]) {
			out[idx] = bit
		}
	}
	return out
}

// oneIndices returns the sorted absolute indices in bits whose value is
// true, for deterministic downstream encoding.
func oneIndices(bits map[uint64]bool) []uint64 {
	var out []uint64
	for idx, set := range bits {
		if set {
			out = append(out, idx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Commit accumulates every key/value pair's one-bits into acc.
func Commit(acc *big.Int, keys []uint64, values []*big.Int, p Params, ap accumulator.Params) (state, product *big.Int, proof proofs.PoEProof, err error) {
	bits := p.ConvertKeyValue(keys, values)
	return vectorcommitment.Commit(acc, oneIndices(bits), ap)
}

// OpenAtKey opens every bit of key's value window at once, returning a
// combined membership witness for its one-bits and a combined
// non-membership witness for its zero-bits.
func OpenAtKey(oldState, agg *big.Int, key uint64, value *big.Int, p Params, ap accumulator.Params) (witnesses.MembershipWitness, witnesses.NonMembershipWitness, error) {
	return vectorcommitment.BatchOpen(oldState, agg, p.bitsForKey(key, value), ap)
}

// VerifyAtKey checks an OpenAtKey opening against state.
func VerifyAtKey(state *big.Int, key uint64, value *big.Int, p Params, ap accumulator.Params, memWit witnesses.MembershipWitness, nonMemWit witnesses.NonMembershipWitness) (bool, error) {
	return vectorcommitment.BatchVerify(state, p.bitsForKey(key, value), ap, memWit, nonMemWit)
}

// Update transitions state so that key's value window reflects newValue,
// given that oldState^agg ≡ state (mod N) before the update. A bit counts
// as currently set when its index prime divides agg; only bits whose value
// changes are passed on to the vector commitment.
func Update(state, oldState, agg *big.Int, key uint64, newValue *big.Int, p Params, ap accumulator.Params) (*big.Int, error) {
	changes := make(map[uint64]bool)
	for idx, bit := range p.bitsForKey(key, newValue) {
		elems, err := vectorcommitment.GetBitElems([]uint64{idx}, ap.Lambda)
		if err != nil {
			return nil, err
		}
		current := new(big.Int).Mod(agg, elems[0]).Sign() == 0
		if current != bit {
			changes[idx] = bit
		}
	}
	return vectorcommitment.Update(state, oldState, agg, changes, ap)
}

// GetKeyValueElem returns the accumulator prime for every bit position in
// key's value window, in ascending index order.
func GetKeyValueElem(key uint64, value *big.Int, p Params, lambda *big.Int) ([]*big.Int, error) {
	bits := p.bitsForKey(key, value)
	indices := make([]uint64, 0, len(bits))
	for idx := range bits {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return vectorcommitment.GetBitElems(indices, lambda)
}
