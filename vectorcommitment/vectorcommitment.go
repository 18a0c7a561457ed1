// Package vectorcommitment implements a binary vector commitment over the
// RSA accumulator: an infinite bit vector whose 1-bits are committed and
// whose 0-bits are proven absent, both via accumulator membership and
// non-membership witnesses keyed by hash_to_prime(index). Ported from
// original_source/vector-commitment/src/binary.rs.
package vectorcommitment

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/wesolowski-labs/rsa-accumulator/accumulator"
	"github.com/wesolowski-labs/rsa-accumulator/modarith"
	"github.com/wesolowski-labs/rsa-accumulator/proofs"
	"github.com/wesolowski-labs/rsa-accumulator/witnesses"
)

// ErrWitnessKindMismatch is returned by Verify when a witness's asserted
// bit value doesn't match the kind of witness supplied (e.g. a
// NonMembershipWitness offered for bit = 1).
var ErrWitnessKindMismatch = errors.New("vectorcommitment: witness kind does not match asserted bit")

// indexPrime derives the accumulator prime for a bit-vector index via
// hash_to_prime over its little-endian 8-byte encoding, the wire format §6
// calls out for vector-commitment indices.
func indexPrime(index uint64, lambda *big.Int) (*big.Int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], index)
	return modarith.HashToPrime(buf[:], lambda)
}

// GetBitElems derives the accumulator prime for each index in indices, in
// order, via hash_to_prime(little-endian index bytes).
func GetBitElems(indices []uint64, lambda *big.Int) ([]*big.Int, error) {
	out := make([]*big.Int, len(indices))
	for i, idx := range indices {
		p, err := indexPrime(idx, lambda)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Commit accumulates the primes for every index in oneIndices (the set of
// positions whose bit is 1) starting from acc, returning the new state,
// the product of accumulated primes, and a proof of exponentiation
// attesting acc^product ≡ state (mod N).
func Commit(acc *big.Int, oneIndices []uint64, p accumulator.Params) (state, product *big.Int, proof proofs.PoEProof, err error) {
	primes, err := GetBitElems(oneIndices, p.Lambda)
	if err != nil {
		return nil, nil, proofs.PoEProof{}, err
	}
	state, product, proof, err = accumulator.BatchAdd(acc, primes, p)
	return state, product, proof, err
}

// Open returns a membership witness for index if bit is true, or a
// non-membership witness if bit is false, given the pre-opening state
// oldState and the aggregate agg such that oldState^agg ≡ the current
// committed state (mod N) — a precondition this package does not itself
// verify.
func Open(oldState *big.Int, bit bool, index uint64, agg *big.Int, p accumulator.Params) (witnesses.Witness, error) {
	prime, err := indexPrime(index, p.Lambda)
	if err != nil {
		return nil, err
	}
	if bit {
		w, err := witnesses.CreateMemWit(oldState, agg, prime, p.N)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	w, err := witnesses.CreateNonMemWit(oldState, agg, prime, p.N)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Verify checks an opening of index against state, dispatching on the
// witness's concrete kind. It refuses (returns false, ErrWitnessKindMismatch)
// when the witness kind does not match the asserted bit.
func Verify(state *big.Int, bit bool, index uint64, w witnesses.Witness, p accumulator.Params) (bool, error) {
	prime, err := indexPrime(index, p.Lambda)
	if err != nil {
		return false, err
	}

	switch wit := w.(type) {
	case witnesses.MembershipWitness:
		if !bit {
			return false, ErrWitnessKindMismatch
		}
		return witnesses.VerifyMemWit(state, wit, prime, p.N), nil
	case witnesses.NonMembershipWitness:
		if bit {
			return false, ErrWitnessKindMismatch
		}
		return witnesses.VerifyNonMemWit(state, wit, prime, p.N, accumulator.Generator()), nil
	default:
		return false, ErrWitnessKindMismatch
	}
}

// splitByBit separates indices into the primes of its one-bits and the
// primes of its zero-bits.
func splitByBit(bits map[uint64]bool, lambda *big.Int) (onePrimes, zeroPrimes []*big.Int, err error) {
	for idx, set := range bits {
		prime, err := indexPrime(idx, lambda)
		if err != nil {
			return nil, nil, err
		}
		if set {
			onePrimes = append(onePrimes, prime)
		} else {
			zeroPrimes = append(zeroPrimes, prime)
		}
	}
	return onePrimes, zeroPrimes, nil
}

// BatchOpen opens every index in bits at once, returning a single
// membership witness covering all of the batch's one-bits and a single
// non-membership witness covering all of its zero-bits.
func BatchOpen(oldState, agg *big.Int, bits map[uint64]bool, p accumulator.Params) (witnesses.MembershipWitness, witnesses.NonMembershipWitness, error) {
	onePrimes, zeroPrimes, err := splitByBit(bits, p.Lambda)
	if err != nil {
		return witnesses.MembershipWitness{}, witnesses.NonMembershipWitness{}, err
	}

	p1 := modarith.PrimeProduct(onePrimes)
	p0 := modarith.PrimeProduct(zeroPrimes)

	memWit, err := witnesses.CreateMemWit(oldState, agg, p1, p.N)
	if err != nil {
		return witnesses.MembershipWitness{}, witnesses.NonMembershipWitness{}, err
	}
	nonMemWit, err := witnesses.CreateNonMemWit(oldState, agg, p0, p.N)
	if err != nil {
		return witnesses.MembershipWitness{}, witnesses.NonMembershipWitness{}, err
	}
	return memWit, nonMemWit, nil
}

// BatchVerify checks a BatchOpen opening against state.
func BatchVerify(state *big.Int, bits map[uint64]bool, p accumulator.Params, memWit witnesses.MembershipWitness, nonMemWit witnesses.NonMembershipWitness) (bool, error) {
	onePrimes, zeroPrimes, err := splitByBit(bits, p.Lambda)
	if err != nil {
		return false, err
	}

	p1 := modarith.PrimeProduct(onePrimes)
	p0 := modarith.PrimeProduct(zeroPrimes)

	if !witnesses.VerifyMemWit(state, memWit, p1, p.N) {
		return false, nil
	}
	if !witnesses.VerifyNonMemWit(state, nonMemWit, p0, p.N, accumulator.Generator()) {
		return false, nil
	}
	return true, nil
}

// Update transitions state to reflect the new bit values in bits (indices
// whose bit is true are added, indices whose bit is false are removed),
// given that oldState^agg ≡ state (mod N) before the update.
func Update(state, oldState, agg *big.Int, bits map[uint64]bool, p accumulator.Params) (*big.Int, error) {
	onePrimes, zeroPrimes, err := splitByBit(bits, p.Lambda)
	if err != nil {
		return nil, err
	}

	p1 := modarith.PrimeProduct(onePrimes)
	p0 := modarith.PrimeProduct(zeroPrimes)

	zeroWit, err := witnesses.CreateMemWit(oldState, agg, p0, p.N)
	if err != nil {
		return nil, err
	}

	afterDelete, ok := accumulator.Delete(state, p0, zeroWit.W, p)
	if !ok {
		return nil, errors.New("vectorcommitment: zero-bit witness does not match state")
	}

	return accumulator.Add(afterDelete, p1, p), nil
}
