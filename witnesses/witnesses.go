// Package witnesses implements membership and non-membership witnesses for
// the RSA accumulator: their creation, verification, update under batching,
// and aggregation. Ported from original_source/accumulator/src/witnesses.rs.
//
// Go has no native tagged union, so the Rust `enum Witness { MemWit,
// NonMemWit }` becomes an interface (Witness) implemented by two concrete
// structs, each reporting its own Kind() — the same shape the teacher uses
// for its group.Element interface with concrete per-curve element types.
package witnesses

import (
	"errors"
	"math/big"

	"github.com/wesolowski-labs/rsa-accumulator/modarith"
	"github.com/wesolowski-labs/rsa-accumulator/proofs"
)

// ErrNotInAggregate is returned by CreateMemWit when the claimed element
// does not divide the aggregate it is supposedly a factor of.
var ErrNotInAggregate = errors.New("witnesses: element does not divide aggregate")

// Kind discriminates the two Witness implementations.
type Kind int

const (
	KindMembership Kind = iota
	KindNonMembership
)

// Witness is implemented by MembershipWitness and NonMembershipWitness.
type Witness interface {
	Kind() Kind
}

// MembershipWitness attests that an element x was accumulated: W^x ≡ state
// (mod N).
type MembershipWitness struct {
	W *big.Int
}

func (MembershipWitness) Kind() Kind { return KindMembership }

// NonMembershipWitness attests that x was *not* accumulated via the Bézout
// pair (A, B) such that state^A · B^x ≡ g (mod N) for the accumulator's
// generator g.
type NonMembershipWitness struct {
	A *big.Int
	B *big.Int
}

func (NonMembershipWitness) Kind() Kind { return KindNonMembership }

// CreateMemWit builds a membership witness for x given the old state and
// the aggregate (product of accumulated primes) it was raised to. It
// requires x | agg, returning ErrNotInAggregate otherwise.
func CreateMemWit(oldState, agg, x, modulus *big.Int) (MembershipWitness, error) {
	quotient, rem := new(big.Int).QuoRem(agg, x, new(big.Int))
	if rem.Sign() != 0 {
		return MembershipWitness{}, ErrNotInAggregate
	}
	return MembershipWitness{W: modarith.ModExp(oldState, quotient, modulus)}, nil
}

// VerifyMemWit checks w.W^x ≡ state (mod N).
func VerifyMemWit(state *big.Int, w MembershipWitness, x, modulus *big.Int) bool {
	return modarith.ModExp(w.W, x, modulus).Cmp(state) == 0
}

// UpdateMemWit rolls a membership witness for x forward across a batch
// that accumulated adds (product of newly added elements) and dels
// (product of newly deleted elements) since the witness was last current,
// landing the witness at newState. adds and dels must exclude x itself.
func UpdateMemWit(w MembershipWitness, x, newState, adds, dels, modulus *big.Int) (MembershipWitness, error) {
	rolled := modarith.ModExp(w.W, adds, modulus)
	combined, err := modarith.ShamirTrick(rolled, newState, x, dels, modulus)
	if err != nil {
		return MembershipWitness{}, err
	}
	return MembershipWitness{W: combined}, nil
}

// AggMemWit combines two membership witnesses for coprime x and y into a
// single witness for x*y, together with a proof of exponentiation
// attesting that raising the combined witness to x*y recovers state.
func AggMemWit(state *big.Int, wx, wy MembershipWitness, x, y, modulus, lambdaPoE *big.Int) (MembershipWitness, proofs.PoEProof, error) {
	combined, err := modarith.ShamirTrick(wx.W, wy.W, x, y, modulus)
	if err != nil {
		return MembershipWitness{}, proofs.PoEProof{}, err
	}
	agg := new(big.Int).Mul(x, y)
	proof, err := proofs.PoE(combined, agg, state, modulus, lambdaPoE)
	if err != nil {
		return MembershipWitness{}, proofs.PoEProof{}, err
	}
	return MembershipWitness{W: combined}, proof, nil
}

// VerifyAggMemWit checks an aggregated membership witness's proof of
// exponentiation: that w.W^agg ≡ state (mod N).
func VerifyAggMemWit(state *big.Int, agg *big.Int, w MembershipWitness, proof proofs.PoEProof, modulus, lambdaPoE *big.Int) (bool, error) {
	return proofs.VerifyPoE(w.W, agg, state, modulus, lambdaPoE, proof)
}

// CreateAllMemWit derives the membership witness for every element of elems
// simultaneously, given they are all freshly accumulated starting from
// oldState, in O(n log n) modular exponentiations via RootFactor.
func CreateAllMemWit(oldState *big.Int, elems []*big.Int, modulus *big.Int) []MembershipWitness {
	roots := modarith.RootFactor(oldState, elems, modulus)
	out := make([]MembershipWitness, len(roots))
	for i, r := range roots {
		out[i] = MembershipWitness{W: r}
	}
	return out
}

// CreateNonMemWit builds a non-membership witness for x given the old state
// and the aggregate it was raised to. It requires gcd(x, agg) = 1.
func CreateNonMemWit(oldState, agg, x, modulus *big.Int) (NonMembershipWitness, error) {
	s, t, err := modarith.Bezout(agg, x)
	if err != nil {
		return NonMembershipWitness{}, err
	}

	base := oldState
	if t.Sign() < 0 {
		base = modarith.ModInverse(oldState, modulus)
		t = new(big.Int).Neg(t)
	}
	B := modarith.ModExp(base, t, modulus)
	return NonMembershipWitness{A: s, B: B}, nil
}

// VerifyNonMemWit checks state^A · B^x ≡ generator (mod N). A negative A is
// handled by inverting state before exponentiation.
func VerifyNonMemWit(state *big.Int, w NonMembershipWitness, x, modulus, generator *big.Int) bool {
	base := state
	a := w.A
	if a.Sign() < 0 {
		base = modarith.ModInverse(state, modulus)
		a = new(big.Int).Neg(a)
	}
	lhs := modarith.MulMod(
		modarith.ModExp(base, a, modulus),
		modarith.ModExp(w.B, x, modulus),
		modulus,
	)
	return lhs.Cmp(new(big.Int).Mod(generator, modulus)) == 0
}
