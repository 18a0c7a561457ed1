// Package accumulator implements the RSA accumulator façade: Setup,
// the fixed generator, and the add/delete/batch-add/batch-delete
// operations that mutate accumulator state. Ported from
// original_source/accumulator/src/lib.rs and
// original_source/runtime/src/stateless.rs's Module::add/Module::delete.
package accumulator

import (
	"errors"
	"math/big"

	"github.com/wesolowski-labs/rsa-accumulator/bigint"
	"github.com/wesolowski-labs/rsa-accumulator/modarith"
	"github.com/wesolowski-labs/rsa-accumulator/proofs"
)

// ErrInvalidModulus is returned by Setup when N is not odd or does not meet
// the minimum width the library assumes for RSA-modulus security.
var ErrInvalidModulus = errors.New("accumulator: invalid modulus")

// ErrInvalidLambda is returned by Setup when Lambda is not large enough to
// bound a nontrivial prime space.
var ErrInvalidLambda = errors.New("accumulator: lambda must exceed 1")

// defaultSecurityMargin is the number of bits Lambda is shifted left by to
// derive LambdaPoE (LambdaPoE = Lambda · 2^margin), the bound
// the Fiat-Shamir challenge prime is drawn from: it must comfortably
// exceed the accumulator's own prime bound so a verifier cannot predict or
// influence which challenge prime is used.
const defaultSecurityMargin = 64

// Params bundles the two scalars a host runtime supplies: the RSA modulus N
// and the accumulated-prime bound Lambda, plus the derived LambdaPoE used
// for proof challenges.
type Params struct {
	N         *big.Int
	Lambda    *big.Int
	LambdaPoE *big.Int
}

// Setup validates (n, lambda) and derives Params, including LambdaPoE =
// lambda · 2^securityMargin. It mirrors the teacher's
// validate-then-return-error Setup shape rather than panicking, since a
// caller-supplied modulus failing validation is a recoverable
// configuration error, not a programmer bug. Pass securityMargin = 0 to
// use the library default of 64 bits.
func Setup(n, lambda *big.Int, securityMargin uint) (Params, error) {
	if n == nil || n.Sign() <= 0 || n.Bit(0) == 0 {
		return Params{}, ErrInvalidModulus
	}
	if n.BitLen() < bigint.MinBits {
		return Params{}, ErrInvalidModulus
	}
	if lambda == nil || lambda.Cmp(big.NewInt(1)) <= 0 {
		return Params{}, ErrInvalidLambda
	}
	if securityMargin == 0 {
		securityMargin = defaultSecurityMargin
	}
	lambdaPoE := new(big.Int).Lsh(lambda, securityMargin)

	return Params{
		N:         new(big.Int).Set(n),
		Lambda:    new(big.Int).Set(lambda),
		LambdaPoE: lambdaPoE,
	}, nil
}

// Generator returns the fixed base the accumulator starts an empty set
// from, and that PoKE commits exponents against: 2, conventionally.
func Generator() *big.Int {
	return big.NewInt(2)
}

// Add accumulates x into state: state' = state^x mod N.
func Add(state, x *big.Int, p Params) *big.Int {
	return modarith.ModExp(state, x, p.N)
}

// Delete removes x from state given a membership witness w, returning the
// new state (which is exactly w) iff w^x ≡ state (mod N).
func Delete(state, x, w *big.Int, p Params) (*big.Int, bool) {
	if modarith.ModExp(w, x, p.N).Cmp(state) != 0 {
		return nil, false
	}
	return new(big.Int).Set(w), true
}

// BatchAdd folds a batch of elements into state in one exponentiation,
// returning the new state, the aggregate (product of xs), and a proof of
// exponentiation attesting state^agg ≡ state' (mod N). An empty batch
// returns the original state unchanged with agg = 1 and no proof.
func BatchAdd(state *big.Int, xs []*big.Int, p Params) (newState, agg *big.Int, proof proofs.PoEProof, err error) {
	agg = modarith.PrimeProduct(xs)
	newState = modarith.ModExp(state, agg, p.N)
	if len(xs) == 0 {
		return newState, agg, proofs.PoEProof{}, nil
	}
	proof, err = proofs.PoE(state, agg, newState, p.N, p.LambdaPoE)
	return newState, agg, proof, err
}

// BatchDeletion pairs a deleted element with its membership witness, the
// unit BatchDelete consumes.
type BatchDeletion struct {
	X *big.Int
	W *big.Int
}

// BatchDelete folds a batch of (element, witness) deletions via the Shamir
// trick, returning the new state (the combined root), the aggregate
// (product of deleted elements), and a proof of exponentiation attesting
// that raising the new state to agg recovers the original state. The
// deletion list must be non-empty.
func BatchDelete(state *big.Int, deletions []BatchDeletion, p Params) (newState, agg *big.Int, proof proofs.PoEProof, err error) {
	if len(deletions) == 0 {
		return nil, nil, proofs.PoEProof{}, errors.New("accumulator: batch delete requires at least one element")
	}

	agg = new(big.Int).Set(deletions[0].X)
	combined := new(big.Int).Set(deletions[0].W)
	for _, d := range deletions[1:] {
		combined, err = modarith.ShamirTrick(combined, d.W, agg, d.X, p.N)
		if err != nil {
			return nil, nil, proofs.PoEProof{}, err
		}
		agg = new(big.Int).Mul(agg, d.X)
	}

	proof, err = proofs.PoE(combined, agg, state, p.N, p.LambdaPoE)
	if err != nil {
		return nil, nil, proofs.PoEProof{}, err
	}
	return combined, agg, proof, nil
}
