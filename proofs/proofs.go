// Package proofs implements Wesolowski-style succinct proofs of
// exponentiation (PoE) and of knowledge of exponentiation (PoKE), using
// Blake2b-256 and the module's canonical fixed-width encoding for the
// Fiat-Shamir challenge. Ported from original_source/accumulator/src/proofs.rs,
// structured the way the teacher structures a Sigma-protocol proof
// (voteproof.SigmaProof): a small result struct plus a free Prove/Verify
// function pair.
package proofs

import (
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/wesolowski-labs/rsa-accumulator/bigint"
	"github.com/wesolowski-labs/rsa-accumulator/modarith"
)

// PoEProof is a Wesolowski proof of exponentiation: a single group element
// Q. The public tuple (u, x, w) whose hash produces the challenge prime is
// not stored in the proof; VerifyPoE takes it as separate arguments.
type PoEProof struct {
	Q *big.Int
}

// challengePrime derives the Fiat-Shamir challenge prime for a PoE/PoKE
// instance from the canonical encoding of its public inputs, fixed-width
// encoded at modulus's own byte width so the transcript can't be reshaped
// by varying the number or magnitude of parts across calls.
func challengePrime(modulus, lambda *big.Int, parts ...*big.Int) (*big.Int, error) {
	width := bigint.ByteWidth(modulus)
	return modarith.HashToPrime(bigint.EncodeChallenge(width, parts...), lambda)
}

// PoE proves that u^x = w (mod modulus). lambdaPoE bounds the space the
// challenge prime is drawn from; per the spec's resolved open question it
// should exceed the accumulator's own LAMBDA by a security margin so the
// verifier can't predict or influence which prime will be used.
func PoE(u, x, w, modulus, lambdaPoE *big.Int) (PoEProof, error) {
	l, err := challengePrime(modulus, lambdaPoE, u, x, w)
	if err != nil {
		return PoEProof{}, err
	}
	q := new(big.Int).Div(x, l)
	Q := modarith.ModExp(u, q, modulus)
	return PoEProof{Q: Q}, nil
}

// VerifyPoE checks a PoE proof that u^x = w (mod modulus).
func VerifyPoE(u, x, w, modulus, lambdaPoE *big.Int, proof PoEProof) (bool, error) {
	l, err := challengePrime(modulus, lambdaPoE, u, x, w)
	if err != nil {
		return false, err
	}
	r := new(big.Int).Mod(x, l)
	lhs := modarith.MulMod(
		modarith.ModExp(proof.Q, l, modulus),
		modarith.ModExp(u, r, modulus),
		modulus,
	)
	return lhs.Cmp(w) == 0, nil
}

// PoKEProof is a Wesolowski proof of knowledge of exponentiation: the
// exponent commitment z = 2^x, the PoE-style quotient Q, and the residue r
// = x mod l.
type PoKEProof struct {
	Z *big.Int
	Q *big.Int
	R *big.Int
}

// alphaChallenge derives the second Fiat-Shamir challenge (the base-mixing
// coefficient) for PoKE, reduced to the width of a single Blake2b-256
// digest, per the spec's "reduced to a suitable width". Its inputs are
// fixed-width encoded at modulus's own byte width, for the same reason
// challengePrime is.
func alphaChallenge(modulus, u, w, z, l *big.Int) *big.Int {
	width := bigint.ByteWidth(modulus)
	digest := blake2b.Sum256(bigint.EncodeChallenge(width, u, w, z, l))
	return new(big.Int).SetBytes(digest[:])
}

// PoKE proves knowledge of x such that u^x = w (mod modulus), additionally
// committing to x via the fixed base 2 (a generator of unknown order).
func PoKE(u, x, w, modulus, lambdaPoE *big.Int) (PoKEProof, error) {
	two := big.NewInt(2)
	z := modarith.ModExp(two, x, modulus)

	l, err := challengePrime(modulus, lambdaPoE, u, w, z)
	if err != nil {
		return PoKEProof{}, err
	}
	alpha := alphaChallenge(modulus, u, w, z, l)

	q := new(big.Int).Div(x, l)
	r := new(big.Int).Mod(x, l)

	base := modarith.MulMod(u, modarith.ModExp(two, alpha, modulus), modulus)
	Q := modarith.ModExp(base, q, modulus)

	return PoKEProof{Z: z, Q: Q, R: r}, nil
}

// VerifyPoKE checks a PoKE proof that u^x = w (mod modulus) for some
// (unrevealed) x.
func VerifyPoKE(u, w, modulus, lambdaPoE *big.Int, proof PoKEProof) (bool, error) {
	l, err := challengePrime(modulus, lambdaPoE, u, w, proof.Z)
	if err != nil {
		return false, err
	}
	alpha := alphaChallenge(modulus, u, w, proof.Z, l)

	two := big.NewInt(2)
	base := modarith.MulMod(u, modarith.ModExp(two, alpha, modulus), modulus)

	lhs := modarith.MulMod(
		modarith.ModExp(proof.Q, l, modulus),
		modarith.ModExp(base, proof.R, modulus),
		modulus,
	)
	want := modarith.MulMod(modarith.ModExp(proof.Z, alpha, modulus), w, modulus)
	return lhs.Cmp(want) == 0, nil
}
