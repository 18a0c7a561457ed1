package proofs

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b(i int64) *big.Int { return big.NewInt(i) }

// lambdaPoE mirrors a margin well above any exponent used in these small
// test groups, so the challenge prime space is never artificially
// constrained by the test's tiny modulus.
var lambdaPoE = new(big.Int).Lsh(big.NewInt(1), 128)

// pokeModulus is used wherever a test threads PoKE's challenge prime l
// back through alphaChallenge's fixed-width encoding: l is drawn from a
// space bounded by lambdaPoE (128 bits here), so unlike PoE's tiny N = 13
// fixture, PoKE's modulus needs enough byte-width headroom to hold l
// itself, not just the small in-group residues u/w/z.
var pokeModulus, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe", 16,
)

func TestPoEValid(t *testing.T) {
	modulus := b(13)
	u, x := b(2), b(6)
	w := new(big.Int).Exp(u, x, modulus) // 2^6 mod 13 = 12

	proof, err := PoE(u, x, w, modulus, lambdaPoE)
	require.NoError(t, err)

	ok, err := VerifyPoE(u, x, w, modulus, lambdaPoE, proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPoERejectsWrongWitness(t *testing.T) {
	modulus := b(13)
	u, x := b(2), b(6)
	w := new(big.Int).Exp(u, x, modulus)

	proof, err := PoE(u, x, w, modulus, lambdaPoE)
	require.NoError(t, err)

	forged := PoEProof{Q: new(big.Int).Add(proof.Q, big.NewInt(1))}
	ok, err := VerifyPoE(u, x, w, modulus, lambdaPoE, forged)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPoERejectsWrongTarget(t *testing.T) {
	modulus := b(13)
	u, x := b(2), b(6)
	w := new(big.Int).Exp(u, x, modulus)

	proof, err := PoE(u, x, w, modulus, lambdaPoE)
	require.NoError(t, err)

	wrongW := new(big.Int).Mod(new(big.Int).Add(w, big.NewInt(1)), modulus)
	ok, err := VerifyPoE(u, x, wrongW, modulus, lambdaPoE, proof)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPoEWithLargeExponent(t *testing.T) {
	// The challenge encoding is fixed-width at the modulus's own byte
	// width, so unlike the other cases in this file this one needs a
	// modulus wide enough to actually hold x, not just a tiny one.
	modulus := new(big.Int).SetUint64(18446744073709551557) // largest prime below 2^64
	u := b(2)
	x := big.NewInt(0).Mul(b(9999999937), b(7)) // larger than the other test exponents, well within modulus's width
	w := new(big.Int).Exp(u, x, modulus)

	proof, err := PoE(u, x, w, modulus, lambdaPoE)
	require.NoError(t, err)

	ok, err := VerifyPoE(u, x, w, modulus, lambdaPoE, proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPoKEValid(t *testing.T) {
	modulus := pokeModulus
	u, x := b(2), b(11)
	w := new(big.Int).Exp(u, x, modulus)

	proof, err := PoKE(u, x, w, modulus, lambdaPoE)
	require.NoError(t, err)

	ok, err := VerifyPoKE(u, w, modulus, lambdaPoE, proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPoKERejectsWrongTarget(t *testing.T) {
	modulus := pokeModulus
	u, x := b(2), b(11)
	w := new(big.Int).Exp(u, x, modulus)

	proof, err := PoKE(u, x, w, modulus, lambdaPoE)
	require.NoError(t, err)

	wrongW := new(big.Int).Mod(new(big.Int).Add(w, big.NewInt(1)), modulus)
	ok, err := VerifyPoKE(u, wrongW, modulus, lambdaPoE, proof)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPoKERejectsForgedZ(t *testing.T) {
	modulus := pokeModulus
	u, x := b(2), b(11)
	w := new(big.Int).Exp(u, x, modulus)

	proof, err := PoKE(u, x, w, modulus, lambdaPoE)
	require.NoError(t, err)

	forged := proof
	forged.Z = new(big.Int).Mod(new(big.Int).Add(proof.Z, big.NewInt(1)), modulus)
	ok, err := VerifyPoKE(u, w, modulus, lambdaPoE, forged)
	require.NoError(t, err)
	assert.False(t, ok)
}
