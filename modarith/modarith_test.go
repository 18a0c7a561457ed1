package modarith

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b(i int64) *big.Int { return big.NewInt(i) }

func TestMulMod(t *testing.T) {
	assert.Equal(t, b(12), MulMod(b(121), b(12314), b(13)))
	assert.Equal(t, b(19), MulMod(b(128), b(23), b(75)))
}

func TestModExp(t *testing.T) {
	assert.Equal(t, b(11), ModExp(b(2), b(7), b(13)))
	assert.Equal(t, b(5), ModExp(b(7), b(15), b(13)))
}

func TestModExpBoundaries(t *testing.T) {
	assert.Equal(t, b(1), ModExp(b(9), b(0), b(13)))
	assert.Equal(t, b(9), ModExp(b(9), b(1), b(13)))
	assert.Equal(t, b(0), ModExp(b(9), b(5), b(1)))
}

func TestExtendedGCD(t *testing.T) {
	gcd, s, tt := ExtendedGCD(b(180), b(150))
	assert.Equal(t, b(30), gcd)
	assert.Equal(t, b(1), s)
	assert.Equal(t, b(-1), tt)

	gcd, s, tt = ExtendedGCD(b(13), b(17))
	assert.Equal(t, b(1), gcd)
	assert.Equal(t, b(4), s)
	assert.Equal(t, b(-3), tt)
}

func TestBezout(t *testing.T) {
	_, _, err := Bezout(b(4), b(10))
	assert.ErrorIs(t, err, ErrNotCoprime)

	s, tt, err := Bezout(b(3434), b(2423))
	require.NoError(t, err)
	assert.Equal(t, b(-997), s)
	assert.Equal(t, b(1413), tt)
}

func TestModInverse(t *testing.T) {
	assert.Equal(t, b(3), ModInverse(b(9), b(13)))
	assert.Equal(t, b(11), ModInverse(b(6), b(13)))
}

func TestShamirTrick(t *testing.T) {
	got, err := ShamirTrick(b(11), b(6), b(7), b(5), b(13))
	require.NoError(t, err)
	assert.Equal(t, b(7), got)

	_, err = ShamirTrick(b(12), b(7), b(7), b(11), b(13))
	assert.Error(t, err)
}

func TestShamirTrickRoundTrip(t *testing.T) {
	// r_x^x == r_y^y mod 13 should yield r_xy such that r_xy^(xy) matches too.
	modulus := b(13)
	x, y := b(7), b(5)
	a := ModExp(b(2), big.NewInt(0).Mul(x, y), modulus) // common value "A"

	rx := ModExp(b(2), y, modulus) // x-th root of A: rx^x = 2^(xy) = A
	ry := ModExp(b(2), x, modulus) // y-th root of A: ry^y = 2^(xy) = A

	combined, err := ShamirTrick(rx, ry, x, y, modulus)
	require.NoError(t, err)
	assert.Equal(t, a, ModExp(combined, new(big.Int).Mul(x, y), modulus))
}

func TestMillerRabinPrimes(t *testing.T) {
	for _, n := range []int64{5, 7, 241, 7919, 48131, 76463, 4222234741} {
		assert.Truef(t, MillerRabin(big.NewInt(n)), "%d should be prime", n)
	}
}

func TestMillerRabinComposites(t *testing.T) {
	for _, n := range []int64{21, 87, 155, 9167, 102398, 801435} {
		assert.Falsef(t, MillerRabin(big.NewInt(n)), "%d should be composite", n)
	}
}

func TestMillerRabinSmallEdgeCases(t *testing.T) {
	assert.False(t, MillerRabin(b(0)))
	assert.False(t, MillerRabin(b(1)))
	assert.True(t, MillerRabin(b(2)))
	assert.True(t, MillerRabin(b(3)))
	assert.False(t, MillerRabin(b(4)))
}

func TestHashToPrimeDeterministic(t *testing.T) {
	lambda := new(big.Int).Lsh(big.NewInt(1), 128)
	data := []byte("hash-to-prime input")

	p1, err := HashToPrime(data, lambda)
	require.NoError(t, err)
	p2, err := HashToPrime(data, lambda)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.True(t, MillerRabin(p1))
}

func TestHashToPrimeVariesWithInput(t *testing.T) {
	lambda := new(big.Int).Lsh(big.NewInt(1), 128)
	p1, err := HashToPrime([]byte("a"), lambda)
	require.NoError(t, err)
	p2, err := HashToPrime([]byte("b"), lambda)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}

func TestPrimeProduct(t *testing.T) {
	got := PrimeProduct([]*big.Int{b(3), b(5), b(7), b(11)})
	assert.Equal(t, b(3*5*7*11), got)
}

func TestPrimeProductEmpty(t *testing.T) {
	assert.Equal(t, b(1), PrimeProduct(nil))
}

func TestRootFactor(t *testing.T) {
	modulus := b(13)
	xs := []*big.Int{b(3), b(5), b(7), b(11)}
	witnesses := RootFactor(b(2), xs, modulus)

	want := []*big.Int{b(2), b(8), b(5), b(5)}
	require.Len(t, witnesses, len(want))
	for i := range want {
		assert.Equalf(t, want[i], witnesses[i], "witness %d", i)
	}

	// Every witness verifies: witness_i ^ x_i == g^(product of all xs) mod N.
	fullProduct := PrimeProduct(xs)
	expectedState := ModExp(b(2), fullProduct, modulus)
	for i, x := range xs {
		assert.Equal(t, expectedState, ModExp(witnesses[i], x, modulus))
	}
}

func TestRootFactorSingleton(t *testing.T) {
	got := RootFactor(b(2), []*big.Int{b(9)}, b(13))
	require.Len(t, got, 1)
	assert.Equal(t, b(2), got[0])
}

func TestBinaryDigitsRoundTrip(t *testing.T) {
	x := big.NewInt(6)
	digits := ToBinaryDigits(x, 8)
	assert.Equal(t, []bool{false, true, true, false, false, false, false, false}, digits)
	assert.Equal(t, x, FromBinaryDigits(digits))
}
