package mpint

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomInRange(t *testing.T) {
	rng := test_source("random-in-range")
	for i := 0; i < 500; i++ {
		lo := rand_int(t, rng, 150)
		hi := lo.Add(rand_int(t, rng, 150).Abs())
		x, err := RandomInRange(lo, hi, rng)
		require.NoError(t, err)
		require.GreaterOrEqual(t, x.Compare(lo), 0)
		require.LessOrEqual(t, x.Compare(hi), 0)
	}

	// Both bounds are reachable.
	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		x, err := RandomInRange(ValueOf(-2), ValueOf(2), rng)
		require.NoError(t, err)
		seen[x.LongValue()] = true
	}
	require.Len(t, seen, 5)

	x, err := RandomInRange(Ten, Ten, rng)
	require.NoError(t, err)
	require.Same(t, Ten, x)
	_, err = RandomInRange(Ten, Two, rng)
	require.True(t, errors.Is(err, ErrArgument))

	x, err = RandomInRange(Zero, One.ShiftLeft(300), nil)
	require.NoError(t, err)
	require.LessOrEqual(t, x.BitLength(), 301)
}

func TestModOddInverseBridge(t *testing.T) {
	rng := test_source("mod-odd-inverse")
	for i := 0; i < 300; i++ {
		m := rand_modulus(t, rng, 500, true)
		x := rand_int(t, rng, 600)
		if i%5 == 0 {
			// Share a factor with m.
			x = x.Multiply(m.Gcd(ValueOf(3 * 5 * 7 * 11 * 13)))
		}
		bm := to_big(m)
		want := new(big.Int).ModInverse(new(big.Int).Mod(to_big(x), bm), bm)

		z1, err1 := ModOddInverse(m, x)
		z2, err2 := ModOddInverseVar(m, x)
		c1, err3 := ModOddIsCoprime(m, x)
		c2, err4 := ModOddIsCoprimeVar(m, x)
		require.NoError(t, err3)
		require.NoError(t, err4)
		require.Equal(t, want != nil, c1, "m=%v x=%v", m, x)
		require.Equal(t, c1, c2)
		if want == nil {
			require.True(t, errors.Is(err1, ErrNotInvertible))
			require.True(t, errors.Is(err2, ErrNotInvertible))
			continue
		}
		require.NoError(t, err1)
		require.NoError(t, err2)
		require_same(t, want, z1)
		require_same(t, want, z2)
	}

	_, err := ModOddInverse(ValueOf(10), Three)
	require.True(t, errors.Is(err, ErrArgument))
	_, err = ModOddInverseVar(ValueOf(-7), Three)
	require.True(t, errors.Is(err, ErrArgument))
	_, err = ModOddIsCoprime(Zero, Three)
	require.True(t, errors.Is(err, ErrArgument))

	z, err := ModOddInverse(One, Three)
	require.NoError(t, err)
	require.Equal(t, 0, z.Sign())
	ok, err := ModOddIsCoprimeVar(One, Zero)
	require.NoError(t, err)
	require.True(t, ok)

	z, err = ModOddInverse(ValueOf(11), ValueOf(-3))
	require.NoError(t, err)
	require.True(t, z.Equal(ValueOf(7)))
}
