package mpint

import (
	"fmt"
	"io"

	"github.com/benjivesterby/go-mpint/raw"
)

// Helpers over BigInteger values, including bridges to the word-level
// modular inversion of package raw.

// Maximum number of draws in RandomInRange; each draw succeeds with
// probability above 1/2.
const random_in_range_attempts = 1000

// Get a uniformly random value in [lo, hi] (both included). Fails with
// ErrArgument if lo > hi. A nil rng means crypto/rand.Reader.
func RandomInRange(lo *BigInteger, hi *BigInteger, rng io.Reader) (*BigInteger, error) {
	cmp := lo.Compare(hi)
	if cmp > 0 {
		return nil, fmt.Errorf("%w: lower bound exceeds upper bound", ErrArgument)
	}
	if cmp == 0 {
		return lo, nil
	}
	span := hi.Subtract(lo)
	nbits := span.BitLength()
	for i := 0; i < random_in_range_attempts; i++ {
		x, err := NewRandom(nbits, rng)
		if err != nil {
			return nil, err
		}
		if x.Compare(span) <= 0 {
			return x.Add(lo), nil
		}
	}
	return nil, fmt.Errorf("%w: RandomInRange", ErrIterationLimit)
}

// Words of m (odd, positive) and of x mod m, over the bit length of m.
func mod_odd_words(m *BigInteger, x *BigInteger) ([]uint32, []uint32, error) {
	if m.sign < 1 {
		return nil, nil, fmt.Errorf("%w: modulus must be positive", ErrArgument)
	}
	if !m.TestBit(0) {
		return nil, nil, fmt.Errorf("%w: modulus must be odd", ErrArgument)
	}
	if x.sign < 0 || x.Compare(m) >= 0 {
		x, _ = x.Mod(m)
	}
	bits := m.BitLength()
	mw, err := m.ToUint32ArrayLE(bits)
	if err != nil {
		return nil, nil, err
	}
	xw, err := x.ToUint32ArrayLE(bits)
	if err != nil {
		return nil, nil, err
	}
	return mw, xw, nil
}

// Get x^-1 mod m for an odd modulus m. Fails with ErrNotInvertible if
// gcd(x, m) != 1. Only the inversion itself is constant time with regard
// to x; reducing x modulo m and the word conversions are not.
func ModOddInverse(m *BigInteger, x *BigInteger) (*BigInteger, error) {
	mw, xw, err := mod_odd_words(m, x)
	if err != nil {
		return nil, err
	}
	if m.Equal(One) {
		return Zero, nil
	}
	z := raw.Create(len(mw))
	if raw.ModOddInverse(mw, xw, z) == 0 {
		return nil, ErrNotInvertible
	}
	return FromUint32ArrayLE(z), nil
}

// Variable-time variant of ModOddInverse, for public values only.
func ModOddInverseVar(m *BigInteger, x *BigInteger) (*BigInteger, error) {
	mw, xw, err := mod_odd_words(m, x)
	if err != nil {
		return nil, err
	}
	if m.Equal(One) {
		return Zero, nil
	}
	z := raw.Create(len(mw))
	if !raw.ModOddInverseVar(mw, xw, z) {
		return nil, ErrNotInvertible
	}
	return FromUint32ArrayLE(z), nil
}

// Report whether x is coprime to the odd modulus m. As with
// ModOddInverse, only the gcd computation is constant time.
func ModOddIsCoprime(m *BigInteger, x *BigInteger) (bool, error) {
	mw, xw, err := mod_odd_words(m, x)
	if err != nil {
		return false, err
	}
	if m.Equal(One) {
		return true, nil
	}
	return raw.ModOddIsCoprime(mw, xw) != 0, nil
}

// Variable-time variant of ModOddIsCoprime.
func ModOddIsCoprimeVar(m *BigInteger, x *BigInteger) (bool, error) {
	mw, xw, err := mod_odd_words(m, x)
	if err != nil {
		return false, err
	}
	if m.Equal(One) {
		return true, nil
	}
	return raw.ModOddIsCoprimeVar(mw, xw), nil
}
