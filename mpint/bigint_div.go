package mpint

import (
	"fmt"

	"github.com/benjivesterby/go-mpint/raw"
)

// Division, remainders, GCD and modular inversion. Division truncates
// toward zero; Remainder has the sign of the dividend, Mod is always
// non-negative.

// Get x / y, truncated toward zero.
func (x *BigInteger) Divide(y *BigInteger) (*BigInteger, error) {
	if y.sign == 0 {
		return nil, ErrDivisionByZero
	}
	if x.sign == 0 {
		return Zero, nil
	}
	if mag_is_pow2(y.mag) {
		return new_big(x.sign*y.sign, mag_shr(x.mag, mag_bitlen(y.mag)-1)), nil
	}
	q, _ := mag_divmod(x.mag, y.mag)
	return new_big(x.sign*y.sign, q), nil
}

// Get x - y*(x/y); the result has the sign of x.
func (x *BigInteger) Remainder(y *BigInteger) (*BigInteger, error) {
	if y.sign == 0 {
		return nil, ErrDivisionByZero
	}
	if x.sign == 0 {
		return Zero, nil
	}
	if len(y.mag) == 1 {
		return new_big(x.sign, []uint32{mag_mod_word(x.mag, y.mag[0])}), nil
	}
	if mag_is_pow2(y.mag) {
		return new_big(x.sign, mag_lowbits(x.mag, mag_bitlen(y.mag)-1)), nil
	}
	_, r := mag_divmod(x.mag, y.mag)
	return new_big(x.sign, r), nil
}

// Get both x / y and x % y (as Divide and Remainder).
func (x *BigInteger) DivideAndRemainder(y *BigInteger) (*BigInteger, *BigInteger, error) {
	if y.sign == 0 {
		return nil, nil, ErrDivisionByZero
	}
	if x.sign == 0 {
		return Zero, Zero, nil
	}
	if mag_is_pow2(y.mag) {
		k := mag_bitlen(y.mag) - 1
		return new_big(x.sign*y.sign, mag_shr(x.mag, k)),
			new_big(x.sign, mag_lowbits(x.mag, k)), nil
	}
	q, r := mag_divmod(x.mag, y.mag)
	return new_big(x.sign*y.sign, q), new_big(x.sign, r), nil
}

// Get x mod m, in [0, m). The modulus must be positive.
func (x *BigInteger) Mod(m *BigInteger) (*BigInteger, error) {
	if m.sign < 1 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrArgument)
	}
	r, err := x.Remainder(m)
	if err != nil {
		return nil, err
	}
	if r.sign < 0 {
		return r.Add(m), nil
	}
	return r, nil
}

// Get the greatest common divisor of |x| and |y| (0 if both are 0).
func (x *BigInteger) Gcd(y *BigInteger) *BigInteger {
	u := x.Abs()
	v := y.Abs()
	if v.sign == 0 {
		return u
	}
	if u.sign == 0 {
		return v
	}
	for v.sign != 0 {
		r, _ := u.Mod(v)
		u, v = v, r
	}
	return u
}

// Get x^-1 mod m, in [0, m). Fails with ErrNotInvertible if x and m are
// not coprime.
func (x *BigInteger) ModInverse(m *BigInteger) (*BigInteger, error) {
	if m.sign < 1 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrArgument)
	}
	if m.Equal(One) {
		return Zero, nil
	}
	if mag_is_pow2(m.mag) {
		return x.mod_inverse_pow2(m)
	}

	d, _ := x.Mod(m)
	g, u := ext_euclid(d, m)
	if !g.Equal(One) {
		return nil, ErrNotInvertible
	}
	if u.sign < 0 {
		u = u.Add(m)
	}
	return u, nil
}

// Inverse modulo a power of two: the 64-bit inverse of the low word is
// lifted with Newton iterations, each doubling the number of correct
// bits.
func (x *BigInteger) mod_inverse_pow2(m *BigInteger) (*BigInteger, error) {
	if !x.TestBit(0) {
		return nil, ErrNotInvertible
	}
	pow := m.BitLength() - 1
	inv := raw.Inverse64(uint64(x.LongValue()))
	if pow < 64 {
		inv &= (uint64(1) << uint(pow)) - 1
	}
	y := from_uint64(1, inv)
	if pow > 64 {
		d, _ := x.Mod(m)
		for correct := 64; correct < pow; correct <<= 1 {
			t, _ := y.Multiply(d).Mod(m)
			y, _ = y.Multiply(Two.Subtract(t)).Mod(m)
		}
	}
	return y, nil
}

// Extended Euclid on a >= 0, b > 0. Returns gcd(a, b) and u such that
// a*u = gcd(a, b) mod b.
func ext_euclid(a *BigInteger, b *BigInteger) (*BigInteger, *BigInteger) {
	u1 := One
	v1 := Zero
	u3 := a
	v3 := b
	for {
		q, r, _ := u3.DivideAndRemainder(v3)
		u3 = v3
		v3 = r
		old := u1
		u1 = v1
		if v3.sign <= 0 {
			break
		}
		v1 = old.Subtract(v1.Multiply(q))
	}
	return u3, u1
}
