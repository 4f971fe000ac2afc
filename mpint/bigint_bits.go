package mpint

import (
	"github.com/benjivesterby/go-mpint/raw"
)

// Shifts and bitwise operations, with two's complement semantics. The
// two's complement words of a negative operand, ~(|x|-1), are built on
// demand for each operation and never stored.

// Get x << n (x >> -n if n is negative).
func (x *BigInteger) ShiftLeft(n int) *BigInteger {
	if n < 0 {
		return x.ShiftRight(-n)
	}
	if x.sign == 0 || n == 0 {
		return x
	}
	return new_big(x.sign, mag_shl(x.mag, n))
}

// Get x >> n, rounding toward negative infinity (x << -n if n is
// negative).
func (x *BigInteger) ShiftRight(n int) *BigInteger {
	if n < 0 {
		return x.ShiftLeft(-n)
	}
	if x.sign == 0 || n == 0 {
		return x
	}
	if x.sign > 0 {
		return new_big(1, mag_shr(x.mag, n))
	}
	// -(((|x| - 1) >> n) + 1)
	return new_big(-1, mag_add_word(mag_shr(mag_dec(x.mag), n), 1))
}

func check_bit_index(n int) {
	if n < 0 {
		panic("mpint: negative bit index")
	}
}

// Report whether bit n of x (two's complement) is set. Panics if n is
// negative.
func (x *BigInteger) TestBit(n int) bool {
	check_bit_index(n)
	if x.sign >= 0 {
		return mag_testbit(x.mag, n)
	}
	return !mag_testbit(mag_dec(x.mag), n)
}

// Get x with bit n set.
func (x *BigInteger) SetBit(n int) *BigInteger {
	if x.TestBit(n) {
		return x
	}
	return x.FlipBit(n)
}

// Get x with bit n cleared.
func (x *BigInteger) ClearBit(n int) *BigInteger {
	if !x.TestBit(n) {
		return x
	}
	return x.FlipBit(n)
}

// Get x with bit n inverted.
func (x *BigInteger) FlipBit(n int) *BigInteger {
	check_bit_index(n)
	return x.Xor(One.ShiftLeft(n))
}

// Get ~x, i.e. -x-1.
func (x *BigInteger) Not() *BigInteger {
	return x.Add(One).Negate()
}

func (x *BigInteger) And(y *BigInteger) *BigInteger {
	if x.sign == 0 || y.sign == 0 {
		return Zero
	}
	return bitwise(x, y, func(a, b uint32) uint32 { return a & b })
}

func (x *BigInteger) Or(y *BigInteger) *BigInteger {
	if x.sign == 0 {
		return y
	}
	if y.sign == 0 {
		return x
	}
	return bitwise(x, y, func(a, b uint32) uint32 { return a | b })
}

func (x *BigInteger) Xor(y *BigInteger) *BigInteger {
	if x.sign == 0 {
		return y
	}
	if y.sign == 0 {
		return x
	}
	return bitwise(x, y, func(a, b uint32) uint32 { return a ^ b })
}

// Get x & ~y.
func (x *BigInteger) AndNot(y *BigInteger) *BigInteger {
	if x.sign == 0 {
		return Zero
	}
	if y.sign == 0 {
		return x
	}
	return bitwise(x, y, func(a, b uint32) uint32 { return a &^ b })
}

// Apply op word by word on the two's complement forms of x and y, with
// one extra word so that the sign of the result is explicit.
func bitwise(x *BigInteger, y *BigInteger, op func(a, b uint32) uint32) *BigInteger {
	n := max(len(x.mag), len(y.mag)) + 1
	xw := x.twos_le(n)
	yw := y.twos_le(n)
	for i := 0; i < n; i++ {
		xw[i] = op(xw[i], yw[i])
	}
	return from_twos_le(xw)
}

// Two's complement of x over n little-endian words; n must leave room
// for the sign bit.
func (x *BigInteger) twos_le(n int) []uint32 {
	z := mag_to_le(x.mag, n)
	if x.sign < 0 {
		raw.Dec(n, z)
		for i := range z {
			z[i] = ^z[i]
		}
	}
	return z
}

// Value of the two's complement little-endian words z (consumed).
func from_twos_le(z []uint32) *BigInteger {
	n := len(z)
	if n > 0 && z[n-1]>>31 != 0 {
		for i := range z {
			z[i] = ^z[i]
		}
		raw.Inc(n, z)
		return new_big(-1, le_to_mag(z))
	}
	return new_big(1, le_to_mag(z))
}
