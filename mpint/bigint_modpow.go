package mpint

import (
	"fmt"

	"github.com/benjivesterby/go-mpint/raw"
)

// =====================================================================
// Modular exponentiation.
//
// Odd moduli use Montgomery multiplication over little-endian words;
// even moduli use Barrett reduction on BigInteger values. Both run the
// same sliding-window schedule, whose width depends on the exponent
// length only.
// =====================================================================

// Window width w is the smallest value such that the exponent bit length
// is not above exp_window_thresholds[w]; 2^w odd powers are precomputed.
var exp_window_thresholds = [...]int{7, 25, 81, 241, 673, 1793}

func window_extra_bits(elen int) int {
	w := 0
	for w < len(exp_window_thresholds) && elen > exp_window_thresholds[w] {
		w++
	}
	return w
}

// Window entries pack an odd multiplier in the low 8 bits and the number
// of squarings that follow it in the upper bits.
func create_window_entry(mult uint32, zeroes uint32) uint32 {
	for mult&1 == 0 {
		mult >>= 1
		zeroes++
	}
	return mult | (zeroes << 8)
}

// Split the exponent (magnitude, non-zero) into windows. The top bit of
// the exponent is the implicit leading 1 of the first window.
func window_list(mag []uint32, extraBits int) []uint32 {
	var list []uint32
	mult := uint32(1)
	multLimit := uint32(1) << uint(extraBits)
	zeroes := uint32(0)
	for i := mag_bitlen(mag) - 2; i >= 0; i-- {
		bit := uint32(0)
		if mag_testbit(mag, i) {
			bit = 1
		}
		switch {
		case mult < multLimit:
			mult = (mult << 1) | bit
		case bit != 0:
			list = append(list, create_window_entry(mult, zeroes))
			mult = 1
			zeroes = 0
		default:
			zeroes++
		}
	}
	return append(list, create_window_entry(mult, zeroes))
}

// Sliding-window exponentiation driver. odd[i] holds base^(2i+1); sqr
// and mul may update their first argument in place and return it; clone
// makes an independent copy of a table entry.
func window_exp[T any](odd []T, windows []uint32,
	sqr func(y T) T, mul func(y T, x T) T, clone func(x T) T) T {

	mult := windows[0] & 0xFF
	lastZeroes := int(windows[0] >> 8)
	var y T
	if mult == 1 && lastZeroes > 0 {
		y = sqr(clone(odd[0]))
		lastZeroes--
	} else {
		y = clone(odd[mult>>1])
	}
	for _, w := range windows[1:] {
		mult = w & 0xFF
		n := lastZeroes + bitlen32(mult)
		for j := 0; j < n; j++ {
			y = sqr(y)
		}
		y = mul(y, odd[mult>>1])
		lastZeroes = int(w >> 8)
	}
	for j := 0; j < lastZeroes; j++ {
		y = sqr(y)
	}
	return y
}

// Montgomery context for an odd modulus of n words, R = 2^(32*n).
type monty struct {
	n     int
	m     []uint32 // modulus, little-endian
	mDash uint32   // -1/m mod 2^32
	rr    []uint32 // R^2 mod m
	one   []uint32

	// Accumulator for products, n+2 words; reused by every mul.
	acc []uint32
}

func new_monty(m *BigInteger) *monty {
	n := len(m.mag)
	mt := &monty{
		n:   n,
		m:   mag_to_le(m.mag, n),
		acc: make([]uint32, n+2),
		one: make([]uint32, n),
	}
	mt.mDash = -raw.Inverse32(mt.m[0])
	rr, _ := One.ShiftLeft(64 * n).Mod(m)
	mt.rr = mag_to_le(rr.mag, n)
	mt.one[0] = 1
	return mt
}

// Set z = x*y/R mod m. Operands are lower than m; z may be x or y.
func (mt *monty) mul(x []uint32, y []uint32, z []uint32) {
	n := mt.n
	t := mt.acc
	raw.Zero(n+2, t)
	for i := 0; i < n; i++ {
		c := raw.MulWordAddTo(n, x[i], y, t)
		raw.AddWordAt(n+2, c, t, n)
		u := t[0] * mt.mDash
		c = raw.MulWordAddTo(n, u, mt.m, t)
		raw.AddWordAt(n+2, c, t, n)

		// Low word is now zero.
		raw.ShiftDownWord(n+2, t, 0)
	}
	if t[n] != 0 || raw.Gte(n, t, mt.m) {
		raw.Sub(n, t, mt.m, t)
	}
	raw.CopyTo(n, t, z)
}

func (mt *monty) to_monty(x []uint32) []uint32 {
	z := make([]uint32, mt.n)
	mt.mul(x, mt.rr, z)
	return z
}

func (mt *monty) from_monty(x []uint32) []uint32 {
	z := make([]uint32, mt.n)
	mt.mul(x, mt.one, z)
	return z
}

// Compute b^e in the Montgomery domain: b is taken as a Montgomery
// representative, i.e. the result represents (b/R)^e. The exponent
// must be at least 1.
func (mt *monty) exp(b []uint32, e *BigInteger) []uint32 {
	extraBits := window_extra_bits(e.BitLength())
	odd := make([][]uint32, 1<<uint(extraBits))
	odd[0] = raw.Copy(mt.n, b)
	if len(odd) > 1 {
		b2 := make([]uint32, mt.n)
		mt.mul(b, b, b2)
		for i := 1; i < len(odd); i++ {
			odd[i] = make([]uint32, mt.n)
			mt.mul(odd[i-1], b2, odd[i])
		}
	}
	return window_exp(odd, window_list(e.mag, extraBits),
		func(y []uint32) []uint32 {
			mt.mul(y, y, y)
			return y
		},
		func(y []uint32, x []uint32) []uint32 {
			mt.mul(y, x, y)
			return y
		},
		func(x []uint32) []uint32 {
			return raw.Copy(mt.n, x)
		})
}

// b^e mod m for odd m, 0 <= b < m and e >= 1.
func modpow_monty(b *BigInteger, e *BigInteger, m *BigInteger) *BigInteger {
	mt := new_monty(m)
	y := mt.exp(mt.to_monty(mag_to_le(b.mag, mt.n)), e)
	return new_big(1, le_to_mag(mt.from_monty(y)))
}

// Barrett context for a modulus of k words.
type barrett struct {
	k  int
	m  *BigInteger
	mr *BigInteger // 2^(32*(k+1))
	yu *BigInteger // floor(2^(64*k) / m)
}

func new_barrett(m *BigInteger) *barrett {
	k := len(m.mag)
	yu, _ := One.ShiftLeft(64 * k).Divide(m)
	return &barrett{
		k:  k,
		m:  m,
		mr: One.ShiftLeft(32 * (k + 1)),
		yu: yu,
	}
}

// Reduce 0 <= x < m^2 modulo m.
func (br *barrett) reduce(x *BigInteger) *BigInteger {
	m := br.m
	if x.BitLength()-m.BitLength() > 1 {
		k := br.k
		q := x.ShiftRight(32 * (k - 1)).Multiply(br.yu).ShiftRight(32 * (k + 1))
		r1 := new_big(1, mag_lowbits(x.mag, 32*(k+1)))
		r2 := new_big(1, mag_lowbits(q.Multiply(m).mag, 32*(k+1)))
		x = r1.Subtract(r2)
		if x.sign < 0 {
			x = x.Add(br.mr)
		}
	}
	for x.Compare(m) >= 0 {
		x = x.Subtract(m)
	}
	return x
}

// b^e mod m for any m > 1, 0 <= b < m and e >= 1.
func modpow_barrett(b *BigInteger, e *BigInteger, m *BigInteger) *BigInteger {
	br := new_barrett(m)
	extraBits := window_extra_bits(e.BitLength())
	odd := make([]*BigInteger, 1<<uint(extraBits))
	odd[0] = b
	if len(odd) > 1 {
		b2 := br.reduce(b.Square())
		for i := 1; i < len(odd); i++ {
			odd[i] = br.reduce(odd[i-1].Multiply(b2))
		}
	}
	return window_exp(odd, window_list(e.mag, extraBits),
		func(y *BigInteger) *BigInteger {
			return br.reduce(y.Square())
		},
		func(y *BigInteger, x *BigInteger) *BigInteger {
			return br.reduce(y.Multiply(x))
		},
		func(x *BigInteger) *BigInteger {
			return x
		})
}

// Get x^e mod m, in [0, m). The modulus must be positive. A negative
// exponent yields the inverse of x^|e|, and fails with ErrNotInvertible
// if x is not invertible modulo m.
func (x *BigInteger) ModPow(e *BigInteger, m *BigInteger) (*BigInteger, error) {
	if m.sign < 1 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrArgument)
	}
	if m.Equal(One) {
		return Zero, nil
	}
	if e.sign == 0 {
		return One, nil
	}
	if x.sign == 0 {
		if e.sign < 0 {
			return nil, ErrNotInvertible
		}
		return Zero, nil
	}

	negative := e.sign < 0
	if negative {
		e = e.Negate()
	}
	r, err := x.Mod(m)
	if err != nil {
		return nil, err
	}
	if !e.Equal(One) && r.sign != 0 {
		if m.TestBit(0) {
			r = modpow_monty(r, e, m)
		} else {
			r = modpow_barrett(r, e, m)
		}
	}
	if negative {
		return r.ModInverse(m)
	}
	return r, nil
}
