package mpint

import (
	"math/bits"

	"github.com/benjivesterby/go-mpint/raw"
)

// Magnitude helpers. A magnitude is a big-endian []uint32 with no leading
// zero word (the empty slice is zero). Arithmetic is delegated to package
// raw, which works on little-endian words; the helpers below convert at
// the boundary.

// Little-endian copy of mag, zero-extended to n words (n >= len(mag)).
func mag_to_le(mag []uint32, n int) []uint32 {
	z := make([]uint32, n)
	k := len(mag)
	for i := 0; i < k; i++ {
		z[i] = mag[k-1-i]
	}
	return z
}

// Canonical magnitude from little-endian words.
func le_to_mag(x []uint32) []uint32 {
	n := len(x)
	for n > 0 && x[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	z := make([]uint32, n)
	for i := 0; i < n; i++ {
		z[i] = x[n-1-i]
	}
	return z
}

// Drop leading zero words (returns a sub-slice).
func mag_strip(mag []uint32) []uint32 {
	i := 0
	for i < len(mag) && mag[i] == 0 {
		i++
	}
	if i == len(mag) {
		return nil
	}
	return mag[i:]
}

func bitlen32(w uint32) int {
	return 32 - bits.LeadingZeros32(w)
}

func mag_bitlen(mag []uint32) int {
	if len(mag) == 0 {
		return 0
	}
	return ((len(mag) - 1) << 5) + bitlen32(mag[0])
}

func mag_popcount(mag []uint32) int {
	c := 0
	for _, w := range mag {
		c += bits.OnesCount32(w)
	}
	return c
}

// Index of the lowest set bit; mag must be non-zero.
func mag_lowbit(mag []uint32) int {
	k := len(mag)
	for i := k - 1; i >= 0; i-- {
		if mag[i] != 0 {
			return ((k - 1 - i) << 5) + bits.TrailingZeros32(mag[i])
		}
	}
	return -1
}

func mag_testbit(mag []uint32, n int) bool {
	w := n >> 5
	if w >= len(mag) {
		return false
	}
	return (mag[len(mag)-1-w]>>(uint(n)&31))&1 != 0
}

func mag_is_pow2(mag []uint32) bool {
	return len(mag) > 0 && mag_popcount(mag) == 1
}

// Compare two canonical magnitudes.
func mag_cmp(x []uint32, y []uint32) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := range x {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func mag_add(x []uint32, y []uint32) []uint32 {
	n := max(len(x), len(y)) + 1
	xl := mag_to_le(x, n)
	yl := mag_to_le(y, n)
	raw.AddTo(n, yl, xl, 0)
	return le_to_mag(xl)
}

// x - y, for x >= y.
func mag_sub(x []uint32, y []uint32) []uint32 {
	n := len(x)
	xl := mag_to_le(x, n)
	yl := mag_to_le(y, n)
	raw.SubFrom(n, yl, xl)
	return le_to_mag(xl)
}

// x + w for a single word w.
func mag_add_word(x []uint32, w uint32) []uint32 {
	n := len(x) + 1
	xl := mag_to_le(x, n)
	raw.AddWordAt(n, w, xl, 0)
	return le_to_mag(xl)
}

// x - 1, for non-zero x.
func mag_dec(x []uint32) []uint32 {
	n := len(x)
	xl := mag_to_le(x, n)
	raw.Dec(n, xl)
	return le_to_mag(xl)
}

func mag_mul(x []uint32, y []uint32) []uint32 {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	nx := len(x)
	ny := len(y)
	xl := mag_to_le(x, nx)
	yl := mag_to_le(y, ny)
	z := make([]uint32, nx+ny)
	for i := 0; i < ny; i++ {
		z[i+nx] = raw.MulWordAddTo(nx, yl[i], xl, z[i:])
	}
	return le_to_mag(z)
}

func mag_square(x []uint32) []uint32 {
	n := len(x)
	if n == 0 {
		return nil
	}
	xl := mag_to_le(x, n)
	zz := make([]uint32, 2*n)
	raw.Square(n, xl, zz)
	return le_to_mag(zz)
}

// x * w for a single word w.
func mag_mul_word(x []uint32, w uint32) []uint32 {
	n := len(x)
	xl := mag_to_le(x, n+1)
	xl[n] = raw.MulWord(n, w, xl, xl)
	return le_to_mag(xl)
}

func mag_shl(mag []uint32, n int) []uint32 {
	if len(mag) == 0 || n == 0 {
		return mag
	}
	nw := n >> 5
	nb := uint(n & 31)
	k := len(mag)
	z := make([]uint32, k+nw+1)
	for i := 0; i < k; i++ {
		z[nw+i] = mag[k-1-i]
	}
	if nb != 0 {
		raw.ShiftUpBits(k+1, z[nw:], nb, 0)
	}
	return le_to_mag(z)
}

func mag_shr(mag []uint32, n int) []uint32 {
	if n == 0 {
		return mag
	}
	nw := n >> 5
	nb := uint(n & 31)
	k := len(mag)
	if nw >= k {
		return nil
	}
	z := make([]uint32, k-nw)
	for i := range z {
		z[i] = mag[k-1-nw-i]
	}
	if nb != 0 {
		raw.ShiftDownBits(len(z), z, nb, 0)
	}
	return le_to_mag(z)
}

// Low n bits of mag.
func mag_lowbits(mag []uint32, n int) []uint32 {
	if n >= mag_bitlen(mag) {
		return mag
	}
	nw := (n + 31) >> 5
	z := make([]uint32, nw)
	copy(z, mag[len(mag)-nw:])
	if n&31 != 0 {
		z[0] &= (uint32(1) << uint(n&31)) - 1
	}
	return mag_strip(z)
}

// Divide mag by a single non-zero word; returns quotient and remainder.
func mag_divmod_word(mag []uint32, w uint32) ([]uint32, uint32) {
	q := make([]uint32, len(mag))
	r := uint64(0)
	ww := uint64(w)
	for i, x := range mag {
		r = (r << 32) | uint64(x)
		q[i] = uint32(r / ww)
		r %= ww
	}
	return mag_strip(q), uint32(r)
}

func mag_mod_word(mag []uint32, w uint32) uint32 {
	r := uint64(0)
	ww := uint64(w)
	for _, x := range mag {
		r = ((r << 32) | uint64(x)) % ww
	}
	return uint32(r)
}

// Long division of magnitudes, y non-zero. Each round aligns y with the
// top bit of the running remainder (one bit lower if the aligned divisor
// is too large), subtracts and records the quotient bit.
func mag_divmod(x []uint32, y []uint32) ([]uint32, []uint32) {
	if mag_cmp(x, y) < 0 {
		return nil, x
	}
	if len(y) == 1 {
		q, r := mag_divmod_word(x, y[0])
		if r == 0 {
			return q, nil
		}
		return q, []uint32{r}
	}

	n := len(x)
	r := mag_to_le(x, n)
	yl := mag_to_le(y, n)
	c := make([]uint32, n)
	ybits := mag_bitlen(y)
	q := make([]uint32, ((mag_bitlen(x)-ybits)>>5)+1)

	rtop := n
	for {
		for rtop > 0 && r[rtop-1] == 0 {
			rtop--
		}
		rbits := 0
		if rtop > 0 {
			rbits = ((rtop - 1) << 5) + bitlen32(r[rtop-1])
		}
		if rbits < ybits {
			break
		}
		shift := rbits - ybits
		le_shl_into(yl, shift, c)
		if raw.Compare(rtop, r, c) < 0 {
			if shift == 0 {
				break
			}
			shift--
			raw.ShiftDownBit(rtop, c, 0)
		}
		raw.SubFrom(rtop, c, r)
		q[len(q)-1-(shift>>5)] |= uint32(1) << uint(shift&31)
	}
	return mag_strip(q), le_to_mag(r)
}

// Set c = y << shift over len(c) words (little-endian); the result must
// fit.
func le_shl_into(y []uint32, shift int, c []uint32) {
	n := len(c)
	raw.Zero(n, c)
	nw := shift >> 5
	nb := uint(shift & 31)
	ylen := len(y)
	for ylen > 0 && y[ylen-1] == 0 {
		ylen--
	}
	copy(c[nw:], y[:min(ylen, n-nw)])
	if nb != 0 {
		raw.ShiftUpBits(n-nw, c[nw:], nb, 0)
	}
}
