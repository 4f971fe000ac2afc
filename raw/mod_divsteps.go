package raw

import (
	"math/bits"
)

// Transition matrix for 30 divsteps. Applied to (f, g) it yields
// (f', g') * 2^30; entries are in [-2^30, 2^30].
type trans2x2 struct {
	u, v, q, r int32
}

// inv256[i] = -(2*i+1)^-1 mod 256.
var inv256 = func() (tab [128]uint8) {
	for i := range tab {
		tab[i] = uint8(-Inverse32(uint32(2*i + 1)))
	}
	return
}()

// Perform 30 half-delta divsteps on the low bits f0, g0 of f and g (f odd),
// with no data-dependent branch. The transition matrix is written into t
// and the updated zeta is returned.
func divsteps30(zeta int32, f0 uint32, g0 uint32, t *trans2x2) int32 {
	u, v, q, r := uint32(1), uint32(0), uint32(0), uint32(1)
	f, g := f0, g0

	for i := 0; i < 30; i++ {
		// c1 = (zeta < 0), c2 = (g is odd), as all-ones masks.
		c1 := uint32(zeta >> 31)
		c2 := -(g & 1)

		x := (f ^ c1) - c1
		y := (u ^ c1) - c1
		z := (v ^ c1) - c1

		g += x & c2
		q += y & c2
		r += z & c2

		// zeta becomes -zeta-2 if both conditions hold, zeta-1 otherwise.
		c1 &= c2
		zeta = (zeta ^ int32(c1)) - 1

		f += g & c1
		u += q & c1
		v += r & c1

		g >>= 1
		u <<= 1
		v <<= 1
	}

	t.u = int32(u)
	t.v = int32(v)
	t.q = int32(q)
	t.r = int32(r)
	return zeta
}

// Perform 30 classic divsteps (eta = -delta), consuming runs of zero bits
// of g at once and cancelling up to 8 low bits of g per odd step. Timing
// depends on the operands.
func divsteps30_var(eta int32, f0 uint32, g0 uint32, t *trans2x2) int32 {
	u, v, q, r := uint32(1), uint32(0), uint32(0), uint32(1)
	f, g := f0, g0
	i := 30

	for {
		// The sentinel bits stop the count at i.
		zeros := bits.TrailingZeros32(g | (uint32(0xFFFFFFFF) << uint(i)))
		g >>= uint(zeros)
		u <<= uint(zeros)
		v <<= uint(zeros)
		eta -= int32(zeros)
		i -= zeros
		if i == 0 {
			break
		}

		if eta < 0 {
			eta = -eta
			f, g = g, -f
			u, q = q, -u
			v, r = r, -v
		}

		// Cancel at most min(eta+1, i, 8) low bits of g with a multiple
		// of f.
		limit := int(eta) + 1
		if limit > i {
			limit = i
		}
		mask := (uint32(0xFFFFFFFF) >> uint(32-limit)) & 255
		w := (g * uint32(inv256[(f>>1)&127])) & mask
		g += f * w
		q += u * w
		r += v * w
	}

	t.u = int32(u)
	t.v = int32(v)
	t.q = int32(q)
	t.r = int32(r)
	return eta
}

// Compute (t * [D, E]) / 2^30 mod M, in place, over n limbs. A multiple of
// M is added so that the division is exact; md and me start from the
// signs of D and E so that outputs stay in (-2*M, M).
func update_de30(n int, D []int32, E []int32, t *trans2x2, m0inv uint32, M []int32) {
	u, v, q, r := t.u, t.v, t.q, t.r

	sd := D[n-1] >> 31
	se := E[n-1] >> 31
	md := (u & sd) + (v & se)
	me := (q & sd) + (r & se)

	di := D[0]
	ei := E[0]
	cd := int64(u)*int64(di) + int64(v)*int64(ei)
	ce := int64(q)*int64(di) + int64(r)*int64(ei)

	md -= int32((m0inv*uint32(cd) + uint32(md)) & uint32(m30))
	me -= int32((m0inv*uint32(ce) + uint32(me)) & uint32(m30))

	cd += int64(M[0]) * int64(md)
	ce += int64(M[0]) * int64(me)
	cd >>= 30
	ce >>= 30

	for i := 1; i < n; i++ {
		di = D[i]
		ei = E[i]
		mi := int64(M[i])
		cd += int64(u)*int64(di) + int64(v)*int64(ei) + mi*int64(md)
		ce += int64(q)*int64(di) + int64(r)*int64(ei) + mi*int64(me)
		D[i-1] = int32(cd) & m30
		E[i-1] = int32(ce) & m30
		cd >>= 30
		ce >>= 30
	}
	D[n-1] = int32(cd)
	E[n-1] = int32(ce)
}

// Compute (t * [F, G]) / 2^30, in place, over n limbs. The division is
// exact by construction of t.
func update_fg30(n int, F []int32, G []int32, t *trans2x2) {
	u, v, q, r := int64(t.u), int64(t.v), int64(t.q), int64(t.r)

	fi := int64(F[0])
	gi := int64(G[0])
	cf := u*fi + v*gi
	cg := q*fi + r*gi
	cf >>= 30
	cg >>= 30

	for i := 1; i < n; i++ {
		fi = int64(F[i])
		gi = int64(G[i])
		cf += u*fi + v*gi
		cg += q*fi + r*gi
		F[i-1] = int32(cf) & m30
		G[i-1] = int32(cg) & m30
		cf >>= 30
		cg >>= 30
	}
	F[n-1] = int32(cf)
	G[n-1] = int32(cg)
}

// Drop the top limb of F and G when both are 0 or -1, folding the sign
// into the new top limb. Never goes below one limb. Returns the new
// length.
func trim_fg30(n int, F []int32, G []int32) int {
	fn := F[n-1]
	gn := G[n-1]

	cond := int32(n-2) >> 31
	cond |= fn ^ (fn >> 31)
	cond |= gn ^ (gn >> 31)

	if cond == 0 {
		F[n-2] |= fn << 30
		G[n-2] |= gn << 30
		n--
	}
	return n
}

// Split the low nbits bits of x into 30-bit limbs.
func encode30(nbits int, x []uint32, z []int32) {
	avail := 0
	data := uint64(0)
	xOff := 0
	zOff := 0
	for nbits > 0 {
		if avail < min(30, nbits) {
			data |= uint64(x[xOff]) << uint(avail)
			xOff++
			avail += 32
		}
		z[zOff] = int32(data) & m30
		zOff++
		data >>= 30
		avail -= 30
		nbits -= 30
	}
}

// Reassemble normalized (non-negative) 30-bit limbs into 32-bit words.
func decode30(nbits int, x []int32, z []uint32) {
	avail := 0
	data := uint64(0)
	xOff := 0
	zOff := 0
	for nbits > 0 {
		for avail < min(32, nbits) {
			data |= uint64(x[xOff]) << uint(avail)
			xOff++
			avail += 30
		}
		z[zOff] = uint32(data)
		zOff++
		data >>= 32
		avail -= 32
		nbits -= 32
	}
}

// Negate D if cond is -1 (cond must be 0 or -1), normalizing the limbs.
func cnegate30(n int, cond int32, D []int32) {
	c := int32(0)
	last := n - 1
	for i := 0; i < last; i++ {
		c += (D[i] ^ cond) - cond
		D[i] = c & m30
		c >>= 30
	}
	c += (D[last] ^ cond) - cond
	D[last] = c
}

// Bring D from (-2*M, M) into [0, M), negating it first if condNegate is
// -1. Two passes: add M if negative, then negate conditionally; add M
// again if negative.
func cnormalize30(n int, condNegate int32, D []int32, M []int32) {
	last := n - 1

	c := int32(0)
	condAdd := D[last] >> 31
	for i := 0; i < last; i++ {
		di := D[i] + (M[i] & condAdd)
		di = (di ^ condNegate) - condNegate
		c += di
		D[i] = c & m30
		c >>= 30
	}
	di := D[last] + (M[last] & condAdd)
	di = (di ^ condNegate) - condNegate
	c += di
	D[last] = c

	c = 0
	condAdd = D[last] >> 31
	for i := 0; i < last; i++ {
		di := D[i] + (M[i] & condAdd)
		c += di
		D[i] = c & m30
		c >>= 30
	}
	c += D[last] + (M[last] & condAdd)
	D[last] = c
}

// Variable-time helpers. They return the sign of the result (0 or -1).

func negate30(n int, D []int32) int32 {
	c := int32(0)
	last := n - 1
	for i := 0; i < last; i++ {
		c -= D[i]
		D[i] = c & m30
		c >>= 30
	}
	c -= D[last]
	D[last] = c
	return c >> 31
}

func add30(n int, D []int32, M []int32) int32 {
	c := int32(0)
	last := n - 1
	for i := 0; i < last; i++ {
		c += D[i] + M[i]
		D[i] = c & m30
		c >>= 30
	}
	c += D[last] + M[last]
	D[last] = c
	return c >> 31
}

// Return -1 if x (normalized) equals the small value y, 0 otherwise.
func equal_to30(n int, x []int32, y int32) int32 {
	d := x[0] ^ y
	for i := 1; i < n; i++ {
		d |= x[i]
	}
	d = int32(uint32(d)>>1) | (d & 1)
	return (d - 1) >> 31
}

func equal_to30_var(n int, x []int32, y int32) bool {
	if x[0] != y {
		return false
	}
	for i := 1; i < n; i++ {
		if x[i] != 0 {
			return false
		}
	}
	return true
}
