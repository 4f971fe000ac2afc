package raw

import (
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
)

// Modular inversion and coprimality over an odd modulus, using the
// Bernstein-Yang "safegcd" algorithm.
//
// The modulus m is an array of len(m) words whose top word is non-zero;
// operands x must be reduced (0 <= x < m) and have len(m) words. Internally
// all values are re-encoded into signed 30-bit limbs (the top limb carries
// the sign and any excess), which leaves enough headroom in 64-bit
// accumulators for the 2x2 transition matrices applied every 30 divsteps.

var ErrNotInvertible = errors.New("raw: operand is not invertible")

const m30 = int32(0x3FFFFFFF)

// Inverse of odd d modulo 2^32. Each Newton step doubles the number of
// correct low bits; d*d = 1 mod 8 gives 3 bits to start with.
func Inverse32(d uint32) uint32 {
	x := d
	x *= 2 - d*x
	x *= 2 - d*x
	x *= 2 - d*x
	x *= 2 - d*x
	return x
}

// Inverse of odd d modulo 2^64.
func Inverse64(d uint64) uint64 {
	x := d
	x *= 2 - d*x
	x *= 2 - d*x
	x *= 2 - d*x
	x *= 2 - d*x
	x *= 2 - d*x
	return x
}

// Bit length of the modulus, and the corresponding limb count.
func mod_bits(m []uint32) (int, int) {
	n := len(m)
	nbits := (n << 5) - bits.LeadingZeros32(m[n-1])
	return nbits, (nbits + 29) / 30
}

// Number of half-delta divsteps sufficient for any pair of inputs below
// 2^nbits (bound from the safegcd paper, follow-up analysis).
func max_hd_divsteps(nbits int) int {
	return int((int64(45907)*int64(nbits) + 30179) / 19929)
}

// Number of classic divsteps sufficient for any pair of inputs below
// 2^nbits.
func max_divsteps(nbits int) int {
	return (49*nbits + 80) / 17
}

// Set z = x^-1 mod m, in constant time. Returns 1 on success, 0 if x is
// not invertible (in which case z receives an unspecified value in
// [0, m)). The iteration count only depends on the bit length of m.
func ModOddInverse(m []uint32, x []uint32, z []uint32) uint32 {
	nbits, len30 := mod_bits(m)

	var t trans2x2
	D := make([]int32, len30)
	E := make([]int32, len30)
	F := make([]int32, len30)
	G := make([]int32, len30)
	M := make([]int32, len30)

	E[0] = 1
	encode30(nbits, x, G)
	encode30(nbits, m, M)
	copy(F, M)

	// Half-delta variant: zeta = -(delta + 1/2), delta starts at 1/2.
	zeta := int32(-1)
	m0inv := Inverse32(uint32(M[0]))
	maxSteps := max_hd_divsteps(nbits)

	for steps := 0; steps < maxSteps; steps += 30 {
		zeta = divsteps30(zeta, uint32(F[0]), uint32(G[0]), &t)
		update_de30(len30, D, E, &t, m0inv, M)
		update_fg30(len30, F, G, &t)
	}

	signF := F[len30-1] >> 31
	cnegate30(len30, signF, F)

	// D is in (-2*m, m); bring it into [0, m), negated along with F.
	cnormalize30(len30, signF, D, M)

	decode30(nbits, D, z)
	return uint32(equal_to30(len30, F, 1)&equal_to30(len30, G, 0)) & 1
}

// Variable-time variant of ModOddInverse: stops as soon as the GCD is
// known. Returns false if x is not invertible. MUST NOT be used with
// secret values.
func ModOddInverseVar(m []uint32, x []uint32, z []uint32) bool {
	nbits, len30 := mod_bits(m)

	var t trans2x2
	D := make([]int32, len30)
	E := make([]int32, len30)
	F := make([]int32, len30)
	G := make([]int32, len30)
	M := make([]int32, len30)

	E[0] = 1
	encode30(nbits, x, G)
	encode30(nbits, m, M)
	copy(F, M)

	// Classic divstep: eta = -delta, delta starts at 1.
	eta := int32(-1)
	lenDE := len30
	lenFG := len30
	m0inv := Inverse32(uint32(M[0]))
	maxSteps := max_divsteps(nbits)

	steps := 0
	for !equal_to30_var(lenFG, G, 0) {
		if steps >= maxSteps {
			return false
		}
		steps += 30
		eta = divsteps30_var(eta, uint32(F[0]), uint32(G[0]), &t)
		update_de30(lenDE, D, E, &t, m0inv, M)
		update_fg30(lenFG, F, G, &t)
		lenFG = trim_fg30(lenFG, F, G)
	}

	signF := F[lenFG-1] >> 31
	signD := D[lenDE-1] >> 31
	if signD < 0 {
		signD = add30(lenDE, D, M)
	}
	if signF < 0 {
		signD = negate30(lenDE, D)
		negate30(lenFG, F)
	}
	if !equal_to30_var(lenFG, F, 1) {
		return false
	}
	if signD < 0 {
		add30(lenDE, D, M)
	}

	decode30(nbits, D, z)
	return true
}

// Like ModOddInverse, but reports a non-invertible x as ErrNotInvertible.
func CheckedModOddInverse(m []uint32, x []uint32, z []uint32) error {
	if ModOddInverse(m, x, z) == 0 {
		return ErrNotInvertible
	}
	return nil
}

// Return 1 if gcd(x, m) == 1, 0 otherwise, in constant time. Only the
// remainder sequence is computed.
func ModOddIsCoprime(m []uint32, x []uint32) uint32 {
	nbits, len30 := mod_bits(m)

	var t trans2x2
	F := make([]int32, len30)
	G := make([]int32, len30)

	encode30(nbits, x, G)
	encode30(nbits, m, F)

	zeta := int32(-1)
	maxSteps := max_hd_divsteps(nbits)
	for steps := 0; steps < maxSteps; steps += 30 {
		zeta = divsteps30(zeta, uint32(F[0]), uint32(G[0]), &t)
		update_fg30(len30, F, G, &t)
	}

	signF := F[len30-1] >> 31
	cnegate30(len30, signF, F)
	return uint32(equal_to30(len30, F, 1)&equal_to30(len30, G, 0)) & 1
}

// Variable-time variant of ModOddIsCoprime.
func ModOddIsCoprimeVar(m []uint32, x []uint32) bool {
	nbits, len30 := mod_bits(m)

	var t trans2x2
	F := make([]int32, len30)
	G := make([]int32, len30)

	encode30(nbits, x, G)
	encode30(nbits, m, F)

	eta := int32(-1)
	lenFG := len30
	maxSteps := max_divsteps(nbits)

	steps := 0
	for !equal_to30_var(lenFG, G, 0) {
		if steps >= maxSteps {
			return false
		}
		steps += 30
		eta = divsteps30_var(eta, uint32(F[0]), uint32(G[0]), &t)
		update_fg30(lenFG, F, G, &t)
		lenFG = trim_fg30(lenFG, F, G)
	}

	if F[lenFG-1]>>31 < 0 {
		negate30(lenFG, F)
	}
	return equal_to30_var(lenFG, F, 1)
}

// Set z = x + y mod m, for reduced x and y. Output z may alias x or y.
func ModAdd(m []uint32, x []uint32, y []uint32, z []uint32) {
	n := len(m)
	c := Add(n, x, y, z)
	ge := LessThan(n, z, m) ^ 1
	CSub(n, c|ge, z, m, z)
}

// Return a uniformly random value in [0, m), by rejection sampling over
// the bit length of m. The top word of m must be non-zero.
func ModRandom(m []uint32, rng io.Reader) ([]uint32, error) {
	n := len(m)
	s := Create(n)

	mask := m[n-1]
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16

	buf := make([]byte, n<<2)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			s[i] = binary.LittleEndian.Uint32(buf[i<<2:])
		}
		s[n-1] &= mask
		if LessThan(n, s, m) != 0 {
			return s, nil
		}
	}
}
