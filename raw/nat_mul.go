package raw

// Multiplication and squaring.

// Set zz = x*y. Operands x and y have n words each; zz receives 2*n words
// and must not overlap x or y.
func Mul(n int, x []uint32, y []uint32, zz []uint32) {
	zz[n] = MulWord(n, x[0], y, zz)
	for i := 1; i < n; i++ {
		zz[i+n] = MulWordAddTo(n, x[i], y, zz[i:])
	}
}

// Set zz = zz + x*y, over 2*n words. The carry out of zz is returned.
func MulAddTo(n int, x []uint32, y []uint32, zz []uint32) uint32 {
	zc := uint64(0)
	for i := 0; i < n; i++ {
		c := MulWordAddTo(n, x[i], y, zz[i:])
		zc += uint64(c) + uint64(zz[i+n])
		zz[i+n] = uint32(zc)
		zc >>= 32
	}
	return uint32(zc)
}

// Set z = x*y for a single word x. Output z has n words; the top word of
// the product is returned.
func MulWord(n int, x uint32, y []uint32, z []uint32) uint32 {
	c := uint64(0)
	xx := uint64(x)
	for i := 0; i < n; i++ {
		c += xx * uint64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Set z = z + x*y for a single word x. The carry word is returned.
// The expression below cannot overflow: (2^32-1)^2 + 2*(2^32-1) = 2^64-1.
func MulWordAddTo(n int, x uint32, y []uint32, z []uint32) uint32 {
	c := uint64(0)
	xx := uint64(x)
	for i := 0; i < n; i++ {
		c += xx*uint64(y[i]) + uint64(z[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Set zz = x^2. Output zz has 2*n words and must not overlap x.
//
// The cross products x[i]*x[j] (i > j) are accumulated once, the partial
// result is doubled with a one-bit shift, and the diagonal squares are
// added last.
func Square(n int, x []uint32, zz []uint32) {
	Zero(2*n, zz)
	for i := 1; i < n; i++ {
		c := uint64(0)
		xi := uint64(x[i])
		for j := 0; j < i; j++ {
			c += xi*uint64(x[j]) + uint64(zz[i+j])
			zz[i+j] = uint32(c)
			c >>= 32
		}
		zz[2*i] = uint32(c)
	}
	ShiftUpBit(2*n, zz, 0)
	c := uint64(0)
	for i := 0; i < n; i++ {
		xi := uint64(x[i])
		p := xi * xi
		c += uint64(zz[2*i]) + (p & m32)
		zz[2*i] = uint32(c)
		c >>= 32
		c += uint64(zz[2*i+1]) + (p >> 32)
		zz[2*i+1] = uint32(c)
		c >>= 32
	}
}
