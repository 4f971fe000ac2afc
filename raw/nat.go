package raw

// Word-array primitives: creation, comparison, addition and subtraction.
//
// All carry propagation goes through uint64 accumulators; the low 32 bits
// are the output word and the high 32 bits the carry (or, for
// subtractions, the sign-extended borrow).

const m32 = uint64(0xFFFFFFFF)

// Allocate a new zero operand of n words.
func Create(n int) []uint32 {
	return make([]uint32, n)
}

// Allocate a copy of the first n words of x.
func Copy(n int, x []uint32) []uint32 {
	z := make([]uint32, n)
	copy(z, x[:n])
	return z
}

// Copy the first n words of x into z.
func CopyTo(n int, x []uint32, z []uint32) {
	copy(z[:n], x[:n])
}

// Set the first n words of z to zero.
func Zero(n int, z []uint32) {
	for i := 0; i < n; i++ {
		z[i] = 0
	}
}

func IsZero(n int, x []uint32) bool {
	for i := 0; i < n; i++ {
		if x[i] != 0 {
			return false
		}
	}
	return true
}

func IsOne(n int, x []uint32) bool {
	if x[0] != 1 {
		return false
	}
	for i := 1; i < n; i++ {
		if x[i] != 0 {
			return false
		}
	}
	return true
}

func Equal(n int, x []uint32, y []uint32) bool {
	for i := n - 1; i >= 0; i-- {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Compare x with y; returned value is -1, 0 or 1 depending on whether
// x < y, x == y or x > y. Not constant-time.
func Compare(n int, x []uint32, y []uint32) int {
	for i := n - 1; i >= 0; i-- {
		xi := x[i]
		yi := y[i]
		if xi < yi {
			return -1
		}
		if xi > yi {
			return 1
		}
	}
	return 0
}

// Report whether x >= y. Not constant-time.
func Gte(n int, x []uint32, y []uint32) bool {
	return Compare(n, x, y) >= 0
}

// Return 1 if x < y, 0 otherwise. The whole operands are always read and
// no branch depends on their values.
func LessThan(n int, x []uint32, y []uint32) uint32 {
	c := int64(0)
	for i := 0; i < n; i++ {
		c += int64(x[i]) - int64(y[i])
		c >>= 32
	}
	return uint32(c) & 1
}

// Get bit number bit of x (0 if bit is beyond the word array).
func GetBit(x []uint32, bit int) uint32 {
	w := bit >> 5
	if w < 0 || w >= len(x) {
		return 0
	}
	return (x[w] >> (uint(bit) & 31)) & 1
}

// Set z = x + y; the carry (0 or 1) is returned.
func Add(n int, x []uint32, y []uint32, z []uint32) uint32 {
	c := uint64(0)
	for i := 0; i < n; i++ {
		c += uint64(x[i]) + uint64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Set z = z + x + cIn, with cIn in {0,1}. The carry is returned.
func AddTo(n int, x []uint32, z []uint32, cIn uint32) uint32 {
	c := uint64(cIn)
	for i := 0; i < n; i++ {
		c += uint64(x[i]) + uint64(z[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Set z = z + x + y. The carry (0 to 2) is returned.
func AddBothTo(n int, x []uint32, y []uint32, z []uint32) uint32 {
	c := uint64(0)
	for i := 0; i < n; i++ {
		c += uint64(x[i]) + uint64(y[i]) + uint64(z[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Add word x into z at word position zPos, propagating the carry up to
// word n-1. The carry out of z is returned.
func AddWordAt(n int, x uint32, z []uint32, zPos int) uint32 {
	c := uint64(x) + uint64(z[zPos])
	z[zPos] = uint32(c)
	c >>= 32
	if c == 0 {
		return 0
	}
	return IncAt(n, z, zPos+1)
}

// Add 1 to z; the carry is returned.
func Inc(n int, z []uint32) uint32 {
	return IncAt(n, z, 0)
}

// Add 1 to z at word position zPos. The carry is returned.
func IncAt(n int, z []uint32, zPos int) uint32 {
	for i := zPos; i < n; i++ {
		z[i]++
		if z[i] != 0 {
			return 0
		}
	}
	return 1
}

// Set z = x - y; the borrow (0 or 1) is returned.
func Sub(n int, x []uint32, y []uint32, z []uint32) uint32 {
	c := int64(0)
	for i := 0; i < n; i++ {
		c += int64(x[i]) - int64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c) & 1
}

// Set z = z - x; the borrow (0 or 1) is returned.
func SubFrom(n int, x []uint32, z []uint32) uint32 {
	c := int64(0)
	for i := 0; i < n; i++ {
		c += int64(z[i]) - int64(x[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c) & 1
}

// Subtract 1 from z; the borrow is returned.
func Dec(n int, z []uint32) uint32 {
	for i := 0; i < n; i++ {
		z[i]--
		if z[i] != 0xFFFFFFFF {
			return 0
		}
	}
	return 1
}

// Masked operations. The mask argument is expanded from its low bit, so
// callers may pass either 0/1 or 0/0xFFFFFFFF.

// Set z = x + (y if mask is set, 0 otherwise). The carry is returned.
func CAdd(n int, mask uint32, x []uint32, y []uint32, z []uint32) uint32 {
	mm := uint64(-(mask & 1))
	c := uint64(0)
	for i := 0; i < n; i++ {
		c += uint64(x[i]) + (uint64(y[i]) & mm)
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Set z = x - (y if mask is set, 0 otherwise). The borrow is returned.
func CSub(n int, mask uint32, x []uint32, y []uint32, z []uint32) uint32 {
	mm := int64(-(mask & 1)) & int64(m32)
	c := int64(0)
	for i := 0; i < n; i++ {
		c += int64(x[i]) - (int64(y[i]) & mm)
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c) & 1
}

// Copy x into z if mask is set; leave z unchanged otherwise.
func CMov(n int, mask uint32, x []uint32, z []uint32) {
	mm := -(mask & 1)
	for i := 0; i < n; i++ {
		zi := z[i]
		zi ^= (zi ^ x[i]) & mm
		z[i] = zi
	}
}

// Replace z with -z mod 2^(32*n) if mask is set. If the mask is set,
// the words are flipped and 1 is added; otherwise we XOR with 0 and add 0.
func CNegate(n int, mask uint32, z []uint32) {
	mm := -(mask & 1)
	c := uint64(mm & 1)
	for i := 0; i < n; i++ {
		c += uint64(z[i] ^ mm)
		z[i] = uint32(c)
		c >>= 32
	}
}
