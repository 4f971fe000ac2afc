package raw

// Shifts. "Up" moves bits toward the most significant word, "Down" toward
// the least significant one. The c argument provides the bits shifted in
// (taken from the opposite end of c), and the bits shifted out are
// returned in the same position, so that shifts chain across operands.
// Bit counts must be in [1,31].

// Shift z up by one bit; the top bit of c enters at the bottom and the
// top bit of z is returned (as 0 or 1).
func ShiftUpBit(n int, z []uint32, c uint32) uint32 {
	for i := 0; i < n; i++ {
		next := z[i]
		z[i] = (next << 1) | (c >> 31)
		c = next
	}
	return c >> 31
}

// Shift z up by bits bits, in place. The top bits of c enter at the
// bottom; the bits shifted out of the top are returned in the low bits
// of the result.
func ShiftUpBits(n int, z []uint32, bits uint, c uint32) uint32 {
	for i := 0; i < n; i++ {
		next := z[i]
		z[i] = (next << bits) | (c >> (32 - bits))
		c = next
	}
	return c >> (32 - bits)
}

// Set z = x << bits (with the top bits of c shifted in). Returns the bits
// shifted out.
func ShiftUpBitsTo(n int, x []uint32, bits uint, c uint32, z []uint32) uint32 {
	for i := 0; i < n; i++ {
		next := x[i]
		z[i] = (next << bits) | (c >> (32 - bits))
		c = next
	}
	return c >> (32 - bits)
}

// Shift z down by one bit; the low bit of c enters at the top. The bit
// shifted out is returned in bit 31.
func ShiftDownBit(n int, z []uint32, c uint32) uint32 {
	for i := n - 1; i >= 0; i-- {
		next := z[i]
		z[i] = (next >> 1) | (c << 31)
		c = next
	}
	return c << 31
}

// Shift z down by bits bits, in place. The low bits of c enter at the
// top; the bits shifted out of the bottom are returned in the high bits
// of the result.
func ShiftDownBits(n int, z []uint32, bits uint, c uint32) uint32 {
	for i := n - 1; i >= 0; i-- {
		next := z[i]
		z[i] = (next >> bits) | (c << (32 - bits))
		c = next
	}
	return c << (32 - bits)
}

// Set z = x >> bits (with the low bits of c shifted in). Returns the bits
// shifted out.
func ShiftDownBitsTo(n int, x []uint32, bits uint, c uint32, z []uint32) uint32 {
	for i := n - 1; i >= 0; i-- {
		next := x[i]
		z[i] = (next >> bits) | (c << (32 - bits))
		c = next
	}
	return c << (32 - bits)
}

// Shift z down by one whole word; c enters as the new top word. The
// word shifted out is returned.
func ShiftDownWord(n int, z []uint32, c uint32) uint32 {
	for i := n - 1; i >= 0; i-- {
		next := z[i]
		z[i] = c
		c = next
	}
	return c
}
