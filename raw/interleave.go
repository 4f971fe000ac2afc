package raw

// Bit interleaving helpers, for binary-field callers (GF(2^m) squaring and
// the like). They are branch-free and do not depend on the rest of the
// package.

const m32e = uint64(0x55555555)
const m64e = uint64(0x5555555555555555)

// Swap the bit groups of x selected by m with the groups s positions
// above them. Mask m and m << s must not overlap.
func bitPermuteStep32(x uint32, m uint32, s uint) uint32 {
	t := (x ^ (x >> s)) & m
	return (t ^ (t << s)) ^ x
}

func bitPermuteStep64(x uint64, m uint64, s uint) uint64 {
	t := (x ^ (x >> s)) & m
	return (t ^ (t << s)) ^ x
}

// Spread the low 8 bits of x into the even positions of a 16-bit value
// (bit i goes to bit 2*i).
func Expand8to16(x uint32) uint32 {
	x &= 0xFF
	x = (x | (x << 4)) & 0x0F0F
	x = (x | (x << 2)) & 0x3333
	x = (x | (x << 1)) & 0x5555
	return x
}

// Spread the low 16 bits of x into the even positions of a 32-bit value.
func Expand16to32(x uint32) uint32 {
	x &= 0xFFFF
	x = (x | (x << 8)) & 0x00FF00FF
	x = (x | (x << 4)) & 0x0F0F0F0F
	x = (x | (x << 2)) & 0x33333333
	x = (x | (x << 1)) & 0x55555555
	return x
}

// Spread the 32 bits of x into the even positions of a 64-bit value.
func Expand32to64(x uint32) uint64 {
	// Shuffle: low half to even positions, high half to odd positions.
	x = bitPermuteStep32(x, 0x0000FF00, 8)
	x = bitPermuteStep32(x, 0x00F000F0, 4)
	x = bitPermuteStep32(x, 0x0C0C0C0C, 2)
	x = bitPermuteStep32(x, 0x22222222, 1)
	return (uint64((x>>1)&uint32(m32e)) << 32) | uint64(x&uint32(m32e))
}

// Spread the 64 bits of x into the even positions of a 128-bit value,
// written as two little-endian 64-bit words z[0] (low) and z[1] (high).
func Expand64To128(x uint64, z []uint64) {
	x = Shuffle(x)
	z[0] = x & m64e
	z[1] = (x >> 1) & m64e
}

// Variant of Expand64To128 for bit-reversed polynomial representations:
// the bits land on the odd positions (bit i of x goes to bit 2*i+1).
func Expand64To128Rev(x uint64, z []uint64) {
	x = Shuffle(x)
	z[0] = (x << 1) & ^m64e
	z[1] = x & ^m64e
}

// Outer perfect shuffle of a 64-bit word: bit i of the low half goes to
// bit 2*i, bit i of the high half goes to bit 2*i+1.
func Shuffle(x uint64) uint64 {
	x = bitPermuteStep64(x, 0x00000000FFFF0000, 16)
	x = bitPermuteStep64(x, 0x0000FF000000FF00, 8)
	x = bitPermuteStep64(x, 0x00F000F000F000F0, 4)
	x = bitPermuteStep64(x, 0x0C0C0C0C0C0C0C0C, 2)
	x = bitPermuteStep64(x, 0x2222222222222222, 1)
	return x
}

// 32-bit variant of Shuffle.
func Shuffle32(x uint32) uint32 {
	x = bitPermuteStep32(x, 0x0000FF00, 8)
	x = bitPermuteStep32(x, 0x00F000F0, 4)
	x = bitPermuteStep32(x, 0x0C0C0C0C, 2)
	x = bitPermuteStep32(x, 0x22222222, 1)
	return x
}

// Shuffle applied twice: each of the four 16-bit quarters is spread with
// a stride of 4 (bit i of quarter q goes to bit 4*i+q).
func Shuffle2(x uint64) uint64 {
	return Shuffle(Shuffle(x))
}

// Inverse of Shuffle: even bits go to the low half, odd bits to the high
// half.
func Unshuffle(x uint64) uint64 {
	x = bitPermuteStep64(x, 0x2222222222222222, 1)
	x = bitPermuteStep64(x, 0x0C0C0C0C0C0C0C0C, 2)
	x = bitPermuteStep64(x, 0x00F000F000F000F0, 4)
	x = bitPermuteStep64(x, 0x0000FF000000FF00, 8)
	x = bitPermuteStep64(x, 0x00000000FFFF0000, 16)
	return x
}

// 32-bit variant of Unshuffle.
func Unshuffle32(x uint32) uint32 {
	x = bitPermuteStep32(x, 0x22222222, 1)
	x = bitPermuteStep32(x, 0x0C0C0C0C, 2)
	x = bitPermuteStep32(x, 0x00F000F0, 4)
	x = bitPermuteStep32(x, 0x0000FF00, 8)
	return x
}

// Inverse of Shuffle2.
func Unshuffle2(x uint64) uint64 {
	return Unshuffle(Unshuffle(x))
}

// Transpose x seen as an 8x8 bit matrix (byte i is row i, bit j of a row
// is column j).
func Transpose(x uint64) uint64 {
	x = bitPermuteStep64(x, 0x00AA00AA00AA00AA, 7)
	x = bitPermuteStep64(x, 0x0000CCCC0000CCCC, 14)
	x = bitPermuteStep64(x, 0x00000000F0F0F0F0, 28)
	return x
}
