package mpint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benjivesterby/go-mpint/raw"
)

// String and byte conversions.

// For a supported radix, get the number of digits processed at once and
// radix^digits (which fits in a word).
func radix_chunk(radix int) (int, uint32, bool) {
	switch radix {
	case 2:
		return 31, 1 << 31, true
	case 8:
		return 10, 1 << 30, true
	case 10:
		return 9, 1000000000, true
	case 16:
		return 7, 1 << 28, true
	default:
		return 0, 0, false
	}
}

// Parse s as an integer in the given radix (2, 8, 10 or 16). An optional
// leading '-' is accepted; no other sign, prefix or separator is.
// Hexadecimal digits may be in either case.
func Parse(s string, radix int) (*BigInteger, error) {
	chunk, _, ok := radix_chunk(radix)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported radix %d", ErrFormat, radix)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty string", ErrFormat)
	}
	sign := 1
	digits := s
	if digits[0] == '-' {
		sign = -1
		digits = digits[1:]
		if len(digits) == 0 {
			return nil, fmt.Errorf("%w: no digits after '-'", ErrFormat)
		}
	}

	// The first chunk takes the excess digits, so that all others have
	// exactly chunk digits.
	var acc []uint32
	k := len(digits) % chunk
	if k == 0 {
		k = chunk
	}
	for len(digits) > 0 {
		v, err := strconv.ParseUint(digits[:k], radix, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid digits in %q for radix %d", ErrFormat, s, radix)
		}
		mul := uint32(1)
		for i := 0; i < k; i++ {
			mul *= uint32(radix)
		}
		acc = le_mul_add(acc, mul, uint32(v))
		digits = digits[k:]
		k = chunk
	}
	return new_big(sign, le_to_mag(acc)), nil
}

// Set acc = acc*mul + add, growing acc as needed; add must be lower than
// mul.
func le_mul_add(acc []uint32, mul uint32, add uint32) []uint32 {
	acc = append(acc, 0)
	n := len(acc)
	acc[n-1] = raw.MulWord(n-1, mul, acc, acc)
	raw.AddWordAt(n, add, acc, 0)
	for len(acc) > 0 && acc[len(acc)-1] == 0 {
		acc = acc[:len(acc)-1]
	}
	return acc
}

// Get the representation of x in the given radix (2, 8, 10 or 16),
// lowercase, with a leading '-' for negative values. Panics on any other
// radix.
func (x *BigInteger) Text(radix int) string {
	chunk, mul, ok := radix_chunk(radix)
	if !ok {
		panic(fmt.Sprintf("mpint: unsupported radix %d", radix))
	}
	if x.sign == 0 {
		return "0"
	}

	var parts []uint32
	m := x.mag
	for len(m) > 0 {
		var r uint32
		m, r = mag_divmod_word(m, mul)
		parts = append(parts, r)
	}

	var sb strings.Builder
	if x.sign < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.FormatUint(uint64(parts[len(parts)-1]), radix))
	for i := len(parts) - 2; i >= 0; i-- {
		d := strconv.FormatUint(uint64(parts[i]), radix)
		for j := len(d); j < chunk; j++ {
			sb.WriteByte('0')
		}
		sb.WriteString(d)
	}
	return sb.String()
}

// Magnitude from unsigned big-endian bytes.
func bytes_to_mag(b []byte) []uint32 {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	b = b[i:]
	if len(b) == 0 {
		return nil
	}
	n := (len(b) + 3) >> 2
	z := make([]uint32, n)
	for j := 0; j < len(b); j++ {
		z[n-1-(j>>2)] |= uint32(b[len(b)-1-j]) << ((uint(j) & 3) << 3)
	}
	return z
}

// Write the low len(out) bytes of mag into out, big-endian.
func mag_to_bytes(mag []uint32, out []byte) {
	k := len(mag)
	for j := 0; j < len(out); j++ {
		w := j >> 2
		if w >= k {
			break
		}
		out[len(out)-1-j] = byte(mag[k-1-w] >> ((uint(j) & 3) << 3))
	}
}

func reverse_bytes(b []byte) []byte {
	r := make([]byte, len(b))
	for i, v := range b {
		r[len(b)-1-i] = v
	}
	return r
}

// Decode big-endian two's complement bytes.
func FromBytes(b []byte) (*BigInteger, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: zero-length encoding", ErrFormat)
	}
	n := (len(b) + 3) >> 2
	z := make([]uint32, n)
	if b[0]&0x80 != 0 {
		for i := range z {
			z[i] = 0xFFFFFFFF
		}
	}
	for j := 0; j < len(b); j++ {
		sh := (uint(j) & 3) << 3
		z[j>>2] &^= 0xFF << sh
		z[j>>2] |= uint32(b[len(b)-1-j]) << sh
	}
	return from_twos_le(z), nil
}

// Decode little-endian two's complement bytes.
func FromBytesLE(b []byte) (*BigInteger, error) {
	return FromBytes(reverse_bytes(b))
}

// Build a value from a sign (-1, 0 or +1) and an unsigned big-endian
// magnitude. A zero sign requires a zero magnitude; a zero magnitude
// yields zero whatever the sign.
func FromSignMagnitude(sign int, mag []byte) (*BigInteger, error) {
	if sign < -1 || sign > 1 {
		return nil, fmt.Errorf("%w: invalid sign %d", ErrFormat, sign)
	}
	m := bytes_to_mag(mag)
	if sign == 0 && len(m) != 0 {
		return nil, fmt.Errorf("%w: zero sign with non-zero magnitude", ErrFormat)
	}
	return new_big(sign, m), nil
}

// Like FromSignMagnitude, with a little-endian magnitude.
func FromSignMagnitudeLE(sign int, mag []byte) (*BigInteger, error) {
	return FromSignMagnitude(sign, reverse_bytes(mag))
}

// Build a non-negative value from little-endian 32-bit words.
func FromUint32ArrayLE(words []uint32) *BigInteger {
	return new_big(1, le_to_mag(words))
}

// Build a non-negative value from big-endian 32-bit words.
func FromUint32ArrayBE(words []uint32) *BigInteger {
	m := mag_strip(words)
	c := make([]uint32, len(m))
	copy(c, m)
	return new_big(1, c)
}

// Get the minimal big-endian two's complement encoding of x; its length
// is BitLength()/8 + 1 bytes (zero encodes as a single zero byte).
func (x *BigInteger) ToByteArray() []byte {
	nbytes := (x.BitLength() >> 3) + 1
	z := x.twos_le((nbytes + 3) >> 2)
	out := make([]byte, nbytes)
	for j := 0; j < nbytes; j++ {
		out[nbytes-1-j] = byte(z[j>>2] >> ((uint(j) & 3) << 3))
	}
	return out
}

// Get the minimal big-endian encoding of |x|, (bitlen(|x|)+7)/8 bytes
// (empty for zero).
func (x *BigInteger) ToByteArrayUnsigned() []byte {
	out := make([]byte, (mag_bitlen(x.mag)+7)>>3)
	mag_to_bytes(x.mag, out)
	return out
}

// Little-endian variant of ToByteArray.
func (x *BigInteger) ToByteArrayLE() []byte {
	return reverse_bytes(x.ToByteArray())
}

// Little-endian variant of ToByteArrayUnsigned.
func (x *BigInteger) ToByteArrayUnsignedLE() []byte {
	return reverse_bytes(x.ToByteArrayUnsigned())
}

// Get the unsigned big-endian encoding of x, left-padded with zeros to
// exactly length bytes. Fails if x is negative or does not fit.
func (x *BigInteger) AsUnsignedByteArray(length int) ([]byte, error) {
	if x.sign < 0 {
		return nil, fmt.Errorf("%w: negative value", ErrArgument)
	}
	if (mag_bitlen(x.mag)+7)>>3 > length {
		return nil, fmt.Errorf("%w: value does not fit in %d bytes", ErrArgument, length)
	}
	out := make([]byte, length)
	mag_to_bytes(x.mag, out)
	return out, nil
}

// Get x as (nbits+31)/32 little-endian words. Fails if x is negative or
// has more than nbits bits.
func (x *BigInteger) ToUint32ArrayLE(nbits int) ([]uint32, error) {
	if x.sign < 0 || x.BitLength() > nbits {
		return nil, fmt.Errorf("%w: value does not fit in %d bits", ErrArgument, nbits)
	}
	return mag_to_le(x.mag, (nbits+31)>>5), nil
}

// Big-endian variant of ToUint32ArrayLE.
func (x *BigInteger) ToUint32ArrayBE(nbits int) ([]uint32, error) {
	z, err := x.ToUint32ArrayLE(nbits)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(z)-1; i < j; i, j = i+1, j-1 {
		z[i], z[j] = z[j], z[i]
	}
	return z, nil
}
