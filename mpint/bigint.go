package mpint

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync/atomic"
)

// An arbitrary-precision signed integer. Values are immutable and must be
// handled through pointers; the zero value of the struct is not a valid
// integer (use Zero).
type BigInteger struct {
	// -1, 0 or +1; 0 if and only if mag is empty.
	sign int

	// Big-endian magnitude words, no leading zero word.
	mag []uint32

	// Memoized BitLength() and BitCount(), stored plus one so that 0
	// means "not computed yet". Recomputing is harmless, hence plain
	// atomic loads and stores.
	nbits     atomic.Int32
	nbitcount atomic.Int32
}

var small_constants = func() (tab [17]*BigInteger) {
	for i := range tab {
		tab[i] = from_uint64(1, uint64(i))
	}
	return
}()

var (
	Zero  = small_constants[0]
	One   = small_constants[1]
	Two   = small_constants[2]
	Three = small_constants[3]
	Four  = small_constants[4]
	Ten   = small_constants[10]
)

// Build a value from a sign and a big-endian magnitude; leading zero words
// are ignored and a zero magnitude forces the sign to 0. The magnitude
// slice is retained.
func new_big(sign int, mag []uint32) *BigInteger {
	mag = mag_strip(mag)
	if len(mag) == 0 {
		return &BigInteger{}
	}
	return &BigInteger{sign: sign, mag: mag}
}

func from_uint64(sign int, u uint64) *BigInteger {
	return new_big(sign, []uint32{uint32(u >> 32), uint32(u)})
}

// Get the BigInteger with value v.
func ValueOf(v int64) *BigInteger {
	if v >= 0 && v < int64(len(small_constants)) {
		return small_constants[v]
	}
	if v < 0 {
		return from_uint64(-1, -uint64(v))
	}
	return from_uint64(1, uint64(v))
}

// Get a uniformly random non-negative value of at most nbits bits.
func NewRandom(nbits int, rng io.Reader) (*BigInteger, error) {
	if nbits < 0 {
		return nil, fmt.Errorf("%w: negative bit length %d", ErrArgument, nbits)
	}
	if nbits == 0 {
		return Zero, nil
	}
	if rng == nil {
		rng = rand.Reader
	}
	b := make([]byte, (nbits+7)>>3)
	if _, err := io.ReadFull(rng, b); err != nil {
		return nil, err
	}
	b[0] &= byte(0xFF >> uint((len(b)<<3)-nbits))
	return new_big(1, bytes_to_mag(b)), nil
}

// Get the sign of x: -1, 0 or +1.
func (x *BigInteger) Sign() int {
	return x.sign
}

// Get the number of bits in the minimal two's complement representation
// of x, excluding the sign bit. For non-negative x this is the position
// of the top set bit plus one; for negative x it is the bit length of
// -x-1 (so -2^k has bit length k).
func (x *BigInteger) BitLength() int {
	if v := x.nbits.Load(); v != 0 {
		return int(v - 1)
	}
	n := 0
	if x.sign != 0 {
		n = mag_bitlen(x.mag)
		if x.sign < 0 && mag_is_pow2(x.mag) {
			n--
		}
	}
	x.nbits.Store(int32(n + 1))
	return n
}

// Get the number of bits in the two's complement representation of x
// that differ from its sign bit.
func (x *BigInteger) BitCount() int {
	if v := x.nbitcount.Load(); v != 0 {
		return int(v - 1)
	}
	n := 0
	switch {
	case x.sign > 0:
		n = mag_popcount(x.mag)
	case x.sign < 0:
		n = mag_popcount(mag_dec(x.mag))
	}
	x.nbitcount.Store(int32(n + 1))
	return n
}

// Get the index of the lowest set bit of x (-1 if x is zero). The lowest
// set bit is the same for x and -x.
func (x *BigInteger) LowestSetBit() int {
	if x.sign == 0 {
		return -1
	}
	return mag_lowbit(x.mag)
}

// Get the low 32 bits of x (two's complement).
func (x *BigInteger) IntValue() int32 {
	if x.sign == 0 {
		return 0
	}
	v := x.mag[len(x.mag)-1]
	if x.sign < 0 {
		v = -v
	}
	return int32(v)
}

// Get the low 64 bits of x (two's complement).
func (x *BigInteger) LongValue() int64 {
	if x.sign == 0 {
		return 0
	}
	n := len(x.mag)
	v := uint64(x.mag[n-1])
	if n > 1 {
		v |= uint64(x.mag[n-2]) << 32
	}
	if x.sign < 0 {
		v = -v
	}
	return int64(v)
}

// Get x as an int32, or ErrOverflow if it does not fit.
func (x *BigInteger) IntValueExact() (int32, error) {
	if x.BitLength() > 31 {
		return 0, fmt.Errorf("%w: int32", ErrOverflow)
	}
	return x.IntValue(), nil
}

// Get x as an int64, or ErrOverflow if it does not fit.
func (x *BigInteger) LongValueExact() (int64, error) {
	if x.BitLength() > 63 {
		return 0, fmt.Errorf("%w: int64", ErrOverflow)
	}
	return x.LongValue(), nil
}

// Compare x and y; returns -1, 0 or +1.
func (x *BigInteger) Compare(y *BigInteger) int {
	if x.sign != y.sign {
		if x.sign < y.sign {
			return -1
		}
		return 1
	}
	c := mag_cmp(x.mag, y.mag)
	if x.sign < 0 {
		return -c
	}
	return c
}

// Report whether x and y have the same value.
func (x *BigInteger) Equal(y *BigInteger) bool {
	if x == y {
		return true
	}
	return x.sign == y.sign && mag_cmp(x.mag, y.mag) == 0
}

// Get the decimal representation of x.
func (x *BigInteger) String() string {
	return x.Text(10)
}
