package mpint

import (
	"encoding/binary"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// Deterministic test stream.
func test_source(name string) io.Reader {
	return new_shake256x4([]byte(name))
}

func to_big(x *BigInteger) *big.Int {
	b := new(big.Int).SetBytes(x.ToByteArrayUnsigned())
	if x.Sign() < 0 {
		b.Neg(b)
	}
	return b
}

func from_big(t testing.TB, b *big.Int) *BigInteger {
	x, err := FromSignMagnitude(b.Sign(), b.Bytes())
	require.NoError(t, err)
	return x
}

func must_parse(t testing.TB, s string) *BigInteger {
	x, err := Parse(s, 10)
	require.NoError(t, err)
	return x
}

// Random value of up to maxbits bits, with a random sign.
func rand_int(t testing.TB, rng io.Reader, maxbits int) *BigInteger {
	var b [3]byte
	_, err := io.ReadFull(rng, b[:])
	require.NoError(t, err)
	nbits := int(binary.LittleEndian.Uint16(b[:2])) % (maxbits + 1)
	x, err := NewRandom(nbits, rng)
	require.NoError(t, err)
	if b[2]&1 != 0 {
		x = x.Negate()
	}
	return x
}

func require_same(t testing.TB, want *big.Int, got *BigInteger, msgAndArgs ...interface{}) {
	require.Equal(t, want.String(), to_big(got).String(), msgAndArgs...)
}

func TestFixedVectors(t *testing.T) {
	r, err := must_parse(t, "123456789012345678901234567890").Mod(must_parse(t, "97"))
	require.NoError(t, err)
	require.True(t, r.Equal(ValueOf(52)), "got %v", r)

	r, err = ValueOf(2).ModPow(ValueOf(10), ValueOf(1000))
	require.NoError(t, err)
	require.True(t, r.Equal(ValueOf(24)), "got %v", r)

	r, err = ValueOf(3).ModInverse(ValueOf(11))
	require.NoError(t, err)
	require.True(t, r.Equal(ValueOf(4)), "got %v", r)

	require.True(t, ValueOf(252).Gcd(ValueOf(105)).Equal(ValueOf(21)))

	require.True(t, ValueOf(17).IsProbablePrime(80))
	require.False(t, ValueOf(15).IsProbablePrime(80))

	require.True(t, ValueOf(1).ShiftLeft(10).Equal(ValueOf(1024)))
	require.True(t, ValueOf(-1).ShiftRight(1).Equal(ValueOf(-1)))
}

func TestValueOf(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 16, 17, -17, 1 << 31, -(1 << 31), 1 << 32,
		1<<63 - 1, -1 << 63} {
		x := ValueOf(v)
		require.Equal(t, big.NewInt(v).String(), x.String())
		require.Equal(t, v, x.LongValue())
		got, err := x.LongValueExact()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
	require.Same(t, Ten, ValueOf(10))
	require.Equal(t, 0, Zero.Sign())
	require.Equal(t, 0, (&BigInteger{}).Compare(Zero))
}

func TestNewRandom(t *testing.T) {
	rng := test_source("new-random")
	for nbits := 0; nbits < 200; nbits++ {
		x, err := NewRandom(nbits, rng)
		require.NoError(t, err)
		require.GreaterOrEqual(t, x.Sign(), 0)
		require.LessOrEqual(t, x.BitLength(), nbits)
	}
	_, err := NewRandom(-1, rng)
	require.True(t, errors.Is(err, ErrArgument))

	// With the system source.
	x, err := NewRandom(1000, nil)
	require.NoError(t, err)
	require.LessOrEqual(t, x.BitLength(), 1000)
}

func TestAccessors(t *testing.T) {
	require.Equal(t, 0, ValueOf(-1).BitCount())
	require.Equal(t, 3, ValueOf(-8).BitCount())
	require.Equal(t, 3, ValueOf(7).BitCount())
	require.Equal(t, 0, Zero.BitLength())
	require.Equal(t, 7, ValueOf(-128).BitLength())
	require.Equal(t, 8, ValueOf(-129).BitLength())
	require.Equal(t, 8, ValueOf(128).BitLength())
	require.Equal(t, -1, Zero.LowestSetBit())
	require.Equal(t, 3, ValueOf(-24).LowestSetBit())

	require.Equal(t, int32(-1), ValueOf(-1).IntValue())
	require.Equal(t, int32(0), ValueOf(1<<40).IntValue())
	require.Equal(t, int64(5), One.ShiftLeft(64).Add(ValueOf(5)).LongValue())
	require.Equal(t, int64(-5), One.ShiftLeft(64).Add(ValueOf(5)).Negate().LongValue())

	v, err := ValueOf(-1 << 31).IntValueExact()
	require.NoError(t, err)
	require.Equal(t, int32(-1<<31), v)
	_, err = ValueOf(1 << 31).IntValueExact()
	require.True(t, errors.Is(err, ErrOverflow))
	_, err = One.ShiftLeft(63).LongValueExact()
	require.True(t, errors.Is(err, ErrOverflow))
	_, err = One.ShiftLeft(63).Negate().Subtract(One).LongValueExact()
	require.True(t, errors.Is(err, ErrOverflow))

	mask64 := new(big.Int).SetUint64(^uint64(0))
	rng := test_source("accessors")
	for i := 0; i < 500; i++ {
		x := rand_int(t, rng, 300)
		bx := to_big(x)
		want := bx.BitLen()
		if bx.Sign() < 0 {
			want = new(big.Int).Sub(new(big.Int).Neg(bx), big.NewInt(1)).BitLen()
		}
		require.Equal(t, want, x.BitLength())
		require.Equal(t, want, x.BitLength(), "memoized")
		if x.Sign() != 0 {
			require.Equal(t, int(new(big.Int).Abs(bx).TrailingZeroBits()), x.LowestSetBit())
		}
		low := new(big.Int).And(bx, mask64).Uint64()
		require.Equal(t, int64(low), x.LongValue())
		require.Equal(t, int32(low), x.IntValue())
	}
}

func TestCompare(t *testing.T) {
	rng := test_source("compare")
	for i := 0; i < 500; i++ {
		x := rand_int(t, rng, 100)
		y := rand_int(t, rng, 100)
		c := to_big(x).Cmp(to_big(y))
		require.Equal(t, c, x.Compare(y))
		require.Equal(t, c == 0, x.Equal(y))
		if c < 0 {
			require.Same(t, x, x.Min(y))
			require.Same(t, y, x.Max(y))
		}
		require.Equal(t, 0, x.Compare(x.Negate().Negate()))
	}
}

func TestRingLaws(t *testing.T) {
	rng := test_source("ring-laws")
	for i := 0; i < 1000; i++ {
		a := rand_int(t, rng, 400)
		b := rand_int(t, rng, 400)
		c := rand_int(t, rng, 400)
		ba, bb, bc := to_big(a), to_big(b), to_big(c)

		require.True(t, a.Add(b).Equal(b.Add(a)))
		require.True(t, a.Add(b).Subtract(b).Equal(a))
		require.True(t, a.Multiply(b.Add(c)).Equal(a.Multiply(b).Add(a.Multiply(c))))

		require_same(t, new(big.Int).Add(ba, bb), a.Add(b))
		require_same(t, new(big.Int).Sub(ba, bc), a.Subtract(c))
		require_same(t, new(big.Int).Mul(ba, bb), a.Multiply(b))
		require_same(t, new(big.Int).Mul(ba, ba), a.Square())
		require_same(t, new(big.Int).Mul(ba, ba), a.Multiply(a))
		require_same(t, new(big.Int).Abs(ba), a.Abs())
		require_same(t, new(big.Int).Neg(ba), a.Negate())
	}
}

func TestMultiplyPowerOfTwo(t *testing.T) {
	rng := test_source("mul-pow2")
	for i := 0; i < 200; i++ {
		a := rand_int(t, rng, 300)
		k := i % 130
		p := One.ShiftLeft(k)
		if i&1 != 0 {
			p = p.Negate()
		}
		want := new(big.Int).Mul(to_big(a), to_big(p))
		require_same(t, want, a.Multiply(p))
		require_same(t, want, p.Multiply(a))
		require_same(t, new(big.Int).Mul(to_big(p), to_big(p)), p.Square())
	}
}

func TestPow(t *testing.T) {
	rng := test_source("pow")
	for i := 0; i < 100; i++ {
		a := rand_int(t, rng, 100)
		e := uint(i % 23)
		require_same(t, new(big.Int).Exp(to_big(a), big.NewInt(int64(e)), nil), a.Pow(e))
	}
	require.True(t, ValueOf(-2).Pow(5).Equal(ValueOf(-32)))
	require.True(t, ValueOf(-4).Pow(4).Equal(ValueOf(256)))
	require.True(t, Zero.Pow(0).Equal(One))
}

func TestDivision(t *testing.T) {
	rng := test_source("division")
	for i := 0; i < 1000; i++ {
		a := rand_int(t, rng, 500)
		b := rand_int(t, rng, 300)
		if b.Sign() == 0 {
			continue
		}
		ba, bb := to_big(a), to_big(b)

		q, err := a.Divide(b)
		require.NoError(t, err)
		r, err := a.Remainder(b)
		require.NoError(t, err)
		require.True(t, a.Equal(b.Multiply(q).Add(r)))
		require.True(t, r.Sign() == 0 || r.Sign() == a.Sign())
		require_same(t, new(big.Int).Quo(ba, bb), q)
		require_same(t, new(big.Int).Rem(ba, bb), r)

		q2, r2, err := a.DivideAndRemainder(b)
		require.NoError(t, err)
		require.True(t, q.Equal(q2))
		require.True(t, r.Equal(r2))

		m := b.Abs()
		md, err := a.Mod(m)
		require.NoError(t, err)
		require.GreaterOrEqual(t, md.Sign(), 0)
		require_same(t, new(big.Int).Mod(ba, new(big.Int).Abs(bb)), md)
	}
}

func TestDivisionEdgeCases(t *testing.T) {
	_, err := One.Divide(Zero)
	require.True(t, errors.Is(err, ErrDivisionByZero))
	_, err = One.Remainder(Zero)
	require.True(t, errors.Is(err, ErrDivisionByZero))
	_, _, err = One.DivideAndRemainder(Zero)
	require.True(t, errors.Is(err, ErrDivisionByZero))
	_, err = One.Mod(Zero)
	require.True(t, errors.Is(err, ErrArgument))
	_, err = One.Mod(ValueOf(-3))
	require.True(t, errors.Is(err, ErrArgument))

	// Power-of-two divisors.
	for k := 0; k < 100; k += 7 {
		p := One.ShiftLeft(k)
		a := ValueOf(-123456789).Multiply(ValueOf(987654321)).ShiftLeft(40).Add(ValueOf(77))
		q, r, err := a.DivideAndRemainder(p)
		require.NoError(t, err)
		require_same(t, new(big.Int).Quo(to_big(a), to_big(p)), q)
		require_same(t, new(big.Int).Rem(to_big(a), to_big(p)), r)
	}
}

func TestGcd(t *testing.T) {
	require.True(t, Zero.Gcd(Zero).Equal(Zero))
	require.True(t, Zero.Gcd(ValueOf(-6)).Equal(ValueOf(6)))
	rng := test_source("gcd")
	for i := 0; i < 300; i++ {
		a := rand_int(t, rng, 200)
		b := rand_int(t, rng, 200)
		c := rand_int(t, rng, 100)
		a = a.Multiply(c)
		b = b.Multiply(c)
		want := new(big.Int).GCD(nil, nil, new(big.Int).Abs(to_big(a)), new(big.Int).Abs(to_big(b)))
		require_same(t, want, a.Gcd(b))
	}
}

func TestShifts(t *testing.T) {
	rng := test_source("shifts")
	for i := 0; i < 500; i++ {
		a := rand_int(t, rng, 300)
		n := i % 150
		ba := to_big(a)
		require_same(t, new(big.Int).Lsh(ba, uint(n)), a.ShiftLeft(n))
		require_same(t, new(big.Int).Rsh(ba, uint(n)), a.ShiftRight(n))
		require_same(t, new(big.Int).Lsh(ba, uint(n)), a.ShiftRight(-n))
		require_same(t, new(big.Int).Rsh(ba, uint(n)), a.ShiftLeft(-n))
	}
}

func TestBitwise(t *testing.T) {
	rng := test_source("bitwise")
	for i := 0; i < 1000; i++ {
		a := rand_int(t, rng, 200)
		b := rand_int(t, rng, 200)
		ba, bb := to_big(a), to_big(b)
		require_same(t, new(big.Int).And(ba, bb), a.And(b))
		require_same(t, new(big.Int).Or(ba, bb), a.Or(b))
		require_same(t, new(big.Int).Xor(ba, bb), a.Xor(b))
		require_same(t, new(big.Int).AndNot(ba, bb), a.AndNot(b))
		require_same(t, new(big.Int).Not(ba), a.Not())

		n := i % 230
		require.Equal(t, ba.Bit(n) == 1, a.TestBit(n))
		require_same(t, new(big.Int).SetBit(ba, n, 1), a.SetBit(n))
		require_same(t, new(big.Int).SetBit(ba, n, 0), a.ClearBit(n))
		require_same(t, new(big.Int).SetBit(ba, n, ba.Bit(n)^1), a.FlipBit(n))
	}
	require.Panics(t, func() { One.TestBit(-1) })
	require.Panics(t, func() { One.SetBit(-1) })
	require.Panics(t, func() { One.FlipBit(-1) })
}

func TestParseText(t *testing.T) {
	rng := test_source("parse-text")
	for i := 0; i < 500; i++ {
		a := rand_int(t, rng, 400)
		for _, radix := range []int{2, 8, 10, 16} {
			s := a.Text(radix)
			require.Equal(t, to_big(a).Text(radix), s)
			b, err := Parse(s, radix)
			require.NoError(t, err)
			require.True(t, a.Equal(b), "radix %d: %s", radix, s)
		}
	}

	x, err := Parse("00012", 10)
	require.NoError(t, err)
	require.True(t, x.Equal(ValueOf(12)))
	x, err = Parse("-0", 10)
	require.NoError(t, err)
	require.Equal(t, 0, x.Sign())
	x, err = Parse("FfeE", 16)
	require.NoError(t, err)
	require.True(t, x.Equal(ValueOf(0xFFEE)))
	require.Equal(t, "-ffee", x.Negate().Text(16))
	require.Equal(t, "0", Zero.String())

	for _, tc := range []struct {
		s     string
		radix int
	}{
		{"", 10}, {"-", 10}, {"+1", 10}, {"12a", 10}, {"0x1f", 16},
		{"2", 2}, {"8", 8}, {"1 2", 10}, {"1_000", 10}, {"12", 7}, {"12", 36},
	} {
		_, err := Parse(tc.s, tc.radix)
		require.True(t, errors.Is(err, ErrFormat), "%q radix %d", tc.s, tc.radix)
	}
	require.Panics(t, func() { _ = One.Text(3) })
}

func TestByteArrays(t *testing.T) {
	for _, tc := range []struct {
		v   int64
		enc []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0xFF}},
		{127, []byte{0x7F}},
		{128, []byte{0x00, 0x80}},
		{255, []byte{0x00, 0xFF}},
		{-128, []byte{0x80}},
		{-129, []byte{0xFF, 0x7F}},
		{0x01020304, []byte{0x01, 0x02, 0x03, 0x04}},
		{-0x01020304, []byte{0xFE, 0xFD, 0xFC, 0xFC}},
	} {
		x := ValueOf(tc.v)
		require.Equal(t, tc.enc, x.ToByteArray(), "%d", tc.v)
		y, err := FromBytes(tc.enc)
		require.NoError(t, err)
		require.True(t, x.Equal(y), "%d", tc.v)
	}

	rng := test_source("byte-arrays")
	for i := 0; i < 1000; i++ {
		a := rand_int(t, rng, 300)

		enc := a.ToByteArray()
		require.Len(t, enc, a.BitLength()/8+1)
		b, err := FromBytes(enc)
		require.NoError(t, err)
		require.True(t, a.Equal(b))

		b, err = FromBytesLE(a.ToByteArrayLE())
		require.NoError(t, err)
		require.True(t, a.Equal(b))

		mag := a.ToByteArrayUnsigned()
		require.Equal(t, new(big.Int).Abs(to_big(a)).Bytes(), mag)
		b, err = FromSignMagnitude(a.Sign(), mag)
		require.NoError(t, err)
		require.True(t, a.Equal(b))

		b, err = FromSignMagnitudeLE(a.Sign(), a.ToByteArrayUnsignedLE())
		require.NoError(t, err)
		require.True(t, a.Equal(b))
		require.True(t, a.Equal(from_big(t, to_big(a))))
	}

	_, err := FromBytes(nil)
	require.True(t, errors.Is(err, ErrFormat))
	_, err = FromSignMagnitude(2, []byte{1})
	require.True(t, errors.Is(err, ErrFormat))
	_, err = FromSignMagnitude(0, []byte{1})
	require.True(t, errors.Is(err, ErrFormat))
	x, err := FromSignMagnitude(-1, []byte{0, 0})
	require.NoError(t, err)
	require.Equal(t, 0, x.Sign())
	x, err = FromSignMagnitude(-1, []byte{0, 0, 1, 0})
	require.NoError(t, err)
	require.True(t, x.Equal(ValueOf(-256)))
	require.Empty(t, Zero.ToByteArrayUnsigned())
}

func TestFixedLengthExport(t *testing.T) {
	x := ValueOf(0x0102)
	b, err := x.AsUnsignedByteArray(4)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 1, 2}, b)
	b, err = x.AsUnsignedByteArray(2)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, b)
	_, err = x.AsUnsignedByteArray(1)
	require.True(t, errors.Is(err, ErrArgument))
	_, err = x.Negate().AsUnsignedByteArray(4)
	require.True(t, errors.Is(err, ErrArgument))

	y := One.ShiftLeft(40).Add(ValueOf(3))
	le, err := y.ToUint32ArrayLE(64)
	require.NoError(t, err)
	require.Equal(t, []uint32{3, 0x100}, le)
	be, err := y.ToUint32ArrayBE(96)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 0x100, 3}, be)
	_, err = y.ToUint32ArrayLE(40)
	require.True(t, errors.Is(err, ErrArgument))
	_, err = y.Negate().ToUint32ArrayLE(64)
	require.True(t, errors.Is(err, ErrArgument))

	require.True(t, FromUint32ArrayLE(le).Equal(y))
	require.True(t, FromUint32ArrayBE(be).Equal(y))
	require.Equal(t, 0, FromUint32ArrayLE([]uint32{0, 0}).Sign())

	// Imported words are copied.
	w := []uint32{5}
	z := FromUint32ArrayBE(w)
	w[0] = 6
	require.True(t, z.Equal(ValueOf(5)))
}

func FuzzRingLaws(f *testing.F) {
	f.Add([]byte{0x01}, []byte{0xFF}, []byte{0x00})
	f.Add([]byte{0x80, 0, 0, 0, 0}, []byte{0x7F, 0xFF, 0xFF, 0xFF}, []byte{0x12, 0x34})
	f.Fuzz(func(t *testing.T, ea []byte, eb []byte, ec []byte) {
		if len(ea) == 0 || len(eb) == 0 || len(ec) == 0 {
			return
		}
		a, _ := FromBytes(ea)
		b, _ := FromBytes(eb)
		c, _ := FromBytes(ec)
		require.True(t, a.Add(b).Equal(b.Add(a)))
		require.True(t, a.Add(b).Subtract(b).Equal(a))
		require.True(t, a.Multiply(b.Add(c)).Equal(a.Multiply(b).Add(a.Multiply(c))))
		if b.Sign() != 0 {
			q, r, err := a.DivideAndRemainder(b)
			require.NoError(t, err)
			require.True(t, a.Equal(b.Multiply(q).Add(r)))
			require.Equal(t, -1, r.Abs().Compare(b.Abs()))
		}
	})
}
