package mpint

import (
	"errors"
	"fmt"
	"hash"
)

// Shawe-Taylor provable prime generation (FIPS 186-4 C.6).

// Result of GenerateSTRandomPrime.
type STOutput struct {
	prime           *BigInteger
	primeSeed       []byte
	primeGenCounter int
}

func (o *STOutput) Prime() *BigInteger {
	return o.prime
}

// Get the seed value after generation; it can feed a further
// construction.
func (o *STOutput) PrimeSeed() []byte {
	return o.primeSeed
}

func (o *STOutput) PrimeGenCounter() int {
	return o.primeGenCounter
}

// Generate a provable prime of exactly length bits from inputSeed, using
// h as the hash function. The output is fully determined by the hash
// function, the length and the seed; inputSeed itself is not modified.
func GenerateSTRandomPrime(h hash.Hash, length int, inputSeed []byte) (*STOutput, error) {
	if h == nil {
		return nil, errors.New("mpint: nil hash")
	}
	if length < 2 {
		return nil, fmt.Errorf("%w: length must be >= 2", ErrArgument)
	}
	if len(inputSeed) == 0 {
		return nil, fmt.Errorf("%w: input seed cannot be empty", ErrArgument)
	}
	seed := make([]byte, len(inputSeed))
	copy(seed, inputSeed)
	return st_random_prime(h, length, seed)
}

// Recursive construction. The seed is a big-endian counter, advanced in
// place by every hash invocation, and shared with the caller.
func st_random_prime(h hash.Hash, length int, seed []byte) (*STOutput, error) {
	dLen := h.Size()

	if length < 33 {
		counter := 0
		c0 := make([]byte, dLen)
		c1 := make([]byte, dLen)
		for {
			st_hash(h, seed, c0, 0)
			st_inc(seed, 1)
			st_hash(h, seed, c1, 0)
			st_inc(seed, 1)

			c := extract32(c0) ^ extract32(c1)
			c &= 0xFFFFFFFF >> uint(32-length)
			c |= (1 << uint(length-1)) | 1
			counter++
			if is_prime32(c) {
				return &STOutput{
					prime:           ValueOf(int64(c)),
					primeSeed:       seed,
					primeGenCounter: counter,
				}, nil
			}
			if counter > 4*length {
				return nil, fmt.Errorf("%w: Shawe-Taylor base case", ErrIterationLimit)
			}
		}
	}

	rec, err := st_random_prime(h, (length+3)/2, seed)
	if err != nil {
		return nil, err
	}
	c0 := rec.prime
	seed = rec.primeSeed
	counter := rec.primeGenCounter

	outlen := 8 * dLen
	iterations := (length - 1) / outlen
	oldCounter := counter

	top := One.ShiftLeft(length - 1)
	x, _ := st_hash_gen(h, seed, iterations+1).Mod(top)
	x = x.SetBit(length - 1)

	c0x2 := c0.ShiftLeft(1)
	t, _ := x.Subtract(One).Divide(c0x2)
	tx2 := t.Add(One).ShiftLeft(1)
	dt := 0
	c := tx2.Multiply(c0).Add(One)
	for {
		if c.BitLength() > length {
			t, _ = top.Subtract(One).Divide(c0x2)
			tx2 = t.Add(One).ShiftLeft(1)
			c = tx2.Multiply(c0).Add(One)
		}
		counter++

		if !has_any_small_factors(c) {
			a, _ := st_hash_gen(h, seed, iterations+1).Mod(c.Subtract(Three))
			a = a.Add(Two)
			tx2 = tx2.Add(ValueOf(int64(dt)))
			dt = 0
			z, _ := a.ModPow(tx2, c)
			if c.Gcd(z.Subtract(One)).Equal(One) {
				if zc, _ := z.ModPow(c0, c); zc.Equal(One) {
					return &STOutput{
						prime:           c,
						primeSeed:       seed,
						primeGenCounter: counter,
					}, nil
				}
			}
		} else {
			// Skip the hash outputs that the test would have consumed.
			st_inc(seed, iterations+1)
		}

		if counter >= 4*length+oldCounter {
			return nil, fmt.Errorf("%w: Shawe-Taylor at %d bits", ErrIterationLimit, length)
		}
		dt += 2
		c = c.Add(c0x2)
	}
}

// Hash of seed into out[pos:].
func st_hash(h hash.Hash, seed []byte, out []byte, pos int) {
	h.Reset()
	h.Write(seed)
	copy(out[pos:], h.Sum(nil))
}

// Concatenation of count successive hashes (the first one last), as a
// non-negative integer; the seed is advanced count times.
func st_hash_gen(h hash.Hash, seed []byte, count int) *BigInteger {
	dLen := h.Size()
	pos := count * dLen
	buf := make([]byte, pos)
	for i := 0; i < count; i++ {
		pos -= dLen
		st_hash(h, seed, buf, pos)
		st_inc(seed, 1)
	}
	return new_big(1, bytes_to_mag(buf))
}

// Add c to seed, as a big-endian counter (wrapping around).
func st_inc(seed []byte, c int) {
	for pos := len(seed) - 1; c > 0 && pos >= 0; pos-- {
		c += int(seed[pos])
		seed[pos] = byte(c)
		c >>= 8
	}
}

// Last (up to) four bytes, big-endian.
func extract32(b []byte) uint32 {
	r := uint32(0)
	n := min(4, len(b))
	for i := 0; i < n; i++ {
		r |= uint32(b[len(b)-1-i]) << (uint(i) << 3)
	}
	return r
}

// Deterministic primality of a 32-bit value: trial division by the
// integers coprime to 30, up to the square root.
func is_prime32(x uint32) bool {
	if x < 32 {
		// Primes below 32.
		return (uint32(0xA08A28AC)>>x)&1 != 0
	}
	// Residues modulo 30 that are coprime to 30.
	if (uint32(0x208A2882)>>(x%30))&1 == 0 {
		return false
	}
	ds := [...]uint32{1, 7, 11, 13, 17, 19, 23, 29}
	b := uint32(0)
	for pos := 1; ; pos = 0 {
		for ; pos < len(ds); pos++ {
			if x%(b+ds[pos]) == 0 {
				return false
			}
		}
		b += 30
		if b>>16 != 0 || b*b >= x {
			return true
		}
	}
}
