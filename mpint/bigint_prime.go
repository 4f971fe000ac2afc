package mpint

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/benjivesterby/go-mpint/raw"
)

// Probabilistic primality on BigInteger: trial division by the small odd
// primes, then Rabin-Miller in the Montgomery domain.

// Highest small prime used for trial division.
const small_prime_bound = 1024

// Consecutive odd primes (starting at 3) grouped so that the product of
// each group fits in 31 bits; one word remainder per group then serves
// all its primes.
var prime_lists, prime_products = func() ([][]uint32, []uint32) {
	sieve := make([]bool, small_prime_bound)
	var lists [][]uint32
	var products []uint32
	var cur []uint32
	prod := uint64(1)
	for p := 3; p < small_prime_bound; p += 2 {
		if sieve[p] {
			continue
		}
		for q := p * p; q < small_prime_bound; q += 2 * p {
			sieve[q] = true
		}
		if prod*uint64(p) >= 1<<31 {
			lists = append(lists, cur)
			products = append(products, uint32(prod))
			cur = nil
			prod = 1
		}
		cur = append(cur, uint32(p))
		prod *= uint64(p)
	}
	lists = append(lists, cur)
	products = append(products, uint32(prod))
	return lists, products
}()

// Report whether x is probably prime. The sign of x is ignored. A
// composite is reported as prime with probability at most 2^-certainty;
// a non-positive certainty always yields true. Witnesses are drawn from
// an internal SHAKE256 stream.
func (x *BigInteger) IsProbablePrime(certainty int) bool {
	return x.IsProbablePrimeRand(certainty, nil)
}

// Like IsProbablePrime, drawing witnesses from rng (the internal stream
// if nil). If rng fails, the value is reported as not prime.
func (x *BigInteger) IsProbablePrimeRand(certainty int, rng io.Reader) bool {
	if certainty <= 0 {
		return true
	}
	n := x.Abs()
	if !n.TestBit(0) {
		return n.Equal(Two)
	}
	if n.Equal(One) {
		return false
	}
	if rng == nil {
		rng = default_source()
	}
	ok, err := n.check_probable_prime(certainty, rng, false)
	return ok && err == nil
}

// x is odd and greater than 1.
func (x *BigInteger) check_probable_prime(certainty int, rng io.Reader, randomlySelected bool) (bool, error) {
	n := x
	numLists := min(n.BitLength()-1, len(prime_lists))
	for i := 0; i < numLists; i++ {
		r := mag_mod_word(n.mag, prime_products[i])
		for _, p := range prime_lists[i] {
			if r%p == 0 {
				return len(n.mag) == 1 && n.mag[0] == p, nil
			}
		}
	}

	// No factor up to pmax, the last prime tested: below pmax^2 that
	// settles it.
	if numLists > 0 {
		last := prime_lists[numLists-1]
		pmax := uint64(last[len(last)-1])
		if n.BitLength() <= 40 && uint64(n.LongValue()) < pmax*pmax {
			return true, nil
		}
	}
	return n.rabin_miller(certainty, rng, randomlySelected)
}

// Number of Rabin-Miller rounds for a given certainty. Candidates drawn
// uniformly at random need fewer rounds for the same error bound.
func rabin_miller_iterations(bits int, certainty int, randomlySelected bool) int {
	iterations := ((certainty - 1) / 2) + 1
	if randomlySelected {
		var itersFor100 int
		switch {
		case bits >= 1024:
			itersFor100 = 4
		case bits >= 512:
			itersFor100 = 8
		case bits >= 256:
			itersFor100 = 16
		default:
			itersFor100 = 50
		}
		if certainty < 100 {
			iterations = min(itersFor100, iterations)
		} else {
			iterations = iterations - 50 + itersFor100
		}
	}
	return iterations
}

// Rabin-Miller state for an odd n > 3: n - 1 = d*2^s, and the Montgomery
// representatives of 1 and -1.
type rm_context struct {
	n      *BigInteger
	mt     *monty
	d      *BigInteger
	s      int
	radix  []uint32 // R mod n
	mradix []uint32 // n - R mod n
	nbits  int
}

func new_rm_context(n *BigInteger) *rm_context {
	nm1 := n.Subtract(One)
	s := nm1.LowestSetBit()
	mt := new_monty(n)
	r, _ := One.ShiftLeft(32 * mt.n).Remainder(n)
	return &rm_context{
		n:      n,
		mt:     mt,
		d:      nm1.ShiftRight(s),
		s:      s,
		radix:  mag_to_le(r.mag, mt.n),
		mradix: mag_to_le(n.Subtract(r).mag, mt.n),
		nbits:  n.BitLength(),
	}
}

// One Rabin-Miller round. The witness a (0 < a < n) is used as a
// Montgomery representative, so the effective base is a/R mod n;
// results are compared in the Montgomery domain directly.
func (rc *rm_context) round(a []uint32) bool {
	mt := rc.mt
	y := mt.exp(a, rc.d)
	if raw.Equal(mt.n, y, rc.radix) {
		return true
	}
	for j := 0; !raw.Equal(mt.n, y, rc.mradix); j++ {
		if j+1 == rc.s {
			return false
		}
		mt.mul(y, y, y)
		if raw.Equal(mt.n, y, rc.radix) {
			return false
		}
	}
	return true
}

// Draw a witness in (0, n), excluding the representatives of 1 and -1.
func (rc *rm_context) witness(rng io.Reader) ([]uint32, error) {
	for {
		b, err := NewRandom(rc.nbits, rng)
		if err != nil {
			return nil, err
		}
		if b.sign == 0 || b.Compare(rc.n) >= 0 {
			continue
		}
		a := mag_to_le(b.mag, rc.mt.n)
		if raw.Equal(rc.mt.n, a, rc.radix) || raw.Equal(rc.mt.n, a, rc.mradix) {
			continue
		}
		return a, nil
	}
}

func (x *BigInteger) rabin_miller(certainty int, rng io.Reader, randomlySelected bool) (bool, error) {
	rc := new_rm_context(x)
	iterations := rabin_miller_iterations(rc.nbits, certainty, randomlySelected)
	for i := 0; i < iterations; i++ {
		a, err := rc.witness(rng)
		if err != nil {
			return false, err
		}
		if !rc.round(a) {
			return false, nil
		}
	}
	return true, nil
}

// Get the smallest probable prime strictly greater than x (2 for any x
// below 2). Fails with ErrArgument if x is negative.
func (x *BigInteger) NextProbablePrime() (*BigInteger, error) {
	if x.sign < 0 {
		return nil, fmt.Errorf("%w: NextProbablePrime of a negative value", ErrArgument)
	}
	if x.Compare(Two) < 0 {
		return Two, nil
	}
	rng := default_source()
	n := x.Add(One).SetBit(0)
	limit := 100*n.BitLength() + 1000
	for i := 0; i < limit; i++ {
		ok, err := n.check_probable_prime(100, rng, false)
		if err != nil {
			return nil, err
		}
		if ok {
			return n, nil
		}
		n = n.Add(Two)
	}
	return nil, fmt.Errorf("%w: no prime found after %v", ErrIterationLimit, x)
}

// Generate a random probable prime of exactly nbits bits (top bit set).
// Candidates and witnesses are drawn from rng (crypto/rand.Reader if
// nil). A non-positive certainty skips the primality test, returning a
// random odd value of the requested size.
func NewProbablePrime(nbits int, certainty int, rng io.Reader) (*BigInteger, error) {
	if nbits < 2 {
		return nil, fmt.Errorf("%w: prime bit length %d is below 2", ErrArgument, nbits)
	}
	if rng == nil {
		rng = rand.Reader
	}
	if nbits == 2 {
		var b [1]byte
		if _, err := io.ReadFull(rng, b[:]); err != nil {
			return nil, err
		}
		if b[0]&1 == 0 {
			return Two, nil
		}
		return Three, nil
	}

	limit := 100*nbits + 1000
	for i := 0; i < limit; i++ {
		c, err := NewRandom(nbits, rng)
		if err != nil {
			return nil, err
		}
		c = c.SetBit(nbits - 1).SetBit(0)
		if certainty < 1 {
			return c, nil
		}
		ok, err := c.check_probable_prime(certainty, rng, true)
		if err != nil {
			return nil, err
		}
		if ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no %d-bit prime found", ErrIterationLimit, nbits)
}
