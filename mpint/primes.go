package mpint

import (
	"errors"
	"fmt"
	"io"
)

// Primality tests and screens over BigInteger candidates, following
// FIPS 186-4 appendix C.

// Result of EnhancedMRProbablePrimeTest.
type MROutput struct {
	provablyComposite bool
	factor            *BigInteger
}

func mr_probably_prime() *MROutput {
	return &MROutput{}
}

func mr_composite_with_factor(factor *BigInteger) *MROutput {
	return &MROutput{provablyComposite: true, factor: factor}
}

func mr_composite_not_prime_power() *MROutput {
	return &MROutput{provablyComposite: true}
}

// Get the non-trivial factor found by the test, if any (nil otherwise).
func (o *MROutput) Factor() *BigInteger {
	return o.factor
}

func (o *MROutput) IsProvablyComposite() bool {
	return o.provablyComposite
}

// Report whether the candidate was shown composite and not a power of a
// prime (no factor was extracted).
func (o *MROutput) IsNotPrimePower() bool {
	return o.provablyComposite && o.factor == nil
}

// Products of the first small primes: 3*5*...*29 and 31*37*41*43*47.
const (
	small_factors_m1 = 3234846615
	small_factors_m2 = 95041567
)

var small_factors_p1 = [...]uint32{3, 5, 7, 11, 13, 17, 19, 23, 29}
var small_factors_p2 = [...]uint32{31, 37, 41, 43, 47}

// Fast rejection filter: returns false if x is even (other than 2) or
// has one of the 14 odd prime factors from 3 to 47 (other than itself),
// true otherwise. Those are all the odd primes whose products fit two
// 32-bit moduli; 53 would overflow the second. The answer is exact below
// 53^2; above, true only means "maybe prime".
func MightBePrime(x *BigInteger) bool {
	if x.sign <= 0 || x.Equal(One) {
		return false
	}
	if !x.TestBit(0) {
		return x.Equal(Two)
	}
	r := mag_mod_word(x.mag, small_factors_m1)
	for _, p := range small_factors_p1 {
		if r%p == 0 {
			return x.Equal(ValueOf(int64(p)))
		}
	}
	r = mag_mod_word(x.mag, small_factors_m2)
	for _, p := range small_factors_p2 {
		if r%p == 0 {
			return x.Equal(ValueOf(int64(p)))
		}
	}
	return true
}

// All primes up to 211, grouped so that each product fits in 31 bits.
var small_factor_groups = [...][]uint32{
	{2, 3, 5, 7, 11, 13, 17, 19, 23},
	{29, 31, 37, 41, 43},
	{47, 53, 59, 61, 67},
	{71, 73, 79, 83},
	{89, 97, 101, 103},
	{107, 109, 113, 127},
	{131, 137, 139, 149},
	{151, 157, 163, 167},
	{173, 179, 181, 191},
	{193, 197, 199, 211},
}

var small_factor_products = func() (tab [len(small_factor_groups)]uint32) {
	for i, g := range small_factor_groups {
		tab[i] = 1
		for _, p := range g {
			tab[i] *= p
		}
	}
	return
}()

func check_candidate(x *BigInteger, name string) error {
	if x == nil || x.sign < 1 || x.BitLength() < 2 {
		return fmt.Errorf("%w: %s must be non-null and >= 2", ErrArgument, name)
	}
	return nil
}

// Report whether x is divisible by any prime up to 211. A small prime is
// reported as having a small factor (itself). Fails for x < 2.
func HasAnySmallFactors(x *BigInteger) (bool, error) {
	if err := check_candidate(x, "candidate"); err != nil {
		return false, err
	}
	return has_any_small_factors(x), nil
}

func has_any_small_factors(x *BigInteger) bool {
	for i, g := range small_factor_groups {
		r := mag_mod_word(x.mag, small_factor_products[i])
		for _, p := range g {
			if r%p == 0 {
				return true
			}
		}
	}
	return false
}

func check_mr_args(candidate *BigInteger, rng io.Reader, iterations int) error {
	if err := check_candidate(candidate, "candidate"); err != nil {
		return err
	}
	if rng == nil {
		return errors.New("mpint: nil random source")
	}
	if iterations < 1 {
		return fmt.Errorf("%w: iterations must be > 0", ErrArgument)
	}
	return nil
}

// w - 1 = m*2^a with m odd.
func mr_split(w *BigInteger) (*BigInteger, *BigInteger, int) {
	wSubOne := w.Subtract(One)
	a := wSubOne.LowestSetBit()
	return wSubOne, wSubOne.ShiftRight(a), a
}

// Miller-Rabin test of candidate (FIPS 186-4 C.3.1) over the given number
// of random bases in [2, candidate-2].
func IsMRProbablePrime(candidate *BigInteger, rng io.Reader, iterations int) (bool, error) {
	if err := check_mr_args(candidate, rng, iterations); err != nil {
		return false, err
	}
	if candidate.BitLength() == 2 {
		return true, nil
	}
	if !candidate.TestBit(0) {
		return false, nil
	}

	w := candidate
	wSubOne, m, a := mr_split(w)
	wSubTwo := w.Subtract(Two)
	for i := 0; i < iterations; i++ {
		b, err := RandomInRange(Two, wSubTwo, rng)
		if err != nil {
			return false, err
		}
		if !mr_probable_prime_to_base(w, wSubOne, m, a, b) {
			return false, nil
		}
	}
	return true, nil
}

// Miller-Rabin round for candidate with the given base (>= 2).
func IsMRProbablePrimeToBase(candidate *BigInteger, base *BigInteger) (bool, error) {
	if err := check_candidate(candidate, "candidate"); err != nil {
		return false, err
	}
	if err := check_candidate(base, "base"); err != nil {
		return false, err
	}
	if candidate.BitLength() == 2 {
		return true, nil
	}
	if !candidate.TestBit(0) {
		return false, nil
	}
	wSubOne, m, a := mr_split(candidate)
	return mr_probable_prime_to_base(candidate, wSubOne, m, a, base), nil
}

func mr_probable_prime_to_base(w, wSubOne, m *BigInteger, a int, b *BigInteger) bool {
	z, _ := b.ModPow(m, w)
	if z.Equal(One) || z.Equal(wSubOne) {
		return true
	}
	for i := 1; i < a; i++ {
		z, _ = z.Square().Mod(w)
		if z.Equal(wSubOne) {
			return true
		}
		if z.Equal(One) {
			return false
		}
	}
	return false
}

// Enhanced Miller-Rabin test (FIPS 186-4 C.3.2). Beyond the plain test,
// a composite candidate may come with a non-trivial factor, or be shown
// not to be a prime power.
func EnhancedMRProbablePrimeTest(candidate *BigInteger, rng io.Reader, iterations int) (*MROutput, error) {
	if err := check_mr_args(candidate, rng, iterations); err != nil {
		return nil, err
	}
	if candidate.BitLength() == 2 {
		return mr_probably_prime(), nil
	}
	if !candidate.TestBit(0) {
		return mr_composite_with_factor(Two), nil
	}

	w := candidate
	wSubOne, m, a := mr_split(w)
	wSubTwo := w.Subtract(Two)
	for i := 0; i < iterations; i++ {
		b, err := RandomInRange(Two, wSubTwo, rng)
		if err != nil {
			return nil, err
		}
		if g := b.Gcd(w); g.Compare(One) > 0 {
			return mr_composite_with_factor(g), nil
		}

		z, _ := b.ModPow(m, w)
		if z.Equal(One) || z.Equal(wSubOne) {
			continue
		}

		// x tracks the last value before z reaches 1 (or z itself if it
		// never does).
		primeToBase := false
		x := z
		for j := 1; j < a; j++ {
			z, _ = z.Square().Mod(w)
			if z.Equal(wSubOne) {
				primeToBase = true
				break
			}
			if z.Equal(One) {
				break
			}
			x = z
		}
		if primeToBase {
			continue
		}
		if !z.Equal(One) {
			x = z
			z, _ = z.Square().Mod(w)
			if !z.Equal(One) {
				x = z
			}
		}
		if g := x.Subtract(One).Gcd(w); g.Compare(One) > 0 {
			return mr_composite_with_factor(g), nil
		}
		return mr_composite_not_prime_power(), nil
	}
	return mr_probably_prime(), nil
}
