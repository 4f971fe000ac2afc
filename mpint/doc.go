// Package mpint implements arbitrary-precision signed integers, modular
// exponentiation and inversion, and primality testing and generation.
//
// A *BigInteger is immutable: every operation returns a new value (or one
// of its operands, when the result is equal to it), so values can be
// shared freely between goroutines. Internally a value is a sign and a
// big-endian sequence of 32-bit magnitude words with no leading zero
// word; bitwise operations behave as if the value were stored in two's
// complement with infinite sign extension.
//
// Operations that can fail on valid Go inputs (division by zero, a
// non-positive modulus, malformed strings, exhausted iteration budgets)
// return an error wrapping one of the sentinel errors of this package.
// Negative bit positions are programming errors and cause a panic.
//
// Modular exponentiation uses Montgomery multiplication for odd moduli
// and Barrett reduction for even moduli, both with a sliding window whose
// width depends on the exponent length. Neither is constant-time; the
// constant-time inversion routines are in package raw and are reachable
// through ModOddInverse and ModOddIsCoprime.
//
// Functions that take an io.Reader as a random source use crypto/rand
// when it is nil, except IsProbablePrimeRand (which falls back to an
// internal SHAKE256 stream) and the FIPS 186-4 tests IsMRProbablePrime
// and EnhancedMRProbablePrimeTest, which require an explicit source.
package mpint
