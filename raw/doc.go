// Package raw implements fixed-width arithmetic on arrays of 32-bit words.
//
// An operand is a []uint32 holding an unsigned integer in little-endian
// word order (word 0 is the least significant). Operands are not
// self-describing: every function takes an explicit word count n, and only
// the first n words of each slice are read or written. The caller owns all
// buffers. The Nat functions never allocate except Create and Copy; the
// modular routines (ModOddInverse, ModOddIsCoprime and their Var forms,
// ModRandom) allocate their own limb scratch.
// A word count of zero is a caller error.
//
// Carries and borrows are part of the contract: additions return the carry
// out of the top word, subtractions return the borrow (0 or 1), and shifts
// return the bits shifted out. Nothing panics on overflow.
//
// Unless documented otherwise, outputs must not overlap inputs. The "To"
// and "From" variants (AddTo, SubFrom, XorTo, ...) update their
// destination in place, which is one of the operands.
//
// Functions whose names start with C (CAdd, CSub, CMov, CNegate) take a
// mask and execute the same instruction sequence whatever its value; they
// are meant for constant-time callers. Functions with a Var suffix have
// data-dependent timing and MUST NOT be used on secret values.
//
// The modular inversion routines (ModOddInverse and friends) implement the
// Bernstein-Yang "safegcd" algorithm over 30-bit signed limbs.
package raw
