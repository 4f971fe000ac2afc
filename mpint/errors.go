package mpint

import (
	"errors"
)

var (
	// Malformed string or byte input.
	ErrFormat = errors.New("mpint: invalid format")

	// Out-of-domain argument (non-positive modulus, value too large for
	// the requested output size, ...).
	ErrArgument = errors.New("mpint: invalid argument")

	ErrDivisionByZero = errors.New("mpint: division by zero")

	// The value has no inverse modulo the given modulus.
	ErrNotInvertible = errors.New("mpint: value is not invertible")

	// Exact conversion to a fixed-size integer is not possible.
	ErrOverflow = errors.New("mpint: value overflows")

	// A candidate search ran out of its iteration budget. This is a
	// statistically near-impossible event for sound parameters.
	ErrIterationLimit = errors.New("mpint: iteration limit exceeded")
)
