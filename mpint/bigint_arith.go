package mpint

// Sign-magnitude arithmetic.

func (x *BigInteger) Abs() *BigInteger {
	if x.sign >= 0 {
		return x
	}
	return x.Negate()
}

func (x *BigInteger) Negate() *BigInteger {
	if x.sign == 0 {
		return x
	}
	return &BigInteger{sign: -x.sign, mag: x.mag}
}

func (x *BigInteger) Min(y *BigInteger) *BigInteger {
	if x.Compare(y) <= 0 {
		return x
	}
	return y
}

func (x *BigInteger) Max(y *BigInteger) *BigInteger {
	if x.Compare(y) >= 0 {
		return x
	}
	return y
}

// Get x + y.
func (x *BigInteger) Add(y *BigInteger) *BigInteger {
	if x.sign == 0 {
		return y
	}
	if y.sign == 0 {
		return x
	}
	if x.sign == y.sign {
		return new_big(x.sign, mag_add(x.mag, y.mag))
	}
	switch c := mag_cmp(x.mag, y.mag); {
	case c == 0:
		return Zero
	case c > 0:
		return new_big(x.sign, mag_sub(x.mag, y.mag))
	default:
		return new_big(y.sign, mag_sub(y.mag, x.mag))
	}
}

// Get x - y.
func (x *BigInteger) Subtract(y *BigInteger) *BigInteger {
	if y.sign == 0 {
		return x
	}
	return x.Add(y.Negate())
}

// Get x * y. A power-of-two operand is turned into a shift, and x * x
// goes through the squaring path.
func (x *BigInteger) Multiply(y *BigInteger) *BigInteger {
	if x.sign == 0 || y.sign == 0 {
		return Zero
	}
	sign := x.sign * y.sign
	if mag_is_pow2(y.mag) {
		return new_big(sign, mag_shl(x.mag, mag_bitlen(y.mag)-1))
	}
	if mag_is_pow2(x.mag) {
		return new_big(sign, mag_shl(y.mag, mag_bitlen(x.mag)-1))
	}
	if x == y || mag_cmp(x.mag, y.mag) == 0 {
		return new_big(sign, mag_square(x.mag))
	}
	return new_big(sign, mag_mul(x.mag, y.mag))
}

// Get x^2.
func (x *BigInteger) Square() *BigInteger {
	if x.sign == 0 {
		return Zero
	}
	if mag_is_pow2(x.mag) {
		return new_big(1, mag_shl(x.mag, mag_bitlen(x.mag)-1))
	}
	return new_big(1, mag_square(x.mag))
}

// Get x^exp.
func (x *BigInteger) Pow(exp uint) *BigInteger {
	if exp == 0 {
		return One
	}
	if x.sign == 0 || x.Equal(One) {
		return x
	}
	if mag_is_pow2(x.mag) {
		// Sign is negative only for a negative base and an odd exponent.
		sign := 1
		if x.sign < 0 && exp&1 != 0 {
			sign = -1
		}
		return new_big(sign, mag_shl([]uint32{1}, int(exp)*(mag_bitlen(x.mag)-1)))
	}
	y := One
	z := x
	for {
		if exp&1 != 0 {
			y = y.Multiply(z)
		}
		exp >>= 1
		if exp == 0 {
			return y
		}
		z = z.Square()
	}
}
