//go:build mpint_purego

package raw

// The mpint_purego tag disables the vector path of the XOR family; only
// the scalar loops are used.
const purego = true
