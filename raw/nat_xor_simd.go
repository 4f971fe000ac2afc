//go:build !mpint_purego

package raw

const purego = false
