package raw

import (
	"crypto/subtle"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// XOR family. The scalar loops are the reference implementation; when the
// CPU has wide vector registers, the work is handed to
// crypto/subtle.XORBytes (which has SIMD assembly on amd64 and arm64)
// over byte views of the same memory. XOR is bytewise, so the endianness
// of the view does not matter.

// Set at init time; see nat_xor_purego.go / nat_xor_simd.go for the
// build-tag override.
var xor_simd = !purego && (cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD)

// Below this many words, the call overhead of the vector path is not
// worth it.
const xor_simd_min = 8

// Set z = x ^ y.
func Xor(n int, x []uint32, y []uint32, z []uint32) {
	if xor_simd && n >= xor_simd_min {
		subtle.XORBytes(u32_bytes(z[:n]), u32_bytes(x[:n]), u32_bytes(y[:n]))
		return
	}
	xor_scalar(n, x, y, z)
}

// Set z = z ^ x.
func XorTo(n int, x []uint32, z []uint32) {
	if xor_simd && n >= xor_simd_min {
		zb := u32_bytes(z[:n])
		subtle.XORBytes(zb, zb, u32_bytes(x[:n]))
		return
	}
	xor_scalar(n, x, z, z)
}

// Set z = x ^ y over n 64-bit words.
func Xor64(n int, x []uint64, y []uint64, z []uint64) {
	if xor_simd && n >= xor_simd_min/2 {
		subtle.XORBytes(u64_bytes(z[:n]), u64_bytes(x[:n]), u64_bytes(y[:n]))
		return
	}
	xor64_scalar(n, x, y, z)
}

// Set z = z ^ x over n 64-bit words.
func XorTo64(n int, x []uint64, z []uint64) {
	if xor_simd && n >= xor_simd_min/2 {
		zb := u64_bytes(z[:n])
		subtle.XORBytes(zb, zb, u64_bytes(x[:n]))
		return
	}
	xor64_scalar(n, x, z, z)
}

func xor_scalar(n int, x []uint32, y []uint32, z []uint32) {
	i := 0
	for ; i+4 <= n; i += 4 {
		z[i] = x[i] ^ y[i]
		z[i+1] = x[i+1] ^ y[i+1]
		z[i+2] = x[i+2] ^ y[i+2]
		z[i+3] = x[i+3] ^ y[i+3]
	}
	for ; i < n; i++ {
		z[i] = x[i] ^ y[i]
	}
}

func xor64_scalar(n int, x []uint64, y []uint64, z []uint64) {
	for i := 0; i < n; i++ {
		z[i] = x[i] ^ y[i]
	}
}

func u32_bytes(x []uint32) []byte {
	if len(x) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&x[0])), len(x)*4)
}

func u64_bytes(x []uint64) []byte {
	if len(x) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&x[0])), len(x)*8)
}
