package mpint

import (
	"crypto/rand"
	"io"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Random source for primality witnesses, used when the caller does not
// provide one. It is a SHAKE256x4 stream: four SHAKE256 instances over
// the same seed (each with a distinct final byte), interleaved by 8-byte
// chunks. The process-wide instance is seeded once from crypto/rand.
type shake256x4 struct {
	mu    sync.Mutex
	state [4]sha3.ShakeHash
	buf   [4 * 136]byte
	ptr   int
}

func new_shake256x4(seed []byte) *shake256x4 {
	r := new(shake256x4)
	for i := 0; i < 4; i++ {
		r.state[i] = sha3.NewShake256()
		r.state[i].Write(seed)
		r.state[i].Write([]byte{byte(i)})
	}
	r.ptr = len(r.buf)
	return r
}

// Squeeze one rate-sized block from each instance; lane i of the
// buffer holds every fourth 8-byte word.
func (r *shake256x4) refill() {
	var block [136]byte
	for lane, sh := range r.state {
		sh.Read(block[:])
		for off := 0; off < len(block); off += 8 {
			dst := 4*off + 8*lane
			copy(r.buf[dst:dst+8], block[off:off+8])
		}
	}
	r.ptr = 0
}

// Read fills p with the next bytes of the stream; it never fails. Safe
// for concurrent use.
func (r *shake256x4) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for n < len(p) {
		if r.ptr == len(r.buf) {
			r.refill()
		}
		k := copy(p[n:], r.buf[r.ptr:])
		r.ptr += k
		n += k
	}
	return n, nil
}

var default_source = sync.OnceValue(func() io.Reader {
	var seed [32]byte
	if _, err := io.ReadFull(rand.Reader, seed[:]); err != nil {
		panic("mpint: system RNG failure: " + err.Error())
	}
	return new_shake256x4(seed[:])
})
