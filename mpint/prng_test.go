package mpint

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestShakeStream(t *testing.T) {
	seed := []byte("shake256x4 stream")
	const blocks = 3
	var lanes [4][]byte
	for i := range lanes {
		sh := sha3.NewShake256()
		sh.Write(seed)
		sh.Write([]byte{byte(i)})
		lanes[i] = make([]byte, blocks*136)
		sh.Read(lanes[i])
	}
	// 8-byte words taken from the four lanes in turn.
	var want []byte
	for off := 0; off < blocks*136; off += 8 {
		for i := range lanes {
			want = append(want, lanes[i][off:off+8]...)
		}
	}

	r := new_shake256x4(seed)
	got := make([]byte, len(want))
	// Uneven reads that straddle the refills.
	for pos, k := 0, 1; pos < len(got); k = k%37 + 5 {
		end := min(pos+k, len(got))
		n, err := r.Read(got[pos:end])
		require.NoError(t, err)
		require.Equal(t, end-pos, n)
		pos = end
	}
	require.Equal(t, want, got)

	a := make([]byte, 64)
	b := make([]byte, 64)
	new_shake256x4([]byte("a")).Read(a)
	new_shake256x4([]byte("b")).Read(b)
	require.NotEqual(t, a, b)
}
