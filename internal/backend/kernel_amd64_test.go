//go:build !noasm

package backend

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/mhr3/sigscan/pattern"
)

// The assembly kernels must leave the scan state exactly where the portable
// kernel does for the same stop bound.
func TestKernelState(t *testing.T) {
	kernels := []struct {
		name   string
		width  int
		ok     bool
		kernel func(*scanState) bool
	}{
		{"sse42", 16, hasSSE42, scanSSE42},
		{"avx2", 32, hasAVX2, scanAVX2},
	}

	r := rand.New(rand.NewSource(3))
	for _, k := range kernels {
		t.Run(k.name, func(t *testing.T) {
			if !k.ok {
				t.Skipf("%s not supported by this CPU", k.name)
			}

			for iter := 0; iter < 500; iter++ {
				size := r.Intn(70) + 1
				data := make([]byte, size)
				mask := make([]byte, size)
				for i := range data {
					data[i] = byte(r.Intn(3))
					mask[i] = byte(r.Intn(4))
				}
				p := pattern.FromBytes(data, mask)

				haystack := make([]byte, k.width+r.Intn(300))
				for i := range haystack {
					haystack[i] = byte(r.Intn(3))
				}

				s := scanState{
					data:     p.DataPtr(),
					mask:     p.MaskPtr(),
					size:     p.Len(),
					haystack: unsafe.Pointer(&haystack[0]),
					stop:     len(haystack) - k.width + 1,
				}
				want := s

				gotFound := k.kernel(&s)
				wantFound := scanGeneric(&want, p.Data(), p.Mask(), haystack, k.width)

				require.Equal(t, wantFound, gotFound, "iter %d", iter)
				require.Equal(t, want.chunk, s.chunk, "iter %d chunk", iter)
				require.Equal(t, want.processed, s.processed, "iter %d processed", iter)
			}
		})
	}
}
