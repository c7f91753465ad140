//go:build !noasm

package backend

// Assembly kernels, implemented in kernel_amd64.s. Each runs the chunked
// search loop on s and reports whether a match completed; on return
// s.chunk and s.processed describe where the loop stopped.

//go:noescape
func scanSSE42(s *scanState) bool

//go:noescape
func scanAVX2(s *scanState) bool

var (
	sse42Kernel = scanSSE42
	avx2Kernel  = scanAVX2
)
