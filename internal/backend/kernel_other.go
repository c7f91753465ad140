//go:build !amd64 || noasm

package backend

// Without assembly the vector matchers run entirely on scanGeneric.
var (
	sse42Kernel func(s *scanState) bool
	avx2Kernel  func(s *scanState) bool
)
