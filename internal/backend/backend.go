// Package backend holds the matching engines behind the scanner: a scalar
// reference matcher and the 16- and 32-lane vector matchers.
//
// Every matcher returns the offset of the first match of a compiled pattern
// inside haystack, or -1. Matchers never read outside haystack.
package backend

import (
	"unsafe"

	"github.com/mhr3/sigscan/pattern"
)

// Matcher finds the first occurrence of a pattern in a byte region.
type Matcher interface {
	// Find returns the offset of the first match in haystack, or -1.
	Find(p *pattern.Pattern, haystack []byte) int

	// Width returns the number of haystack bytes compared per step.
	Width() int
}

var (
	// Scalar compares one byte at a time. It runs on any CPU.
	Scalar Matcher = scalar{}

	// SSE42 compares 16 bytes per step. The assembly kernel requires
	// SSE4.2; callers are responsible for checking the CPU first.
	SSE42 Matcher = vector{width: 16, kernel: sse42Kernel}

	// AVX2 compares 32 bytes per step. The assembly kernel requires AVX2;
	// callers are responsible for checking the CPU first.
	AVX2 Matcher = vector{width: 32, kernel: avx2Kernel}
)

// scanState is shared with the assembly kernels; keep the field order and
// sizes in sync with the offsets used in kernel_amd64.s.
type scanState struct {
	data      unsafe.Pointer // pattern data, pattern.Width aligned
	mask      unsafe.Pointer // pattern mask, pattern.Width aligned
	size      int            // unpadded pattern length
	haystack  unsafe.Pointer
	chunk     int // next haystack offset to compare
	processed int // pattern bytes confirmed ending at chunk
	stop      int // exclusive bound for chunk
}

type vector struct {
	width  int
	kernel func(s *scanState) bool
}

func (v vector) Width() int { return v.width }

// Find runs the chunked vector search. A full window match advances the
// pattern cursor by width and the haystack cursor by width, so patterns
// longer than one vector are confirmed one window at a time; a mismatch
// abandons the partial match and restarts one byte past where it began.
//
// The kernel only runs while a whole window fits in haystack. The last
// width-1 offsets are finished by scanGeneric, which treats bytes past the
// end of haystack as zero.
func (v vector) Find(p *pattern.Pattern, haystack []byte) int {
	n := len(haystack)
	if n == 0 {
		return -1
	}
	if p.Len() == 0 {
		// an empty pattern is a window of wildcards
		return 0
	}

	s := scanState{
		data:     p.DataPtr(),
		mask:     p.MaskPtr(),
		size:     p.Len(),
		haystack: unsafe.Pointer(&haystack[0]),
		stop:     n - v.width + 1,
	}

	if v.kernel != nil && s.stop > 0 && v.kernel(&s) {
		return s.chunk - s.processed + v.width
	}

	s.stop = n
	data, mask := views(p)
	if scanGeneric(&s, data, mask, haystack, v.width) {
		return s.chunk - s.processed + v.width
	}
	return -1
}

// views returns the padded pattern buffers without copying them.
func views(p *pattern.Pattern) (data, mask []byte) {
	n := p.PaddedLen()
	if n == 0 {
		return nil, nil
	}
	return unsafe.Slice((*byte)(p.DataPtr()), n), unsafe.Slice((*byte)(p.MaskPtr()), n)
}
