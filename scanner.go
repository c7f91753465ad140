package sigscan

import (
	"unsafe"

	"github.com/mhr3/sigscan/pattern"
)

// Scanner finds the first occurrence of one compiled pattern. It holds no
// mutable state and may be shared between goroutines.
type Scanner struct {
	p *pattern.Pattern
}

// New compiles an IDA-style signature such as "48 89 5c 24 ?? 48 89 6c".
func New(signature string) *Scanner {
	return &Scanner{p: pattern.Compile(signature)}
}

// NewLiteral builds a scanner matching s byte for byte.
func NewLiteral(s string) *Scanner {
	return &Scanner{p: pattern.CompileLiteral(s)}
}

// FromPattern wraps an already compiled pattern.
func FromPattern(p *pattern.Pattern) *Scanner {
	return &Scanner{p: p}
}

// Pattern returns the compiled pattern.
func (s *Scanner) Pattern() *pattern.Pattern { return s.p }

// Find returns the first match in haystack, scanning on the tier chosen by
// SelectTier for preferred and the detected CPU capabilities.
func (s *Scanner) Find(preferred Tier, haystack []byte) Result {
	if len(haystack) == 0 {
		return notFound
	}
	off := dispatch(preferred, DetectCapabilities(), s.p, haystack)
	return resultAt(unsafe.Pointer(&haystack[0]), off)
}

// FindPointer scans length bytes starting at base, for memory that is not
// already held in a slice. base must be readable for length bytes.
func (s *Scanner) FindPointer(preferred Tier, base unsafe.Pointer, length int) Result {
	if base == nil || length <= 0 {
		return notFound
	}
	return s.Find(preferred, unsafe.Slice((*byte)(base), length))
}

// Index returns the offset of the first match in haystack using the best
// available tier, or -1.
func (s *Scanner) Index(haystack []byte) int {
	return s.Find(Auto, haystack).Offset()
}

// Find compiles signature and returns its first match in haystack.
func Find(signature string, haystack []byte) Result {
	return New(signature).Find(Auto, haystack)
}
