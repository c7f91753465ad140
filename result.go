package sigscan

import (
	"fmt"
	"unsafe"
)

// Result marks the position of a match inside the scanned region. It does
// not own that memory.
type Result struct {
	addr   unsafe.Pointer
	offset int
}

var notFound = Result{offset: -1}

func resultAt(base unsafe.Pointer, offset int) Result {
	if offset < 0 {
		return notFound
	}
	return Result{addr: unsafe.Add(base, offset), offset: offset}
}

// Valid reports whether the scan found a match.
func (r Result) Valid() bool { return r.addr != nil }

// Addr returns the address of the first matched byte, or nil.
func (r Result) Addr() unsafe.Pointer { return r.addr }

// Uintptr returns the numeric address of the first matched byte, or 0.
func (r Result) Uintptr() uintptr { return uintptr(r.addr) }

// Offset returns the match position relative to the start of the scanned
// region, or -1.
func (r Result) Offset() int { return r.offset }

func (r Result) String() string {
	if !r.Valid() {
		return "not found"
	}
	return fmt.Sprintf("%#x (offset %#x)", r.Uintptr(), r.offset)
}

// Ptr returns the match address moved by off bytes as a *T, or nil when r
// is not valid. The caller is responsible for the resulting pointer being
// in bounds and suitably aligned for T.
func Ptr[T any](r Result, off int) *T {
	if !r.Valid() {
		return nil
	}
	return (*T)(unsafe.Add(r.addr, off))
}
