// Package aligned provides immutable byte buffers whose first element sits at
// a fixed power-of-two address boundary, so that vector kernels can use
// aligned loads on them.
package aligned

import (
	"bytes"
	"fmt"
	"math"
	"unsafe"
)

// Buffer is an immutable byte sequence whose base address is a multiple of
// the alignment it was created with. The zero Buffer is empty and owns no
// memory.
type Buffer struct {
	b     []byte
	align int
}

// New copies data into a fresh allocation aligned to align bytes.
//
// align must be a power of two. Empty input returns an empty Buffer without
// touching the allocator. New panics if the length rounded up to align does
// not fit in an int.
func New(data []byte, align int) Buffer {
	if align <= 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("aligned: alignment %d is not a power of two", align))
	}
	if len(data) == 0 {
		return Buffer{align: align}
	}

	n := len(data)
	raw := make([]byte, allocSize(n, align))
	off := offsetOf(unsafe.Pointer(&raw[0]), align)

	b := raw[off : off+n : off+n]
	copy(b, data)

	return Buffer{b: b, align: align}
}

// allocSize returns the bytes needed to place n bytes at an align boundary
// anywhere in the allocation. It panics if that does not fit in an int.
func allocSize(n, align int) int {
	if n > math.MaxInt-(align-1) {
		panic(fmt.Sprintf("unable to allocate %d bytes (overflows int)", n))
	}
	return n + align - 1
}

// offsetOf returns how many bytes past p the next align boundary is.
func offsetOf(p unsafe.Pointer, align int) int {
	addr := uintptr(p)
	return int((addr+uintptr(align-1))&^uintptr(align-1) - addr)
}

// Bytes returns a copy of the buffer contents.
func (b Buffer) Bytes() []byte { return bytes.Clone(b.b) }

// View returns the buffer contents without copying. The slice must not be
// modified.
func (b Buffer) View() []byte { return b.b }

// Len returns the number of bytes held.
func (b Buffer) Len() int { return len(b.b) }

// Align returns the alignment the buffer was created with.
func (b Buffer) Align() int { return b.align }

// Ptr returns the aligned base address, or nil for an empty buffer.
func (b Buffer) Ptr() unsafe.Pointer {
	if len(b.b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b.b[0])
}

// IsAligned reports whether p is a multiple of align.
func IsAligned(p unsafe.Pointer, align int) bool {
	return uintptr(p)&uintptr(align-1) == 0
}
