// Package pattern compiles IDA-style byte signatures such as
// "48 89 5c 24 ?? 48 89 6c" into the data/mask form consumed by the
// matching backends.
package pattern

import (
	"strings"
	"unsafe"

	"github.com/mhr3/sigscan/internal/aligned"
)

// Width is the unit both pattern buffers are padded to. It matches the
// widest vector backend so that every backend can load full vectors from
// any confirmed offset.
const Width = 32

const (
	maskExact    = 0xff
	maskWildcard = 0x00
)

// Pattern is a compiled signature. It is immutable and safe for concurrent
// use.
type Pattern struct {
	data aligned.Buffer
	mask aligned.Buffer
	size int
}

// Compile parses an IDA-style signature.
//
// Spaces separate tokens. "?" and "??" each emit a single wildcard byte.
// Every other token consumes two characters decoded as hex digits; a
// character that is not a hex digit decodes to zero rather than failing.
func Compile(signature string) *Pattern {
	text := []rune(signature)

	data := make([]byte, 0, paddedLen(len(text)))
	mask := make([]byte, 0, paddedLen(len(text)))

	for i := 0; i < len(text); {
		symbol := text[i]
		next := rune(0)
		if i+1 < len(text) {
			next = text[i+1]
		}
		i++

		switch symbol {
		case ' ':
		case '?':
			data = append(data, 0)
			mask = append(mask, maskWildcard)
			if next == '?' {
				i++
			}
		default:
			data = append(data, nibble(symbol)<<4|nibble(next))
			mask = append(mask, maskExact)
			i++
		}
	}

	return build(data, mask)
}

// CompileLiteral builds a pattern matching s byte for byte.
func CompileLiteral(s string) *Pattern {
	data := []byte(s)
	mask := make([]byte, len(data))
	for i := range mask {
		mask[i] = maskExact
	}
	return build(data, mask)
}

// FromBytes builds a pattern from explicit data and mask slices. A zero mask
// byte marks a wildcard, any other value a byte that must match. FromBytes
// panics if the slices differ in length.
func FromBytes(data, mask []byte) *Pattern {
	if len(data) != len(mask) {
		panic("pattern: data and mask length mismatch")
	}

	d := make([]byte, len(data), paddedLen(len(data)))
	m := make([]byte, len(mask), paddedLen(len(mask)))
	for i := range mask {
		if mask[i] != 0 {
			d[i] = data[i]
			m[i] = maskExact
		}
	}
	return build(d, m)
}

func build(data, mask []byte) *Pattern {
	size := len(data)
	padded := paddedLen(size)

	data = append(data, make([]byte, padded-size)...)
	mask = append(mask, make([]byte, padded-size)...)

	return &Pattern{
		data: aligned.New(data, Width),
		mask: aligned.New(mask, Width),
		size: size,
	}
}

func paddedLen(n int) int {
	return (n + Width - 1) / Width * Width
}

func nibble(c rune) byte {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0')
	case c >= 'a' && c <= 'f':
		return byte(c-'a') + 0xa
	case c >= 'A' && c <= 'F':
		return byte(c-'A') + 0xa
	default:
		return 0
	}
}

// Len returns the signature length before padding.
func (p *Pattern) Len() int { return p.size }

// PaddedLen returns the length of the data and mask buffers.
func (p *Pattern) PaddedLen() int { return p.data.Len() }

// Data returns a copy of the padded byte values to match.
func (p *Pattern) Data() []byte { return p.data.Bytes() }

// Mask returns a copy of the padded mask: 0xff for bytes that must match,
// 0x00 for wildcards.
func (p *Pattern) Mask() []byte { return p.mask.Bytes() }

// DataPtr returns the Width-aligned base of the data buffer, or nil for an
// empty pattern. The memory must not be written.
func (p *Pattern) DataPtr() unsafe.Pointer { return p.data.Ptr() }

// MaskPtr returns the Width-aligned base of the mask buffer, or nil for an
// empty pattern. The memory must not be written.
func (p *Pattern) MaskPtr() unsafe.Pointer { return p.mask.Ptr() }

// Wildcards returns the number of unconstrained bytes in the signature.
func (p *Pattern) Wildcards() int {
	n := 0
	for _, m := range p.mask.View()[:p.size] {
		if m == maskWildcard {
			n++
		}
	}
	return n
}

// String renders the pattern in canonical IDA form, e.g. "48 89 ?? 6C".
func (p *Pattern) String() string {
	const hex = "0123456789ABCDEF"

	data, mask := p.data.View(), p.mask.View()

	var sb strings.Builder
	sb.Grow(p.size * 3)
	for i := 0; i < p.size; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if mask[i] == maskWildcard {
			sb.WriteString("??")
			continue
		}
		sb.WriteByte(hex[data[i]>>4])
		sb.WriteByte(hex[data[i]&0xf])
	}
	return sb.String()
}
