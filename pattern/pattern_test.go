package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhr3/sigscan/internal/aligned"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		in   string
		data []byte
		mask []byte
	}{
		{"empty", "", nil, nil},
		{"spaces only", "   ", nil, nil},
		{"single byte", "48", []byte{0x48}, []byte{0xff}},
		{"lower and upper hex", "ab CD eF", []byte{0xab, 0xcd, 0xef}, []byte{0xff, 0xff, 0xff}},
		{
			"double wildcard",
			"48 89 5c 24 ?? 48 89 6c",
			[]byte{0x48, 0x89, 0x5c, 0x24, 0x00, 0x48, 0x89, 0x6c},
			[]byte{0xff, 0xff, 0xff, 0xff, 0x00, 0xff, 0xff, 0xff},
		},
		{"single wildcard", "40 ? 57", []byte{0x40, 0x00, 0x57}, []byte{0xff, 0x00, 0xff}},
		{"adjacent wildcards", "? ? ??", []byte{0, 0, 0}, []byte{0, 0, 0}},
		{"triple question mark", "???", []byte{0, 0}, []byte{0, 0}},
		{"no separators", "4889??5c", []byte{0x48, 0x89, 0x00, 0x5c}, []byte{0xff, 0xff, 0x00, 0xff}},
		{"extra spaces", "  48    89  ", []byte{0x48, 0x89}, []byte{0xff, 0xff}},
		{"non-hex decodes to zero", "zz 4g x1", []byte{0x00, 0x40, 0x01}, []byte{0xff, 0xff, 0xff}},
		{"trailing nibble", "48 8", []byte{0x48, 0x80}, []byte{0xff, 0xff}},
		{"token swallows separator", "4 8", []byte{0x40, 0x80}, []byte{0xff, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compile(tt.in)

			require.Equal(t, len(tt.data), p.Len())
			assert.Equal(t, paddedLen(p.Len()), p.PaddedLen())
			if p.Len() > 0 {
				assert.Equal(t, tt.data, p.Data()[:p.Len()])
				assert.Equal(t, tt.mask, p.Mask()[:p.Len()])
			}
		})
	}
}

func TestCompilePadding(t *testing.T) {
	for n := 0; n <= 100; n++ {
		tokens := make([]string, n)
		for i := range tokens {
			if i%3 == 2 {
				tokens[i] = "??"
			} else {
				tokens[i] = "a5"
			}
		}
		p := Compile(strings.Join(tokens, " "))

		require.Equal(t, n, p.Len())

		want := (n + 31) / 32 * 32
		require.Len(t, p.Data(), want)
		require.Len(t, p.Mask(), want)

		for i := n; i < want; i++ {
			assert.Zero(t, p.Data()[i], "data padding at %d", i)
			assert.Zero(t, p.Mask()[i], "mask padding at %d", i)
		}
		if n > 0 {
			assert.True(t, aligned.IsAligned(p.DataPtr(), Width))
			assert.True(t, aligned.IsAligned(p.MaskPtr(), Width))
		}
	}
}

func TestCompileEmpty(t *testing.T) {
	p := Compile("")

	assert.Zero(t, p.Len())
	assert.Zero(t, p.PaddedLen())
	assert.Nil(t, p.DataPtr())
	assert.Nil(t, p.MaskPtr())
	assert.Equal(t, "", p.String())
}

func TestCompileLiteral(t *testing.T) {
	p := CompileLiteral("LocalPlayer")

	require.Equal(t, 11, p.Len())
	assert.Equal(t, []byte("LocalPlayer"), p.Data()[:11])
	for i, m := range p.Mask() {
		if i < 11 {
			assert.Equal(t, byte(0xff), m)
		} else {
			assert.Zero(t, m)
		}
	}
	assert.Len(t, p.Data(), 32)
	assert.Zero(t, p.Wildcards())

	// question marks and spaces are ordinary bytes in a literal
	q := CompileLiteral("? ?")
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, "3F 20 3F", q.String())
}

func TestFromBytes(t *testing.T) {
	p := FromBytes([]byte{0x48, 0xaa, 0x89}, []byte{0xff, 0x00, 0x01})

	require.Equal(t, 3, p.Len())
	assert.Equal(t, []byte{0x48, 0x00, 0x89}, p.Data()[:3])
	assert.Equal(t, []byte{0xff, 0x00, 0xff}, p.Mask()[:3])
	assert.Equal(t, "48 ?? 89", p.String())

	assert.Panics(t, func() { FromBytes([]byte{1, 2}, []byte{0xff}) })
}

func TestAccessorsReturnCopies(t *testing.T) {
	p := Compile("48 ?? 89")

	data, mask := p.Data(), p.Mask()
	for i := range data {
		data[i], mask[i] = 0xcc, 0xcc
	}

	assert.Equal(t, []byte{0x48, 0x00, 0x89}, p.Data()[:3])
	assert.Equal(t, []byte{0xff, 0x00, 0xff}, p.Mask()[:3])
	assert.Equal(t, "48 ?? 89", p.String())
	assert.Equal(t, 1, p.Wildcards())
	assert.Zero(t, p.Data()[3], "padding")
}

func TestString(t *testing.T) {
	tests := map[string]string{
		"48 89 5c 24 ?? 48 89 6c": "48 89 5C 24 ?? 48 89 6C",
		"40 ? 57":                 "40 ?? 57",
		"4889":                    "48 89",
		"":                        "",
	}
	for in, want := range tests {
		p := Compile(in)
		assert.Equal(t, want, p.String())
		assert.Equal(t, want, Compile(p.String()).String(), "canonical form must round-trip")
	}
}

func TestWildcards(t *testing.T) {
	p := Compile("40 57 48 83 EC ? 48 C7 44 24 ? ? ? ? ? 48 89 5C 24 ? 48 89 6C 24 ? 48 89 74 24 ? 49 8B E9 48 8B F2")
	assert.Equal(t, 36, p.Len())
	assert.Equal(t, 9, p.Wildcards())
	assert.Len(t, p.Data(), 64)
}

func FuzzCompile(f *testing.F) {
	f.Add("48 89 5c 24 ?? 48 89 6c")
	f.Add("? ?? ???")
	f.Add("zz 4")
	f.Add("日本 ?")

	f.Fuzz(func(t *testing.T, s string) {
		p := Compile(s)

		if p.Len() > len(s) {
			t.Fatalf("Compile(%q) produced %d bytes from %d characters", s, p.Len(), len(s))
		}
		if len(p.Data()) != len(p.Mask()) || len(p.Data())%Width != 0 || len(p.Data())-p.Len() >= Width {
			t.Fatalf("Compile(%q): bad padding data=%d mask=%d size=%d", s, len(p.Data()), len(p.Mask()), p.Len())
		}
		for i, m := range p.Mask() {
			if m != 0 && m != 0xff {
				t.Fatalf("Compile(%q): mask[%d] = %#x", s, i, m)
			}
			if m == 0 && p.Data()[i] != 0 {
				t.Fatalf("Compile(%q): wildcard data[%d] = %#x", s, i, p.Data()[i])
			}
		}
	})
}
