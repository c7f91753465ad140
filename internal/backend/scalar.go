package backend

import "github.com/mhr3/sigscan/pattern"

type scalar struct{}

func (scalar) Width() int { return 1 }

// Find tries every start offset in turn. Reads that would run past the end
// of haystack are clamped to its last byte, so a pattern overhanging the
// end can only match by coincidence.
func (scalar) Find(p *pattern.Pattern, haystack []byte) int {
	data, mask := views(p)

	for i := range haystack {
		if matchAt(haystack, i, data, mask) {
			return i
		}
	}
	return -1
}

func matchAt(haystack []byte, i int, data, mask []byte) bool {
	last := len(haystack) - 1

	for j := range data {
		if mask[j] == 0 {
			continue
		}
		k := min(i+j, last)
		if haystack[k] != data[j] {
			return false
		}
	}
	return true
}
