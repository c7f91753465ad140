package backend

// scanGeneric is the portable form of the assembly kernels: it advances s
// until a match completes (true) or s.chunk reaches s.stop (false). Lanes
// past the end of haystack load as zero.
func scanGeneric(s *scanState, data, mask, haystack []byte, width int) bool {
	for s.chunk < s.stop {
		if windowMatches(haystack, s.chunk, data[s.processed:s.processed+width], mask[s.processed:s.processed+width]) {
			s.processed += width
			if s.processed >= s.size {
				return true
			}
			s.chunk += width - 1
		} else if s.processed > 0 {
			s.chunk -= s.processed
			s.processed = 0
		}
		s.chunk++
	}
	return false
}

// windowMatches is the lane-wise blend/compare/reduce step: haystack bytes
// under a zero mask are replaced by zero before comparing against data.
func windowMatches(haystack []byte, at int, data, mask []byte) bool {
	for k := range data {
		var b byte
		if at+k < len(haystack) {
			b = haystack[at+k]
		}
		if b&mask[k] != data[k] {
			return false
		}
	}
	return true
}
