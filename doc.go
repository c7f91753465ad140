// Package sigscan finds IDA-style byte signatures in memory.
//
// A signature is a list of hex bytes separated by spaces, where "?" or "??"
// stands for a byte that may hold any value:
//
//	s := sigscan.New("48 89 5c 24 ?? 48 89 6c")
//	r := s.Find(sigscan.Auto, module)
//	if r.Valid() {
//		fmt.Println("found at", r.Offset())
//	}
//
// Only the first match is reported. Scans run on one of several tiers: a
// scalar matcher that works on every CPU, and SSE4.2 and AVX2 matchers
// selected at run time from the CPU features of the host. Auto picks the
// fastest supported tier; an explicitly requested tier that the CPU cannot
// run falls back to Scalar. Build with the noasm tag to disable the vector
// kernels.
//
// Signatures that are not well formed do not produce errors: characters
// that are not hex digits decode as zero.
package sigscan
