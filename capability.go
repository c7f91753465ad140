package sigscan

import (
	"strings"
	"sync"
)

// Capabilities lists the vector extensions available to the matchers.
type Capabilities struct {
	SSE42 bool
	AVX2  bool
}

// Supports reports whether t can run with these capabilities. Scalar is
// always supported; Auto and unknown tiers never are.
func (c Capabilities) Supports(t Tier) bool {
	switch t {
	case Scalar:
		return true
	case SSE42:
		return c.SSE42
	case AVX2:
		return c.AVX2
	default:
		return false
	}
}

func (c Capabilities) String() string {
	var parts []string
	if c.SSE42 {
		parts = append(parts, "sse42")
	}
	if c.AVX2 {
		parts = append(parts, "avx2")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

var detected = sync.OnceValue(detectCapabilities)

// DetectCapabilities reports what the running CPU supports. The result is
// computed on first use and cached for the life of the process.
func DetectCapabilities() Capabilities {
	return detected()
}
