package sigscan

import "github.com/mhr3/sigscan/pattern"

// SelectTier resolves a preferred tier against a set of capabilities.
//
// Auto resolves to the best supported tier. An explicit preference is
// honoured when supported and otherwise falls back to Scalar; it is never
// upgraded or downgraded to another vector tier.
func SelectTier(preferred Tier, caps Capabilities) Tier {
	switch {
	case (preferred == AVX2 || preferred == Auto) && caps.AVX2:
		return AVX2
	case preferred == SSE42 && caps.SSE42,
		preferred == Auto && !caps.AVX2 && caps.SSE42:
		return SSE42
	default:
		return Scalar
	}
}

// dispatch runs p over haystack on the tier selected for preferred.
func dispatch(preferred Tier, caps Capabilities, p *pattern.Pattern, haystack []byte) int {
	return SelectTier(preferred, caps).matcher().Find(p, haystack)
}
